/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName collapses runs of whitespace and strips surrounding space.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateContent cuts s to limit runes, marking the cut with "...".
func TruncateContent(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		s = string(runes[:limit]) + "..."
	}
	return s
}
