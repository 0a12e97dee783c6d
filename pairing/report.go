/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strings"
	"time"
)

// Report summarizes one round pairing.
type Report struct {
	Round    RoundKey
	Format   Format
	Team     bool
	Mode     FillMode
	Groups   int
	Slots    int
	PairedAt time.Time

	// Candidates available to each pool before building.
	AvailOzark  int
	AvailValley int

	ShortOzark  int
	ShortValley int

	// Messages are the shortage notices shown to the user, if any.
	Messages []string
}

// Short reports whether either pool came up short.
func (r *Report) Short() bool {
	return len(r.Messages) > 0
}

// Notice joins Messages into the single notice handed to Host.Notify.
func (r *Report) Notice() string {
	return strings.Join(r.Messages, "\n")
}

func teamShortageMessages(key RoundKey, shortA, shortB int) []string {
	var msgs []string
	if shortA > 0 {
		msgs = append(msgs, fmt.Sprintf("%v short by %d slot(s) on %v.",
			PoolOzark, shortA, key.Label()))
	}
	if shortB > 0 {
		msgs = append(msgs, fmt.Sprintf("%v short by %d slot(s) on %v.",
			PoolValley, shortB, key.Label()))
	}
	return msgs
}

func singlesShortageMessages(key RoundKey, availA, availB, need int) []string {
	var msgs []string
	if availA < need {
		msgs = append(msgs,
			fmt.Sprintf("%v has only %d available for singles on %v (need %d).",
				PoolOzark, availA, key.Label(), need))
	}
	if availB < need {
		msgs = append(msgs,
			fmt.Sprintf("%v has only %d available for singles on %v (need %d).",
				PoolValley, availB, key.Label(), need))
	}
	return msgs
}
