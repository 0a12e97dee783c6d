/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strings"
)

// BuildRoundOutput formats one round's groups into an aligned table with the
// Ozark side on the left and the Valley side on the right.
func BuildRoundOutput(ev *Event, key RoundKey) string {
	var sb strings.Builder

	format := ev.Format(key)
	if format == "" {
		format = "Singles"
	}
	sb.WriteString(fmt.Sprintf("%v (%v)\n", key.Label(), format))

	grid := ev.Grid(key)
	if len(grid) == 0 {
		sb.WriteString("No groups paired yet\n\n")
		return sb.String()
	}

	type row struct{ group, ozark, valley string }
	var rows []row
	for g, group := range grid {
		half := len(group) / 2
		rows = append(rows, row{
			group:  fmt.Sprintf("%d.", g+1),
			ozark:  namesOf(ev, group[:half]),
			valley: namesOf(ev, group[half:]),
		})
	}

	// Compute column widths
	maxG, maxO, maxV := len("Group"), len("Ozark"), len("Valley")
	for _, r := range rows {
		if l := len(r.group); l > maxG {
			maxG = l
		}
		if l := len(r.ozark); l > maxO {
			maxO = l
		}
		if l := len(r.valley); l > maxV {
			maxV = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxG, "Group", maxO,
		"Ozark", maxV, "Valley"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxG, r.group,
			maxO, r.ozark, maxV, r.valley))
	}
	sb.WriteString("\n")

	return sb.String()
}

// BuildEventOutput formats every round of the event.
func BuildEventOutput(ev *Event) string {
	var sb strings.Builder
	if ev.Name != "" {
		sb.WriteString(ev.Name)
		if !ev.Date.IsZero() {
			sb.WriteString(fmt.Sprintf(" (%v)", ev.Date.Format("Jan 2, 2006")))
		}
		sb.WriteString("\n\n")
	}
	for _, day := range Days {
		for _, side := range Sides {
			sb.WriteString(BuildRoundOutput(ev, RoundKey{Day: day, Side: side}))
		}
	}
	return sb.String()
}

func namesOf(ev *Event, ids []PlayerID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, displayName(ev, id))
	}
	return strings.Join(names, " & ")
}

// displayName falls back to the raw id for players missing from the roster
// and to "-" for empty slots.
func displayName(ev *Event, id PlayerID) string {
	if id == NoPlayer {
		return "-"
	}
	if p, ok := ev.PlayerByID(id); ok && p.Name != "" {
		return p.Name
	}
	return string(id)
}
