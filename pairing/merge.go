/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strings"
)

// FillMode controls how built assignments are merged into a round's grid.
type FillMode string

const (
	// FillOverwrite replaces every slot, clearing slots the new assignment
	// left empty.
	FillOverwrite FillMode = "overwrite"
	// FillUnassigned only fills slots that are currently empty.
	FillUnassigned FillMode = "unassigned"
)

// ParseFillMode maps "" to FillOverwrite.
func ParseFillMode(s string) (FillMode, error) {
	switch m := FillMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", FillOverwrite:
		return FillOverwrite, nil
	case FillUnassigned:
		return FillUnassigned, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFillMode, s)
}

// normalizeRow truncates or pads row to exactly slots entries.
func normalizeRow(row Group, slots int) Group {
	if len(row) > slots {
		return row[:slots:slots]
	}
	for len(row) < slots {
		row = append(row, NoPlayer)
	}
	return row
}

// resize reshapes grid to groups rows of slots entries each, keeping the
// occupants of every surviving slot.
func resize(grid Grid, groups, slots int) Grid {
	if len(grid) > groups {
		grid = grid[:groups]
	}
	for len(grid) < groups {
		grid = append(grid, nil)
	}
	for g := range grid {
		grid[g] = normalizeRow(grid[g], slots)
	}
	return grid
}

// Apply merges built into grid in place and returns grid. Every row of grid is
// first normalized to slots entries. The number of groups in grid never
// changes; built rows or slots that are missing are treated as empty.
func Apply(grid Grid, built Grid, slots int, mode FillMode) Grid {
	for g := range grid {
		row := normalizeRow(grid[g], slots)
		for i := 0; i < slots; i++ {
			target := NoPlayer
			if g < len(built) && i < len(built[g]) {
				target = built[g][i]
			}
			if mode == FillUnassigned {
				if row[i] == NoPlayer {
					row[i] = target
				}
			} else {
				row[i] = target
			}
		}
		grid[g] = row
	}

	return grid
}
