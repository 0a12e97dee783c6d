/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"strings"
)

// PlayerID identifies a player across the whole event. The zero value marks
// an empty slot.
type PlayerID string

const NoPlayer PlayerID = ""

type Pool string

const (
	PoolOzark  Pool = "ozark"
	PoolValley Pool = "valley"
)

func (p Pool) String() string {
	switch p {
	case PoolOzark:
		return "Ozark"
	case PoolValley:
		return "Valley"
	default:
		return "?"
	}
}

// ParsePool accepts either pool name, case-insensitively.
func ParsePool(s string) (Pool, error) {
	switch Pool(strings.ToLower(strings.TrimSpace(s))) {
	case PoolOzark:
		return PoolOzark, nil
	case PoolValley:
		return PoolValley, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPool, s)
}

// Player is the read-only roster view the pairing logic needs.
type Player struct {
	ID   PlayerID `yaml:"id" json:"id"`
	Name string   `yaml:"name" json:"name"`
	Pool Pool     `yaml:"pool" json:"pool"`
}

// Format is the play format of one round, e.g. "Best Ball" or "Singles".
type Format string

type Day string

const (
	Day1 Day = "day1"
	Day2 Day = "day2"
)

var Days = []Day{Day1, Day2}

func (d Day) String() string {
	switch d {
	case Day1:
		return "Day 1"
	case Day2:
		return "Day 2"
	default:
		return string(d)
	}
}

func ParseDay(s string) (Day, error) {
	d := Day(strings.ToLower(strings.TrimSpace(s)))
	if d != Day1 && d != Day2 {
		return "", fmt.Errorf("%w: %q", ErrUnknownDay, s)
	}
	return d, nil
}

type Side string

const (
	Front Side = "front"
	Back  Side = "back"
)

var Sides = []Side{Front, Back}

func (s Side) String() string {
	switch s {
	case Front:
		return "Front 9"
	case Back:
		return "Back 9"
	default:
		return string(s)
	}
}

func ParseSide(s string) (Side, error) {
	side := Side(strings.ToLower(strings.TrimSpace(s)))
	if side != Front && side != Back {
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
	return side, nil
}

// RoundKey identifies one of the four independently paired rounds.
type RoundKey struct {
	Day  Day
	Side Side
}

func (k RoundKey) validate() error {
	if k.Day != Day1 && k.Day != Day2 {
		return fmt.Errorf("%w: %q", ErrUnknownDay, string(k.Day))
	}
	if k.Side != Front && k.Side != Back {
		return fmt.Errorf("%w: %q", ErrUnknownSide, string(k.Side))
	}
	return nil
}

// Label returns the display name of the round, e.g. "Day 1 Front 9".
func (k RoundKey) Label() string {
	return fmt.Sprintf("%v %v", k.Day, k.Side)
}

// Group is the ordered set of slots of one group. Team groups hold the two
// Ozark players in slots 0 and 1 and the two Valley players in slots 2 and 3;
// singles groups hold Ozark in slot 0 and Valley in slot 1.
type Group []PlayerID

// Grid is the ordered list of groups for one round.
type Grid []Group

// NewGrid returns an all-empty grid of the given shape.
func NewGrid(groups, slots int) Grid {
	g := make(Grid, groups)
	for i := range g {
		g[i] = make(Group, slots)
	}
	return g
}

// Placed returns the set of player ids occupying any slot of the grid.
func (g Grid) Placed() map[PlayerID]struct{} {
	placed := make(map[PlayerID]struct{})
	for _, row := range g {
		for _, id := range row {
			if id != NoPlayer {
				placed[id] = struct{}{}
			}
		}
	}
	return placed
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append(Group(nil), row...)
	}
	return out
}
