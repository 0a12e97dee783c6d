/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "time"

// Event holds the state of one two-day Ozark vs. Valley event. The roster and
// format table are owned by whoever loaded the event; pairing only ever writes
// to Groups.
type Event struct {
	Name      string                  `yaml:"name" json:"name"`
	Date      time.Time               `yaml:"-" json:"date"`
	NumGroups int                     `yaml:"numGroups" json:"numGroups"`
	Players   []Player                `yaml:"players" json:"players"`
	Formats   map[Day]map[Side]Format `yaml:"formats" json:"formats"`
	Groups    map[Day]map[Side]Grid   `yaml:"groups" json:"groups"`
}

// GroupCount returns NumGroups coerced to a minimum of 1.
func (e *Event) GroupCount() int {
	if e.NumGroups < 1 {
		return 1
	}
	return e.NumGroups
}

// Format returns the format of the given round, or "" when unset.
func (e *Event) Format(key RoundKey) Format {
	return e.Formats[key.Day][key.Side]
}

// Grid returns the stored grid of the given round; nil when never paired.
func (e *Event) Grid(key RoundKey) Grid {
	return e.Groups[key.Day][key.Side]
}

func (e *Event) setGrid(key RoundKey, g Grid) {
	if e.Groups == nil {
		e.Groups = make(map[Day]map[Side]Grid)
	}
	if e.Groups[key.Day] == nil {
		e.Groups[key.Day] = make(map[Side]Grid)
	}
	e.Groups[key.Day][key.Side] = g
}

// PlayerByID returns the roster entry for id.
func (e *Event) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range e.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
