/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

const (
	DefaultTeamSlots    = 4
	DefaultSinglesSlots = 2
)

// DefaultTeamFormats are the formats played as 2v2.
var DefaultTeamFormats = []Format{"Best Ball", "Scramble", "Alt Shot", "Shamble"}

// Config decides the group shape of each format.
type Config struct {
	// TeamFormats lists the formats paired 2v2. Anything else is paired as
	// singles.
	TeamFormats []Format
	// TeamSlots is the group size of team formats (default 4).
	TeamSlots int
	// SinglesSlots is the group size of every other format (default 2).
	SinglesSlots int
}

func DefaultConfig() Config {
	return Config{
		TeamFormats:  append([]Format(nil), DefaultTeamFormats...),
		TeamSlots:    DefaultTeamSlots,
		SinglesSlots: DefaultSinglesSlots,
	}
}

// IsTeam reports whether f is one of the configured team formats.
func (c Config) IsTeam(f Format) bool {
	for _, tf := range c.TeamFormats {
		if tf == f {
			return true
		}
	}
	return false
}

// SlotsFor returns the number of slots per group for f.
func (c Config) SlotsFor(f Format) int {
	if c.IsTeam(f) {
		if c.TeamSlots <= 0 {
			return DefaultTeamSlots
		}
		return c.TeamSlots
	}
	if c.SinglesSlots <= 0 {
		return DefaultSinglesSlots
	}
	return c.SinglesSlots
}
