/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import "fmt"

// Available returns the ids of each pool that are not seated anywhere in grid,
// in roster order. Players without an id are skipped and a repeated id is
// only listed once.
func Available(players []Player, grid Grid) (ozark, valley []PlayerID,
	err error) {

	placed := grid.Placed()
	seen := make(map[PlayerID]struct{}, len(players))
	ozark = make([]PlayerID, 0)
	valley = make([]PlayerID, 0)

	for _, p := range players {
		if p.ID == NoPlayer {
			continue
		}
		if _, ok := placed[p.ID]; ok {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}

		switch p.Pool {
		case PoolOzark:
			ozark = append(ozark, p.ID)
		case PoolValley:
			valley = append(valley, p.ID)
		default:
			return nil, nil, fmt.Errorf("player %v: %w: %q", p.ID,
				ErrUnknownPool, string(p.Pool))
		}
	}

	return ozark, valley, nil
}
