/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

// Assignment is a freshly built grid along with how many slots each pool
// could not fill.
type Assignment struct {
	Groups      Grid
	ShortOzark  int
	ShortValley int
}

// BuildTeam builds n 2v2 groups. Each pool is shuffled and cut into pairs;
// group g takes the g-th Ozark pair into slots 0-1 and the g-th Valley pair
// into slots 2-3. A trailing single player fills only the first slot of its
// pair. Every empty slot counts toward its pool's shortage.
func BuildTeam(ozark, valley []PlayerID, n int, seed *int64) Assignment {
	pairsA := chunkPairs(Shuffle(ozark, seed))
	pairsB := chunkPairs(Shuffle(valley, nextSeed(seed)))

	asgn := Assignment{Groups: NewGrid(n, DefaultTeamSlots)}
	for g := 0; g < n; g++ {
		asgn.ShortOzark += seatPair(asgn.Groups[g][0:2], pairsA, g)
		asgn.ShortValley += seatPair(asgn.Groups[g][2:4], pairsB, g)
	}

	return asgn
}

// seatPair copies pairs[idx] into dst and returns the number of slots of dst
// left empty.
func seatPair(dst Group, pairs [][]PlayerID, idx int) int {
	if idx >= len(pairs) {
		return len(dst)
	}
	n := copy(dst, pairs[idx])
	return len(dst) - n
}

func chunkPairs(ids []PlayerID) [][]PlayerID {
	pairs := make([][]PlayerID, 0, (len(ids)+1)/2)
	for i := 0; i < len(ids); i += 2 {
		end := i + 2
		if end > len(ids) {
			end = len(ids)
		}
		pairs = append(pairs, ids[i:end])
	}
	return pairs
}

// BuildSingles builds n 1v1 groups: slot 0 is the next shuffled Ozark player
// and slot 1 the next shuffled Valley player. A pool's shortage is the number
// of groups it could not send a player to.
func BuildSingles(ozark, valley []PlayerID, n int, seed *int64) Assignment {
	a := Shuffle(ozark, seed)
	b := Shuffle(valley, nextSeed(seed))

	asgn := Assignment{Groups: NewGrid(n, DefaultSinglesSlots)}
	i, j := 0, 0
	for g := 0; g < n; g++ {
		if i < len(a) {
			asgn.Groups[g][0] = a[i]
			i++
		}
		if j < len(b) {
			asgn.Groups[g][1] = b[j]
			j++
		}
	}
	asgn.ShortOzark = max(0, n-i)
	asgn.ShortValley = max(0, n-j)

	return asgn
}
