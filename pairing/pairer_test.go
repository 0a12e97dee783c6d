/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	persisted int
	rendered  []RoundKey
	notices   []string
	failures  []string
}

func (h *recordingHost) Persist(*Event)                { h.persisted++ }
func (h *recordingHost) Render(_ *Event, key RoundKey) { h.rendered = append(h.rendered, key) }
func (h *recordingHost) Notify(msg string)             { h.notices = append(h.notices, msg) }
func (h *recordingHost) Fail(msg string)               { h.failures = append(h.failures, msg) }

func testEvent(ozark, valley, groups int) *Event {
	ev := &Event{
		Name:      "Test Cup",
		NumGroups: groups,
		Formats: map[Day]map[Side]Format{
			Day1: {Front: "Best Ball", Back: "Singles"},
			Day2: {Front: "Scramble", Back: "Singles"},
		},
	}
	for i := 1; i <= ozark; i++ {
		ev.Players = append(ev.Players, Player{ID: PlayerID(fmt.Sprintf("o%d", i)),
			Name: fmt.Sprintf("Ozzie %d", i), Pool: PoolOzark})
	}
	for i := 1; i <= valley; i++ {
		ev.Players = append(ev.Players, Player{ID: PlayerID(fmt.Sprintf("v%d", i)),
			Name: fmt.Sprintf("Val %d", i), Pool: PoolValley})
	}
	return ev
}

func newTestPairer(host Host) *Pairer {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewPairer(DefaultConfig(), host, WithLogger(logger))
}

func assertRoundShape(t *testing.T, cfg Config, ev *Event, key RoundKey) {
	t.Helper()
	grid := ev.Grid(key)
	require.Len(t, grid, ev.GroupCount(), key.Label())
	slots := cfg.SlotsFor(ev.Format(key))
	for _, row := range grid {
		require.Len(t, row, slots, key.Label())
	}
	assertUnique(t, grid)
}

func TestPairRoundTeamShortage(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(5, 8, 4)

	rep, err := newTestPairer(host).PairRound(ev, Day1, Front,
		Options{Seed: seedPtr(11)})
	require.NoError(t, err)

	assert.True(t, rep.Team)
	assert.Equal(t, 3, rep.ShortOzark)
	assert.Equal(t, 0, rep.ShortValley)
	assert.Equal(t, []string{"Ozark short by 3 slot(s) on Day 1 Front 9."},
		host.notices)
	assert.Equal(t, 1, host.persisted)
	assert.Equal(t, []RoundKey{{Day: Day1, Side: Front}}, host.rendered)
	assertRoundShape(t, DefaultConfig(), ev, RoundKey{Day1, Front})
}

func TestPairRoundSinglesShortage(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(3, 5, 5)

	rep, err := newTestPairer(host).PairRound(ev, Day1, Back,
		Options{Seed: seedPtr(3)})
	require.NoError(t, err)

	assert.False(t, rep.Team)
	assert.Equal(t, 2, rep.ShortOzark)
	assert.Equal(t, 0, rep.ShortValley)
	assert.Equal(t, 3, rep.AvailOzark)
	assert.Equal(t, 5, rep.AvailValley)
	require.Len(t, host.notices, 1)
	assert.Equal(t,
		"Ozark has only 3 available for singles on Day 1 Back 9 (need 5).",
		host.notices[0])
	assertRoundShape(t, DefaultConfig(), ev, RoundKey{Day1, Back})
}

func TestPairRoundNoNoticeWhenFull(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(8, 8, 4)

	rep, err := newTestPairer(host).PairRound(ev, Day2, Front, Options{})
	require.NoError(t, err)
	assert.False(t, rep.Short())
	assert.Empty(t, host.notices)
	assert.Equal(t, FillOverwrite, rep.Mode)
}

func TestPairOverwriteIdempotent(t *testing.T) {
	ev := testEvent(9, 7, 4)
	p := newTestPairer(nil)
	opts := Options{Seed: seedPtr(77), FillMode: FillOverwrite}

	for _, day := range Days {
		for _, side := range Sides {
			_, err := p.PairRound(ev, day, side, opts)
			require.NoError(t, err)
			first := ev.Grid(RoundKey{day, side}).Clone()

			_, err = p.PairRound(ev, day, side, opts)
			require.NoError(t, err)
			assert.Equal(t, first, ev.Grid(RoundKey{day, side}))
		}
	}
}

func TestPairUnassignedPreservesOccupants(t *testing.T) {
	ev := testEvent(8, 8, 4)
	key := RoundKey{Day1, Front}
	prior := Grid{
		{"o1", NoPlayer, NoPlayer, "v3"},
		{NoPlayer, NoPlayer, NoPlayer, NoPlayer},
		{"o2", "o3", "v1", "v2"},
		{NoPlayer, NoPlayer, NoPlayer, NoPlayer},
	}
	ev.Groups = map[Day]map[Side]Grid{Day1: {Front: prior.Clone()}}

	_, err := newTestPairer(nil).PairRound(ev, Day1, Front,
		Options{Seed: seedPtr(5), FillMode: FillUnassigned})
	require.NoError(t, err)

	got := ev.Grid(key)
	for g, row := range prior {
		for i, id := range row {
			if id != NoPlayer {
				assert.Equal(t, id, got[g][i], "group %d slot %d", g+1, i)
			}
		}
	}
	// the second group had no occupants and enough players remain to fill it
	for _, id := range got[1] {
		assert.NotEqual(t, NoPlayer, id)
	}
	assertRoundShape(t, DefaultConfig(), ev, key)
}

func TestPairUnassignedResizesMalformedGrid(t *testing.T) {
	ev := testEvent(6, 6, 3)
	ev.Groups = map[Day]map[Side]Grid{
		Day1: {Back: Grid{{"o1", "v1", "v2", "o2"}}},
	}

	_, err := newTestPairer(nil).PairRound(ev, Day1, Back,
		Options{Seed: seedPtr(8), FillMode: FillUnassigned})
	require.NoError(t, err)

	got := ev.Grid(RoundKey{Day1, Back})
	assert.Equal(t, Group{"o1", "v1"}, got[0])
	assertRoundShape(t, DefaultConfig(), ev, RoundKey{Day1, Back})
}

func TestPairNoDoubleBooking(t *testing.T) {
	modes := []FillMode{FillOverwrite, FillUnassigned}
	for seed := int64(0); seed < 25; seed++ {
		for _, mode := range modes {
			ev := testEvent(int(seed%9)+1, int(seed%7)+2, int(seed%5)+1)
			p := newTestPairer(nil)
			opts := Options{Seed: seedPtr(seed), FillMode: mode}

			_, err := p.PairAll(ev, opts)
			require.NoError(t, err)
			// pair again on top of the existing grids
			_, err = p.PairAll(ev, opts)
			require.NoError(t, err)

			for _, day := range Days {
				for _, side := range Sides {
					assertRoundShape(t, DefaultConfig(), ev,
						RoundKey{day, side})
				}
			}
		}
	}
}

func TestPairDayIndependence(t *testing.T) {
	ev := testEvent(8, 8, 4)
	p := newTestPairer(nil)

	_, err := p.PairRound(ev, Day1, Back, Options{Seed: seedPtr(1)})
	require.NoError(t, err)
	back := ev.Grid(RoundKey{Day1, Back}).Clone()

	_, err = p.PairRound(ev, Day1, Front, Options{Seed: seedPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, back, ev.Grid(RoundKey{Day1, Back}))
	assert.Nil(t, ev.Grid(RoundKey{Day2, Front}))

	// every player can play in both rounds of the day
	assert.Len(t, ev.Grid(RoundKey{Day1, Front}).Placed(), 16)
	assert.Len(t, ev.Grid(RoundKey{Day1, Back}).Placed(), 8)
}

func TestPairAllHooks(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(8, 8, 4)

	reps, err := newTestPairer(host).PairAll(ev, Options{Seed: seedPtr(4)})
	require.NoError(t, err)
	require.Len(t, reps, 4)
	assert.Equal(t, 4, host.persisted)
	assert.Equal(t, []RoundKey{
		{Day1, Front}, {Day1, Back}, {Day2, Front}, {Day2, Back},
	}, host.rendered)
	assert.Empty(t, host.failures)
}

func TestPairRoundFailure(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(4, 4, 2)
	ev.Players = append(ev.Players, Player{ID: "x1", Pool: "hills"})
	before := Grid{{"o1", "o2", "v1", "v2"}, {NoPlayer, NoPlayer, NoPlayer, NoPlayer}}
	ev.Groups = map[Day]map[Side]Grid{Day1: {Front: before.Clone()}}

	rep, err := newTestPairer(host).PairRound(ev, Day1, Front, Options{})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, ErrUnknownPool)
	require.Len(t, host.failures, 1)
	assert.Contains(t, host.failures[0], "Day 1 Front 9")
	assert.Zero(t, host.persisted)
	assert.Empty(t, host.rendered)
	assert.Equal(t, before, ev.Grid(RoundKey{Day1, Front}))
}

func TestPairDayStopsAtFailure(t *testing.T) {
	host := &recordingHost{}
	ev := testEvent(4, 4, 2)

	reps, err := newTestPairer(host).PairDay(ev, "day9", Options{})
	assert.ErrorIs(t, err, ErrUnknownDay)
	assert.Empty(t, reps)
	assert.Len(t, host.failures, 1)

	_, err = newTestPairer(host).PairRound(ev, Day1, "middle", Options{})
	assert.ErrorIs(t, err, ErrUnknownSide)

	_, err = newTestPairer(host).PairRound(ev, Day1, Front,
		Options{FillMode: "append"})
	assert.ErrorIs(t, err, ErrUnknownFillMode)

	_, err = newTestPairer(host).PairRound(nil, Day1, Front, Options{})
	assert.Error(t, err)
}

func TestPairGroupCountCoerced(t *testing.T) {
	ev := testEvent(4, 4, -3)
	rep, err := newTestPairer(nil).PairRound(ev, Day1, Back, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Groups)
	assert.Len(t, ev.Grid(RoundKey{Day1, Back}), 1)
}

func TestPairFormatChangeReshapes(t *testing.T) {
	ev := testEvent(8, 8, 4)
	p := newTestPairer(nil)
	key := RoundKey{Day1, Front}

	_, err := p.PairRound(ev, Day1, Front, Options{Seed: seedPtr(1)})
	require.NoError(t, err)
	require.Len(t, ev.Grid(key)[0], 4)

	ev.Formats[Day1][Front] = "Singles"
	_, err = p.PairRound(ev, Day1, Front,
		Options{Seed: seedPtr(1), FillMode: FillUnassigned})
	require.NoError(t, err)
	assertRoundShape(t, DefaultConfig(), ev, key)
}

func TestPairCustomTeamSlotsUseSingles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TeamSlots = 6
	ev := testEvent(8, 8, 2)

	rep, err := NewPairer(cfg, nil).PairRound(ev, Day1, Front,
		Options{Seed: seedPtr(1)})
	require.NoError(t, err)
	assert.False(t, rep.Team)
	for _, row := range ev.Grid(RoundKey{Day1, Front}) {
		require.Len(t, row, 6)
		assert.NotEqual(t, NoPlayer, row[0])
		assert.NotEqual(t, NoPlayer, row[1])
		assert.Equal(t, NoPlayer, row[2])
	}
}

func TestPairStampsReport(t *testing.T) {
	mClock := quartz.NewMock(t)
	now := time.Date(2025, 10, 18, 7, 30, 0, 0, time.UTC)
	mClock.Set(now)

	rep, err := NewPairer(DefaultConfig(), nil, WithClock(mClock)).
		PairRound(testEvent(2, 2, 1), Day2, Back, Options{})
	require.NoError(t, err)
	assert.Equal(t, now, rep.PairedAt)
}
