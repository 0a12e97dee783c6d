/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEvent = `name: Fall Cup
numGroups: 2
players:
  - {id: o1, name: Ozark One, pool: ozark}
  - {id: o2, name: Ozark Two, pool: ozark}
  - {id: o3, name: Ozark Three, pool: ozark}
  - {id: v1, name: Valley One, pool: valley}
  - {id: v2, name: Valley Two, pool: valley}
  - {id: v3, name: Valley Three, pool: valley}
  - {id: v4, name: Valley Four, pool: valley}
formats:
  day1:
    front: Best Ball
    back: Singles
  day2:
    front: Scramble
    back: Singles
`

func newTestBot(t *testing.T, event string) *bot {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cup.yaml"),
		[]byte(event), 0o644))
	return &bot{
		logger:    log.New(io.Discard),
		store:     &store.FileStore{Dir: dir},
		eventName: "cup.yaml",
		pairCfg:   pairing.DefaultConfig(),
	}
}

func golfInteraction(sub GolfSubCommand,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(GolfCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    string(sub),
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func strOpt(name, val string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: val,
	}
}

func intOpt(name string, val int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(val),
	}
}

func boolOpt(name string, val bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: val,
	}
}

func TestGolfPairRound(t *testing.T) {
	b := newTestBot(t, testEvent)
	ctx := context.Background()

	resp := b.golfCmdHandler(ctx, golfInteraction(GolfPairCmd,
		strOpt("day", "day1"), strOpt("side", "front"), intOpt("seed", 11)))
	require.NotNil(t, resp.Data)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	assert.Contains(t, resp.Data.Content, "Day 1 Front 9 (Best Ball)")
	// three Ozark players for two team groups
	assert.Contains(t, resp.Data.Content, "Ozark short by 1 slot(s)")

	ev, err := b.store.Load(ctx, "cup.yaml")
	require.NoError(t, err)
	grid := ev.Grid(pairing.RoundKey{Day: pairing.Day1, Side: pairing.Front})
	require.Len(t, grid, 2)
	assert.Len(t, grid.Placed(), 7)
}

func TestGolfPairAllBroadcast(t *testing.T) {
	b := newTestBot(t, testEvent)
	resp := b.golfCmdHandler(context.Background(), golfInteraction(GolfPairCmd,
		strOpt("scope", "all"), boolOpt("broadcast", true)))

	assert.Equal(t, discordgo.MessageFlags(0), resp.Data.Flags)
	assert.Contains(t, resp.Data.Content, "Day 2 Back 9 (Singles)")
}

func TestGolfPairFillUnassigned(t *testing.T) {
	b := newTestBot(t, testEvent+`groups:
  day1:
    back:
      - [o1, v1]
`)
	ctx := context.Background()
	resp := b.golfCmdHandler(ctx, golfInteraction(GolfPairCmd,
		strOpt("side", "back"), boolOpt("fill_unassigned", true)))
	assert.Contains(t, resp.Data.Content, "Day 1 Back 9 (Singles)")

	ev, err := b.store.Load(ctx, "cup.yaml")
	require.NoError(t, err)
	grid := ev.Grid(pairing.RoundKey{Day: pairing.Day1, Side: pairing.Back})
	require.Len(t, grid, 2)
	assert.Equal(t, pairing.Group{"o1", "v1"}, grid[0])
	assert.Len(t, grid.Placed(), 4)
}

func TestGolfPairFailure(t *testing.T) {
	b := newTestBot(t, strings.Replace(testEvent, "formats:",
		"  - {id: h1, name: Hill One, pool: hill}\nformats:", 1))
	resp := b.golfCmdHandler(context.Background(), golfInteraction(GolfPairCmd))
	assert.Contains(t, resp.Data.Content, "Auto-pair failed on Day 1 Front 9")
}

func TestGolfPairBadRequest(t *testing.T) {
	b := newTestBot(t, testEvent)
	resp := b.golfCmdHandler(context.Background(), golfInteraction(GolfPairCmd,
		strOpt("scope", "week")))
	assert.Contains(t, resp.Data.Content, "Invalid request")

	resp = b.golfCmdHandler(context.Background(), golfInteraction(GolfPairCmd,
		strOpt("event", "missing.yaml")))
	assert.Contains(t, resp.Data.Content, "Unable to load event missing.yaml")
}

func TestGolfShowAndHelp(t *testing.T) {
	b := newTestBot(t, testEvent)
	resp := b.golfCmdHandler(context.Background(), golfInteraction(GolfShowCmd))
	assert.Contains(t, resp.Data.Content, "Fall Cup")
	assert.Contains(t, resp.Data.Content, "No groups paired yet")

	resp = b.golfCmdHandler(context.Background(), golfInteraction(GolfHelpCmd))
	assert.Contains(t, resp.Data.Content, "/golf pair")
}
