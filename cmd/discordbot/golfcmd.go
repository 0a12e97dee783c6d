/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/store"
)

type GolfSubCommand string

const (
	GolfHelpCmd GolfSubCommand = "help"
	GolfPairCmd GolfSubCommand = "pair"
	GolfShowCmd GolfSubCommand = "show"
)

const msgLimit = 1988 // keep space for newlines and markdown

type pairScope string

const (
	scopeRound pairScope = "round"
	scopeDay   pairScope = "day"
	scopeAll   pairScope = "all"
)

func golfCommand() *discordgo.ApplicationCommand {
	eventOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "event",
		Description: "Event name (default is the configured event)",
		Required:    false,
	}
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(GolfCmd),
		Description: "Ozark vs. Valley pairing commands; try /golf help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfHelpCmd),
				Description: "Show usage for golf",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfPairCmd),
				Description: "Auto-pair a round, a day or the whole event",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "scope",
						Description: "What to pair (default is round)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "round", Value: string(scopeRound)},
							{Name: "day", Value: string(scopeDay)},
							{Name: "all", Value: string(scopeAll)},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "day",
						Description: "Day to pair (default is Day 1)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: pairing.Day1.String(), Value: string(pairing.Day1)},
							{Name: pairing.Day2.String(), Value: string(pairing.Day2)},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "side",
						Description: "Side to pair (default is Front 9)",
						Required:    false,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: pairing.Front.String(), Value: string(pairing.Front)},
							{Name: pairing.Back.String(), Value: string(pairing.Back)},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seed",
						Description: "Seed for a reproducible pairing (default is random)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "fill_unassigned",
						Description: "Keep existing groups and only fill empty slots (default is false)",
						Required:    false,
					},
					eventOpt,
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(GolfShowCmd),
				Description: "Show the groups of every round",
				Options: []*discordgo.ApplicationCommandOption{
					eventOpt,
					broadcastOpt,
				},
			},
		},
	}
}

func (b *bot) golfCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.golfHelpCmdHandler
	if len(data.Options) > 0 {
		switch GolfSubCommand(data.Options[0].Name) {
		case GolfPairCmd:
			hdlr = b.golfPairCmdHandler
		case GolfShowCmd:
			hdlr = b.golfShowCmdHandler
		}
	}
	return hdlr(ctx, inter)
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

func subOptions(
	inter *discordgo.Interaction) []*discordgo.ApplicationCommandInteractionDataOption {

	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}
	return data.Options[0].Options
}

//go:embed help.md
var helpText string

func (b *bot) golfHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = internal.TruncateContent(helpText, msgLimit)
	return resp
}

type pairRequest struct {
	scope     pairScope
	day       pairing.Day
	side      pairing.Side
	opts      pairing.Options
	event     string
	broadcast bool
}

func (b *bot) parsePairRequest(
	opts []*discordgo.ApplicationCommandInteractionDataOption) (*pairRequest,
	error) {

	req := &pairRequest{
		scope: scopeRound,
		day:   pairing.Day1,
		side:  pairing.Front,
		opts:  pairing.Options{FillMode: pairing.FillOverwrite},
		event: b.eventName,
	}
	var err error
	for _, opt := range opts {
		switch opt.Name {
		case "scope":
			req.scope = pairScope(opt.StringValue())
		case "day":
			req.day, err = pairing.ParseDay(opt.StringValue())
		case "side":
			req.side, err = pairing.ParseSide(opt.StringValue())
		case "seed":
			seed := opt.IntValue()
			req.opts.Seed = &seed
		case "fill_unassigned":
			if opt.BoolValue() {
				req.opts.FillMode = pairing.FillUnassigned
			}
		case "event":
			req.event = opt.StringValue()
		case "broadcast":
			req.broadcast = opt.BoolValue()
		}
		if err != nil {
			return nil, err
		}
	}
	switch req.scope {
	case scopeRound, scopeDay, scopeAll:
	default:
		return nil, fmt.Errorf("unknown scope %q", req.scope)
	}

	return req, nil
}

func (b *bot) golfPairCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	req, err := b.parsePairRequest(subOptions(inter))
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Invalid request: %v", err)
		b.logger.Warn("discordbot.pair: " + resp.Data.Content)
		return resp
	}

	b.pairMu.Lock()
	defer b.pairMu.Unlock()

	ev, err := b.store.Load(ctx, req.event)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to load event %v: %v",
			req.event, err)
		b.logger.Error("discordbot.pair: " + resp.Data.Content)
		return resp
	}

	host := newDiscordHost(ctx, b.store, req.event, b.logger)
	p := pairing.NewPairer(b.pairCfg, host, pairing.WithLogger(b.logger))
	switch req.scope {
	case scopeRound:
		_, err = p.PairRound(ev, req.day, req.side, req.opts)
	case scopeDay:
		_, err = p.PairDay(ev, req.day, req.opts)
	case scopeAll:
		_, err = p.PairAll(ev, req.opts)
	}
	if err != nil {
		// already reported through the host's Fail hook
		b.logger.Debug("discordbot.pair: pairing stopped", "err", err)
	}

	resp.Data.Content = internal.TruncateContent(host.String(), msgLimit)
	if req.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

func (b *bot) golfShowCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	name := b.eventName
	broadcast := false
	for _, opt := range subOptions(inter) {
		if opt.Name == "event" {
			name = opt.StringValue()
		} else if opt.Name == "broadcast" {
			broadcast = opt.BoolValue()
		}
	}

	ev, err := b.store.Load(ctx, name)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to load event %v: %v", name,
			err)
		b.logger.Error("discordbot.show: " + resp.Data.Content)
		return resp
	}

	resp.Data.Content = internal.TruncateContent(
		fmt.Sprintf("```\n%v```", pairing.BuildEventOutput(ev)), msgLimit)
	if broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

// discordHost collects everything the pairer reports into one message.
type discordHost struct {
	ctx    context.Context
	store  store.Store
	name   string
	logger *log.Logger

	sb strings.Builder
}

func newDiscordHost(ctx context.Context, st store.Store, name string,
	logger *log.Logger) *discordHost {

	return &discordHost{ctx: ctx, store: st, name: name, logger: logger}
}

func (h *discordHost) Persist(ev *pairing.Event) {
	if err := h.store.Save(h.ctx, h.name, ev); err != nil {
		h.logger.Error("discordbot.persist: failed to save event", "event",
			h.name, "err", err)
		h.sb.WriteString(fmt.Sprintf("Failed to save event: %v\n", err))
	}
}

func (h *discordHost) Render(ev *pairing.Event, key pairing.RoundKey) {
	h.sb.WriteString(fmt.Sprintf("```\n%v```\n",
		pairing.BuildRoundOutput(ev, key)))
}

func (h *discordHost) Notify(msg string) {
	h.sb.WriteString(fmt.Sprintf("%v\n", msg))
}

func (h *discordHost) Fail(msg string) {
	h.sb.WriteString(fmt.Sprintf(":warning: %v\n", msg))
}

func (h *discordHost) String() string {
	if h.sb.Len() == 0 {
		return "Nothing to pair."
	}
	return h.sb.String()
}
