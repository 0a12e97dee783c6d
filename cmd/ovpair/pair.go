/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/store"
)

type PairCmd struct {
	Round PairRoundCmd `cmd:"" help:"Pair a single round"`
	Day   PairDayCmd   `cmd:"" help:"Pair the front and back rounds of a day"`
	All   PairAllCmd   `cmd:"" help:"Pair every round of the event"`
}

type PairFlags struct {
	Seed           *int64 `help:"Seed for a reproducible pairing (random when unset)"`
	FillUnassigned bool   `name:"fill-unassigned" help:"Keep existing groups and only fill empty slots"`
}

func (f PairFlags) options() pairing.Options {
	opts := pairing.Options{Seed: f.Seed, FillMode: pairing.FillOverwrite}
	if f.FillUnassigned {
		opts.FillMode = pairing.FillUnassigned
	}
	return opts
}

type PairRoundCmd struct {
	PairFlags `embed:""`

	Day  string `arg:"" enum:"day1,day2" help:"Day to pair (day1, day2)"`
	Side string `arg:"" enum:"front,back" help:"Side to pair (front, back)"`
}

func (cmd *PairRoundCmd) Run(ctx context.Context, g *Globals) error {
	day, err := pairing.ParseDay(cmd.Day)
	if err != nil {
		return err
	}
	side, err := pairing.ParseSide(cmd.Side)
	if err != nil {
		return err
	}
	return runPair(ctx, g, func(p *pairing.Pairer, ev *pairing.Event) error {
		_, err := p.PairRound(ev, day, side, cmd.options())
		return err
	})
}

type PairDayCmd struct {
	PairFlags `embed:""`

	Day string `arg:"" enum:"day1,day2" help:"Day to pair (day1, day2)"`
}

func (cmd *PairDayCmd) Run(ctx context.Context, g *Globals) error {
	day, err := pairing.ParseDay(cmd.Day)
	if err != nil {
		return err
	}
	return runPair(ctx, g, func(p *pairing.Pairer, ev *pairing.Event) error {
		_, err := p.PairDay(ev, day, cmd.options())
		return err
	})
}

type PairAllCmd struct {
	PairFlags `embed:""`
}

func (cmd *PairAllCmd) Run(ctx context.Context, g *Globals) error {
	return runPair(ctx, g, func(p *pairing.Pairer, ev *pairing.Event) error {
		_, err := p.PairAll(ev, cmd.options())
		return err
	})
}

func runPair(ctx context.Context, g *Globals,
	pair func(*pairing.Pairer, *pairing.Event) error) error {

	a, err := g.open(ctx)
	if err != nil {
		return err
	}
	ev, err := a.store.Load(ctx, a.name)
	if err != nil {
		return fmt.Errorf("unable to load event: %w", err)
	}

	host := newCLIHost(ctx, a.store, a.name, a.out, a.logger)
	p := pairing.NewPairer(a.cfg.PairingConfig(), host,
		pairing.WithLogger(a.logger))
	if err := pair(p, ev); err != nil {
		return err
	}
	return host.saveErr
}

// cliHost saves each paired round and prints its groups.
type cliHost struct {
	ctx    context.Context
	store  store.Store
	name   string
	out    io.Writer
	logger *log.Logger

	saveErr error
}

func newCLIHost(ctx context.Context, st store.Store, name string,
	out io.Writer, logger *log.Logger) *cliHost {

	return &cliHost{
		ctx:    ctx,
		store:  st,
		name:   name,
		out:    out,
		logger: logger,
	}
}

func (h *cliHost) Persist(ev *pairing.Event) {
	if err := h.store.Save(h.ctx, h.name, ev); err != nil {
		h.logger.Error("ovpair.persist: failed to save event", "event",
			h.name, "err", err)
		h.saveErr = err
		return
	}
	h.logger.Debug("ovpair.persist: saved event", "event", h.name)
}

func (h *cliHost) Render(ev *pairing.Event, key pairing.RoundKey) {
	fmt.Fprintf(h.out, "%v\n", pairing.BuildRoundOutput(ev, key))
}

func (h *cliHost) Notify(msg string) {
	h.logger.Warn(msg)
}

func (h *cliHost) Fail(msg string) {
	h.logger.Error(msg)
}
