/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pairing

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Host is implemented by whatever drives the pairing: it is told when a round
// changed and is handed the notices meant for the user. Hooks do not return
// errors; a host that performs I/O reports its own failures.
type Host interface {
	// Persist is called once after each successfully paired round.
	Persist(ev *Event)
	// Render is called once after each successfully paired round.
	Render(ev *Event, key RoundKey)
	// Notify shows a non-fatal notice, e.g. a shortage.
	Notify(msg string)
	// Fail shows a pairing failure.
	Fail(msg string)
}

type nopHost struct{}

func (nopHost) Persist(*Event)          {}
func (nopHost) Render(*Event, RoundKey) {}
func (nopHost) Notify(string)           {}
func (nopHost) Fail(string)             {}

// Options are the per-call pairing options.
type Options struct {
	// Seed makes the shuffle reproducible when set.
	Seed *int64
	// FillMode defaults to FillOverwrite when empty.
	FillMode FillMode
}

var errNilEvent = errors.New("no event loaded")

// Pairer pairs the rounds of an Event. It holds no locks; callers must not
// pair the same Event from more than one goroutine at a time.
type Pairer struct {
	cfg    Config
	host   Host
	logger *log.Logger
	clock  quartz.Clock
}

type Option func(*Pairer)

func WithLogger(l *log.Logger) Option {
	return func(p *Pairer) { p.logger = l }
}

// WithClock sets the clock used to stamp reports.
func WithClock(c quartz.Clock) Option {
	return func(p *Pairer) { p.clock = c }
}

func NewPairer(cfg Config, host Host, opts ...Option) *Pairer {
	if host == nil {
		host = nopHost{}
	}
	p := &Pairer{
		cfg:    cfg,
		host:   host,
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// PairRound pairs one round of ev. On success the host is notified of any
// shortage and then asked to persist and render. On failure the host's Fail
// hook is called, ev is left as it was and the error is returned.
func (p *Pairer) PairRound(ev *Event, day Day, side Side,
	opts Options) (*Report, error) {

	key := RoundKey{Day: day, Side: side}
	rep, err := p.pairRound(ev, key, opts)
	if err != nil {
		p.logger.Error("pairing.round: failed", "round", key.Label(),
			"err", err)
		p.host.Fail(fmt.Sprintf("Auto-pair failed on %v: %v", key.Label(),
			err))
		return nil, err
	}

	p.logger.Info("pairing.round: paired", "round", key.Label(),
		"format", rep.Format, "mode", rep.Mode, "groups", rep.Groups,
		"shortOzark", rep.ShortOzark, "shortValley", rep.ShortValley)
	if rep.Short() {
		p.host.Notify(rep.Notice())
	}
	p.host.Persist(ev)
	p.host.Render(ev, key)

	return rep, nil
}

// PairDay pairs the front round and then the back round of day. It stops at
// the first failed round; rounds already paired keep their groups.
func (p *Pairer) PairDay(ev *Event, day Day, opts Options) ([]*Report,
	error) {

	var reports []*Report
	for _, side := range Sides {
		rep, err := p.PairRound(ev, day, side, opts)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// PairAll pairs every round of both days in order.
func (p *Pairer) PairAll(ev *Event, opts Options) ([]*Report, error) {
	var reports []*Report
	for _, day := range Days {
		reps, err := p.PairDay(ev, day, opts)
		reports = append(reports, reps...)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func (p *Pairer) pairRound(ev *Event, key RoundKey,
	opts Options) (rep *Report, err error) {

	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	if ev == nil {
		return nil, errNilEvent
	}
	if err := key.validate(); err != nil {
		return nil, err
	}
	mode, err := ParseFillMode(string(opts.FillMode))
	if err != nil {
		return nil, err
	}

	format := ev.Format(key)
	slots := p.cfg.SlotsFor(format)
	team := p.cfg.IsTeam(format) && slots == DefaultTeamSlots
	n := ev.GroupCount()

	// work on a copy so a failure leaves the stored grid untouched
	var grid Grid
	if mode == FillOverwrite {
		grid = NewGrid(n, slots)
	} else {
		grid = resize(ev.Grid(key).Clone(), n, slots)
	}

	ozark, valley, err := Available(ev.Players, grid)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("pairing.round: available", "round", key.Label(),
		"ozark", len(ozark), "valley", len(valley), "seed", seedString(opts.Seed))

	rep = &Report{
		Round:       key,
		Format:      format,
		Team:        team,
		Mode:        mode,
		Groups:      n,
		Slots:       slots,
		AvailOzark:  len(ozark),
		AvailValley: len(valley),
	}

	var asgn Assignment
	if team {
		asgn = BuildTeam(ozark, valley, n, opts.Seed)
		rep.Messages = teamShortageMessages(key, asgn.ShortOzark,
			asgn.ShortValley)
	} else {
		asgn = BuildSingles(ozark, valley, n, opts.Seed)
		rep.Messages = singlesShortageMessages(key, len(ozark), len(valley), n)
	}
	rep.ShortOzark = asgn.ShortOzark
	rep.ShortValley = asgn.ShortValley

	ev.setGrid(key, Apply(grid, asgn.Groups, slots, mode))
	rep.PairedAt = p.clock.Now()

	return rep, nil
}

func seedString(seed *int64) string {
	if seed == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *seed)
}
