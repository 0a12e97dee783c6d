/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/roster"
	"github.com/mikeb26/ozarkvalley-pairbot/store"
)

type ShowCmd struct{}

func (cmd *ShowCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.open(ctx)
	if err != nil {
		return err
	}
	ev, err := a.store.Load(ctx, a.name)
	if err != nil {
		return fmt.Errorf("unable to load event: %w", err)
	}
	fmt.Fprintf(a.out, "%v", pairing.BuildEventOutput(ev))
	return nil
}

type RosterCmd struct {
	Name   string `help:"Event name used when the event does not exist yet"`
	Groups int    `help:"Group count used when the event does not exist yet" default:"1"`
	DryRun bool   `name:"dry-run" help:"Print the fetched roster without saving"`
}

func (cmd *RosterCmd) Run(ctx context.Context, g *Globals) error {
	a, err := g.open(ctx)
	if err != nil {
		return err
	}
	if len(a.cfg.Rosters) == 0 {
		return errors.New("no roster blocks configured")
	}
	sources, err := roster.SourcesFromConfig(a.cfg.Rosters)
	if err != nil {
		return err
	}
	maxAge, err := a.cfg.CacheMaxAge()
	if err != nil {
		return err
	}

	client := internal.NewCachedHttpClient(ctx, a.cfg.HTTPCache.Bucket,
		maxAge, a.logger)
	players, err := roster.Fetch(ctx, client, sources)
	if err != nil {
		return err
	}
	if cmd.DryRun {
		for _, p := range players {
			fmt.Fprintf(a.out, "%-8v %-12v %v\n", p.Pool, p.ID, p.Name)
		}
		return nil
	}

	ev, err := a.store.Load(ctx, a.name)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Info("ovpair.roster: creating event", "event", a.name)
		ev = &pairing.Event{Name: cmd.Name, NumGroups: cmd.Groups}
	} else if err != nil {
		return fmt.Errorf("unable to load event: %w", err)
	}

	added := roster.Merge(ev, players)
	if err := a.store.Save(ctx, a.name, ev); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Roster refreshed: %d players, %d new.\n",
		len(ev.Players), added)
	return nil
}
