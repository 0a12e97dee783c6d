/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/store"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to the HCL config file" default:"${conf_file}" type:"path"`
	Event    string `short:"e" help:"Event to operate on (file path or S3 event name)"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Pair    PairCmd          `cmd:"" help:"Auto-pair rounds of the event"`
	Show    ShowCmd          `cmd:"" help:"Show every round's groups"`
	Roster  RosterCmd        `cmd:"" help:"Refresh the event roster from the configured roster pages"`
}

// app is what a command needs once flags, config and environment are applied.
type app struct {
	ctx    context.Context
	cfg    *internal.Config
	logger *log.Logger
	store  store.Store
	name   string
	out    io.Writer
}

func (g *Globals) open(ctx context.Context) (*app, error) {
	cfg, err := internal.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("unable to load config %v: %w", g.Config, err)
	}
	internal.LoadEnv(cfg)
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	logger := internal.NewLogger(cfg.LogLevel)

	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	name := g.Event
	if name == "" {
		name = store.DefaultName(cfg.Store)
	}
	logger.Debug("ovpair: opened store", "kind", cfg.Store.Kind, "event", name)

	return &app{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		store:  st,
		name:   name,
		out:    os.Stdout,
	}, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("ovpair"),
		kong.Description("Auto-pair Ozark vs. Valley golf groups"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":   version,
			"conf_file": internal.DefaultConfFile,
		},
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
