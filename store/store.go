/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package store persists events between pairing runs.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
)

var ErrNotFound = errors.New("event not found")

// Store loads and saves events by name.
type Store interface {
	Load(ctx context.Context, name string) (*pairing.Event, error)
	Save(ctx context.Context, name string, ev *pairing.Event) error
}

// Open builds the Store described by cfg.
func Open(ctx context.Context, cfg *internal.StoreConfig,
	logger *log.Logger) (Store, error) {

	switch cfg.Kind {
	case internal.StoreKindFile, "":
		return &FileStore{}, nil
	case internal.StoreKindS3:
		return NewS3Store(ctx, cfg.Bucket, cfg.Prefix, cfg.Gzip, logger)
	}
	return nil, fmt.Errorf("store: unknown kind %q", cfg.Kind)
}

// DefaultName is the event name used when none is given on the command line.
func DefaultName(cfg *internal.StoreConfig) string {
	if cfg.Kind == internal.StoreKindFile && cfg.Path != "" {
		return cfg.Path
	}
	return internal.DefaultEventFile
}
