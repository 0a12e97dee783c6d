/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/roster"
)

// this program exists just to seed the http cache for the roster pages

func main() {
	confFile := flag.String("config", internal.DefaultConfFile,
		"Path to the HCL config file")
	flag.Parse()

	cfg, err := internal.LoadConfig(*confFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cacheseed: %v\n", err)
		os.Exit(1)
	}
	internal.LoadEnv(cfg)
	logger := internal.NewLogger(cfg.LogLevel)

	sources, err := roster.SourcesFromConfig(cfg.Rosters)
	if err != nil {
		logger.Fatal("cacheseed: bad roster config", "err", err)
	}
	maxAge, err := cfg.CacheMaxAge()
	if err != nil {
		logger.Fatal("cacheseed: bad http_cache config", "err", err)
	}
	bucket := cfg.HTTPCache.Bucket
	if bucket == "" {
		bucket = internal.WebCacheBucket
	}

	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, bucket, maxAge, logger)
	for _, src := range sources {
		players, err := roster.Fetch(ctx, client, []roster.Source{src})
		time.Sleep(2 * time.Second) // avoid pegging the roster site
		if err != nil {
			// best effort
			logger.Warn("cacheseed: fetch failed", "pool", src.Pool, "err", err)
			continue
		}

		fmt.Printf("seeded %v roster (%d players)\n", src.Pool, len(players))
	}
}
