/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
)

const (
	StoreKindFile = "file"
	StoreKindS3   = "s3"

	defaultCacheMaxAge = 24 * time.Hour
)

// Config is the tool configuration, read from an HCL file:
//
//	log_level = "info"
//	store {
//	  kind   = "s3"
//	  bucket = "my-events"
//	  prefix = "2025"
//	}
//	pairing {
//	  team_formats = ["Best Ball", "Scramble", "Alt Shot", "Shamble"]
//	}
//	roster "ozark" {
//	  url = "https://example.org/ozark/members"
//	}
//	http_cache {
//	  max_age = "12h"
//	}
type Config struct {
	LogLevel  string           `hcl:"log_level,optional"`
	Store     *StoreConfig     `hcl:"store,block"`
	Pairing   *PairingConfig   `hcl:"pairing,block"`
	Rosters   []RosterConfig   `hcl:"roster,block"`
	HTTPCache *HTTPCacheConfig `hcl:"http_cache,block"`
}

type StoreConfig struct {
	Kind   string `hcl:"kind,optional"`
	Path   string `hcl:"path,optional"`
	Bucket string `hcl:"bucket,optional"`
	Prefix string `hcl:"prefix,optional"`
	Gzip   bool   `hcl:"gzip,optional"`
}

type PairingConfig struct {
	TeamFormats  []string `hcl:"team_formats,optional"`
	TeamSlots    int      `hcl:"team_slots,optional"`
	SinglesSlots int      `hcl:"singles_slots,optional"`
}

// RosterConfig names a web page listing the members of one pool.
type RosterConfig struct {
	Pool string `hcl:"pool,label"`
	URL  string `hcl:"url"`
}

type HTTPCacheConfig struct {
	Bucket string `hcl:"bucket,optional"`
	MaxAge string `hcl:"max_age,optional"`
}

// DefaultConfig keeps events in a local YAML file.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Store: &StoreConfig{
			Kind: StoreKindFile,
			Path: DefaultEventFile,
		},
		Pairing:   &PairingConfig{},
		HTTPCache: &HTTPCacheConfig{},
	}
}

// LoadConfig loads the configuration from an HCL file. A missing file yields
// DefaultConfig().
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Store == nil {
		c.Store = def.Store
	}
	if c.Store.Kind == "" {
		c.Store.Kind = StoreKindFile
	}
	if c.Store.Kind == StoreKindFile && c.Store.Path == "" {
		c.Store.Path = DefaultEventFile
	}
	if c.Pairing == nil {
		c.Pairing = def.Pairing
	}
	if c.HTTPCache == nil {
		c.HTTPCache = def.HTTPCache
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreKindFile:
	case StoreKindS3:
		if c.Store.Bucket == "" {
			return fmt.Errorf("store: bucket is required for kind %q",
				StoreKindS3)
		}
	default:
		return fmt.Errorf("store: unknown kind %q", c.Store.Kind)
	}

	seen := make(map[pairing.Pool]bool)
	for _, r := range c.Rosters {
		pool, err := pairing.ParsePool(r.Pool)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		if seen[pool] {
			return fmt.Errorf("roster: duplicate block for %v", pool)
		}
		seen[pool] = true
	}

	if _, err := c.CacheMaxAge(); err != nil {
		return err
	}
	return nil
}

// PairingConfig converts the pairing block; unset fields keep the defaults.
func (c *Config) PairingConfig() pairing.Config {
	pc := pairing.DefaultConfig()
	if c.Pairing == nil {
		return pc
	}
	if len(c.Pairing.TeamFormats) > 0 {
		pc.TeamFormats = nil
		for _, f := range c.Pairing.TeamFormats {
			pc.TeamFormats = append(pc.TeamFormats, pairing.Format(f))
		}
	}
	if c.Pairing.TeamSlots > 0 {
		pc.TeamSlots = c.Pairing.TeamSlots
	}
	if c.Pairing.SinglesSlots > 0 {
		pc.SinglesSlots = c.Pairing.SinglesSlots
	}
	return pc
}

// CacheMaxAge returns how long fetched roster pages stay cached.
func (c *Config) CacheMaxAge() (time.Duration, error) {
	if c.HTTPCache == nil || c.HTTPCache.MaxAge == "" {
		return defaultCacheMaxAge, nil
	}
	d, err := time.ParseDuration(c.HTTPCache.MaxAge)
	if err != nil {
		return 0, fmt.Errorf("http_cache: invalid max_age: %w", err)
	}
	return d, nil
}

// Environment variables read by the commands.
const (
	EnvLogLevel         = "OVPAIR_LOG_LEVEL"
	EnvEventBucket      = "OVPAIR_EVENT_BUCKET"
	EnvAddr             = "OVPAIR_ADDR"
	EnvDiscordToken     = "DISCORD_BOT_TOKEN"
	EnvDiscordPublicKey = "DISCORD_PUBLIC_KEY"
	EnvDiscordAppID     = "DISCORD_APP_ID"
	EnvDiscordCmdID     = "DISCORD_CMD_ID"
)

// LoadEnv loads a .env file when present and applies environment overrides
// to c. A missing .env file is not an error.
func LoadEnv(c *Config) {
	_ = godotenv.Load()

	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	if bucket := os.Getenv(EnvEventBucket); bucket != "" {
		c.Store.Kind = StoreKindS3
		c.Store.Bucket = bucket
	}
}
