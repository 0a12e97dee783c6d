/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/s3cache"
)

// objectStore is the subset of s3cache.Cache used for events.
type objectStore interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// S3Store keeps each event as a JSON object under <prefix>/events/.
type S3Store struct {
	objects objectStore
	prefix  string
}

// NewS3Store connects to bucket and checks that it can be read.
func NewS3Store(ctx context.Context, bucket, prefix string, gzip bool,
	logger *log.Logger) (*S3Store, error) {

	c := s3cache.New(ctx, bucket, gzip, logger)
	if err := c.Init(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &S3Store{objects: c, prefix: prefix}, nil
}

func (s *S3Store) key(name string) string {
	name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	return path.Join(s.prefix, "events", name+".json")
}

func (s *S3Store) Load(ctx context.Context, name string) (*pairing.Event,
	error) {

	key := s.key(name)
	data, err := s.objects.Fetch(ctx, key)
	if err != nil {
		if errors.Is(err, s3cache.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, key)
		}
		return nil, err
	}

	var ev pairing.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("unable to parse event %v: %w", key, err)
	}
	return &ev, nil
}

func (s *S3Store) Save(ctx context.Context, name string,
	ev *pairing.Event) error {

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("unable to encode event: %w", err)
	}
	return s.objects.Put(ctx, s.key(name), data)
}
