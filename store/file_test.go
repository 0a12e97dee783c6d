/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEvent = `name: Fall Cup
date: September 14, 2025
numGroups: 2
players:
  - {id: o1, name: Jane Smith, pool: ozark}
  - {id: v1, name: Ann Lee, pool: valley}
formats:
  day1:
    front: Best Ball
    back: Singles
groups:
  day1:
    front:
      - [o1, "", v1, ""]
`

func TestFileStoreLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cup.yaml"),
		[]byte(sampleEvent), 0o644))

	fs := &FileStore{Dir: dir}
	ev, err := fs.Load(context.Background(), "cup.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Fall Cup", ev.Name)
	assert.Equal(t, "2025-09-14", ev.Date.Format(dateLayout))
	assert.Equal(t, 2, ev.NumGroups)
	assert.Len(t, ev.Players, 2)
	assert.Equal(t, pairing.PoolValley, ev.Players[1].Pool)

	front := pairing.RoundKey{Day: pairing.Day1, Side: pairing.Front}
	back := pairing.RoundKey{Day: pairing.Day1, Side: pairing.Back}
	assert.Equal(t, pairing.Format("Best Ball"), ev.Format(front))
	assert.Equal(t, pairing.Format("Singles"), ev.Format(back))
	assert.Equal(t, pairing.Grid{{"o1", "", "v1", ""}}, ev.Grid(front))
	assert.Nil(t, ev.Grid(back))
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}
	ctx := context.Background()

	ev := &pairing.Event{
		Name:      "Spring Cup",
		NumGroups: 1,
		Players: []pairing.Player{
			{ID: "o1", Name: "Jane Smith", Pool: pairing.PoolOzark},
		},
		Formats: map[pairing.Day]map[pairing.Side]pairing.Format{
			pairing.Day2: {pairing.Back: "Scramble"},
		},
	}
	ev.Date, _ = internal.ParseDateOrZero("2026-04-18")
	ev.Groups = map[pairing.Day]map[pairing.Side]pairing.Grid{
		pairing.Day2: {pairing.Back: {{"o1", "", "", ""}}},
	}

	require.NoError(t, fs.Save(ctx, "spring.yaml", ev))
	got, err := fs.Load(ctx, "spring.yaml")
	require.NoError(t, err)

	assert.Equal(t, ev.Name, got.Name)
	assert.Equal(t, "2026-04-18", got.Date.Format(dateLayout))
	assert.Equal(t, ev.Players, got.Players)
	assert.Equal(t, ev.Formats, got.Formats)
	assert.Equal(t, ev.Groups, got.Groups)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFileStoreErrors(t *testing.T) {
	dir := t.TempDir()
	fs := &FileStore{Dir: dir}

	_, err := fs.Load(context.Background(), "missing.yaml")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"),
		[]byte("players: {oops"), 0o644))
	_, err = fs.Load(context.Background(), "bad.yaml")
	assert.Error(t, err)
}

func TestOpenAndDefaultName(t *testing.T) {
	s, err := Open(context.Background(), &internal.StoreConfig{
		Kind: internal.StoreKindFile}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(context.Background(), &internal.StoreConfig{Kind: "ftp"},
		nil)
	assert.Error(t, err)

	assert.Equal(t, "cup.yaml", DefaultName(&internal.StoreConfig{
		Kind: internal.StoreKindFile, Path: "cup.yaml"}))
	assert.Equal(t, internal.DefaultEventFile, DefaultName(
		&internal.StoreConfig{Kind: internal.StoreKindS3}))
}
