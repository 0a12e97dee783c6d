/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// FileStore keeps each event in a YAML file. Names are file paths, relative
// to Dir when Dir is set.
type FileStore struct {
	Dir string
}

// eventFile is the on-disk form of an event. The date is kept as written by
// hand so any reasonable format is accepted on load.
type eventFile struct {
	Date          string `yaml:"date,omitempty"`
	pairing.Event `yaml:",inline"`
}

func (fs *FileStore) path(name string) string {
	if fs.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fs.Dir, name)
}

func (fs *FileStore) Load(_ context.Context, name string) (*pairing.Event,
	error) {

	path := fs.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, path)
		}
		return nil, fmt.Errorf("unable to read event %v: %w", path, err)
	}

	var ef eventFile
	if err := yaml.Unmarshal(data, &ef); err != nil {
		return nil, fmt.Errorf("unable to parse event %v: %w", path, err)
	}
	ef.Event.Date, err = internal.ParseDateOrZero(ef.Date)
	if err != nil {
		return nil, fmt.Errorf("event %v: invalid date %q: %w", path, ef.Date,
			err)
	}

	return &ef.Event, nil
}

// Save writes ev to a temporary file and renames it over the old one.
func (fs *FileStore) Save(_ context.Context, name string,
	ev *pairing.Event) error {

	ef := eventFile{Event: *ev}
	if !ev.Date.IsZero() {
		ef.Date = ev.Date.Format(dateLayout)
	}
	data, err := yaml.Marshal(&ef)
	if err != nil {
		return fmt.Errorf("unable to encode event: %w", err)
	}

	path := fs.path(name)
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("unable to save event %v: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to save event %v: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to save event %v: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to save event %v: %w", path, err)
	}
	return nil
}
