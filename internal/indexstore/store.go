// Package indexstore persists the set index artifact produced by the index
// builder and loads it back for the decklist parser.
//
// Two formats are supported, picked by file extension: a JSON list of set
// entries (the default), and a SQLite database (".db", ".sqlite").
package indexstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/util"
)

// IsSQLite reports whether path names a SQLite artifact.
func IsSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Save writes entries to path in the format its extension selects. Either
// way the previous artifact stays in place until the new one is complete.
func Save(ctx context.Context, path string, entries []cards.SetEntry) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "set index save cancelled")
	}
	if IsSQLite(path) {
		return SaveSQLite(ctx, path, entries)
	}
	return SaveJSON(path, entries)
}

// Load reads the artifact at path into an index.
func Load(path string) (*cards.Index, error) {
	var (
		entries []cards.SetEntry
		err     error
	)
	if IsSQLite(path) {
		entries, err = LoadSQLite(path)
	} else {
		entries, err = LoadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	return cards.NewIndex(entries), nil
}

func SaveJSON(path string, entries []cards.SetEntry) error {
	if entries == nil {
		entries = []cards.SetEntry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal set index")
	}
	if err := util.WriteFile(path, b); err != nil {
		return errors.Wrapf(err, "failed to write set index %s", path)
	}
	return nil
}

func LoadJSON(path string) ([]cards.SetEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read set index %s", path)
	}
	var entries []cards.SetEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to decode set index %s", path)
	}
	return entries, nil
}
