package indexstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/tts"
	"github.com/youruser/ttsdeck/internal/util"
)

const schema = `
CREATE TABLE sets (
	position INTEGER PRIMARY KEY,
	set_id   TEXT NOT NULL,
	set_name TEXT NOT NULL,
	set_abbr TEXT NOT NULL
);
CREATE TABLE deck_assets (
	set_position   INTEGER NOT NULL REFERENCES sets(position),
	sheet          INTEGER NOT NULL,
	face_url       TEXT NOT NULL,
	back_url       TEXT NOT NULL,
	num_width      INTEGER NOT NULL,
	num_height     INTEGER NOT NULL,
	back_is_hidden INTEGER NOT NULL,
	unique_back    INTEGER NOT NULL,
	type           INTEGER NOT NULL,
	PRIMARY KEY (set_position, sheet)
);
CREATE TABLE cards (
	set_position INTEGER NOT NULL REFERENCES sets(position),
	ord          INTEGER NOT NULL,
	card_id      INTEGER NOT NULL,
	name         TEXT NOT NULL,
	PRIMARY KEY (set_position, ord)
);
CREATE INDEX cards_by_name ON cards(set_position, name);
`

// SaveSQLite replaces the database at path with entries. The database is
// built in a temporary sibling and renamed over path only once committed,
// so a failed or cancelled save leaves the previous artifact in place.
func SaveSQLite(ctx context.Context, path string, entries []cards.SetEntry) (err error) {
	dir := filepath.Dir(path)
	if err := util.EnsureDir(dir); err != nil {
		return errors.Wrap(err, "failed to create index dir")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary index in %s", dir)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err = writeSQLite(ctx, tmpPath, entries); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return errors.Wrapf(err, "failed to chmod %s", tmpPath)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to replace set index %s", path)
	}
	return nil
}

func writeSQLite(ctx context.Context, path string, entries []cards.SetEntry) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer db.Close()

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to create schema")
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for pos, e := range entries {
		if _, err = tx.ExecContext(ctx, `INSERT INTO sets (position, set_id, set_name, set_abbr) VALUES (?, ?, ?, ?)`,
			pos, e.SetID, e.SetName, e.SetAbbr); err != nil {
			return errors.Wrapf(err, "failed to insert set %s", e.SetAbbr)
		}
		for sheet, a := range e.DeckAssets {
			if a == nil {
				continue
			}
			if _, err = tx.ExecContext(ctx, `INSERT INTO deck_assets
				(set_position, sheet, face_url, back_url, num_width, num_height, back_is_hidden, unique_back, type)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				pos, sheet, a.FaceURL, a.BackURL, a.NumWidth, a.NumHeight, a.BackIsHidden, a.UniqueBack, a.Type); err != nil {
				return errors.Wrapf(err, "failed to insert asset sheet %d of set %s", sheet, e.SetAbbr)
			}
		}
		for ord, c := range e.Cards {
			if _, err = tx.ExecContext(ctx, `INSERT INTO cards (set_position, ord, card_id, name) VALUES (?, ?, ?, ?)`,
				pos, ord, c.ID, c.Name); err != nil {
				return errors.Wrapf(err, "failed to insert card %s of set %s", c.Name, e.SetAbbr)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit set index")
	}
	return nil
}

// LoadSQLite reads every set back in stored order.
func LoadSQLite(path string) ([]cards.SetEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "failed to stat set index %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT position, set_id, set_name, set_abbr FROM sets ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sets")
	}
	var entries []cards.SetEntry
	byPos := map[int]int{}
	for rows.Next() {
		var (
			pos int
			e   cards.SetEntry
		)
		if err := rows.Scan(&pos, &e.SetID, &e.SetName, &e.SetAbbr); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "failed to scan set")
		}
		e.DeckAssets = map[int]*tts.AssetSheet{}
		e.Cards = []cards.CardRef{}
		byPos[pos] = len(entries)
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read sets")
	}

	if err := loadDeckAssets(db, entries, byPos); err != nil {
		return nil, err
	}
	if err := loadCards(db, entries, byPos); err != nil {
		return nil, err
	}
	return entries, nil
}

func loadDeckAssets(db *sql.DB, entries []cards.SetEntry, byPos map[int]int) error {
	rows, err := db.Query(`SELECT set_position, sheet, face_url, back_url, num_width, num_height, back_is_hidden, unique_back, type
		FROM deck_assets ORDER BY set_position, sheet`)
	if err != nil {
		return errors.Wrap(err, "failed to query asset sheets")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos, sheet int
			a          tts.AssetSheet
		)
		if err := rows.Scan(&pos, &sheet, &a.FaceURL, &a.BackURL, &a.NumWidth, &a.NumHeight, &a.BackIsHidden, &a.UniqueBack, &a.Type); err != nil {
			return errors.Wrap(err, "failed to scan asset sheet")
		}
		i, ok := byPos[pos]
		if !ok {
			continue
		}
		entries[i].DeckAssets[sheet] = &a
	}
	return errors.Wrap(rows.Err(), "failed to read asset sheets")
}

func loadCards(db *sql.DB, entries []cards.SetEntry, byPos map[int]int) error {
	rows, err := db.Query(`SELECT set_position, card_id, name FROM cards ORDER BY set_position, ord`)
	if err != nil {
		return errors.Wrap(err, "failed to query cards")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			pos int
			c   cards.CardRef
		)
		if err := rows.Scan(&pos, &c.ID, &c.Name); err != nil {
			return errors.Wrap(err, "failed to scan card")
		}
		i, ok := byPos[pos]
		if !ok {
			continue
		}
		entries[i].Cards = append(entries[i].Cards, c)
	}
	return errors.Wrap(rows.Err(), "failed to read cards")
}
