// Package setindex mines Tabletop Simulator saved objects for card sets and
// builds the lookup index the decklist parser resolves against.
package setindex

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/tts"
)

var ErrListDirectory = errors.New("could not list the saved objects directory")

// SkippedFile records a file left out of the build.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report summarizes a build.
type Report struct {
	Files        int           `json:"files"`
	Decks        int           `json:"decks"`
	Sets         int           `json:"sets"`
	Unclassified []Outcome     `json:"unclassified"`
	SkippedFiles []SkippedFile `json:"skipped_files"`
}

// Builder walks saved-object files and collects the decks that name sets.
type Builder struct {
	mapping cards.SetMapping
	rules   []Rule
	logger  *zap.Logger
}

type Option func(*Builder)

// WithRules replaces the default classification rules.
func WithRules(rules ...Rule) Option {
	return func(b *Builder) {
		b.rules = rules
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

func NewBuilder(mapping cards.SetMapping, opts ...Option) *Builder {
	b := &Builder{
		mapping: mapping,
		rules:   DefaultRules(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildDir reads every *.json file directly inside dir. An unreadable
// directory aborts the build; an unreadable or malformed file is skipped
// and recorded in the report.
func (b *Builder) BuildDir(dir string) ([]cards.SetEntry, Report, error) {
	var report Report

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, report, errors.Wrapf(ErrListDirectory, "%s: %v", dir, err)
	}

	var entries []cards.SetEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, de.Name())

		file, err := readSavedObjectFile(path)
		if err != nil {
			b.logger.Warn("skipping saved object file", zap.String("path", path), zap.Error(err))
			report.SkippedFiles = append(report.SkippedFiles, SkippedFile{Path: path, Reason: err.Error()})
			continue
		}
		report.Files++

		for _, state := range file.ObjectStates {
			entries = append(entries, b.collect(state, &report)...)
		}
	}

	SortEntries(entries)
	report.Sets = len(entries)

	b.logger.Info("set index built",
		zap.String("dir", dir),
		zap.Int("files", report.Files),
		zap.Int("decks", report.Decks),
		zap.Int("sets", report.Sets),
		zap.Int("unclassified", len(report.Unclassified)),
		zap.Int("skipped", len(report.SkippedFiles)))

	return entries, report, nil
}

// Build collects sets from already decoded objects.
func (b *Builder) Build(objects []*tts.SavedObject) ([]cards.SetEntry, Report) {
	var report Report
	var entries []cards.SetEntry
	for _, obj := range objects {
		entries = append(entries, b.collect(obj, &report)...)
	}
	SortEntries(entries)
	report.Sets = len(entries)
	return entries, report
}

func readSavedObjectFile(path string) (*tts.SavedObjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	var file tts.SavedObjectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode saved object")
	}
	return &file, nil
}

// collect searches the children of obj for set decks. Matched decks are
// still descended into, since some saves nest decks inside set decks.
func (b *Builder) collect(obj *tts.SavedObject, report *Report) []cards.SetEntry {
	if obj == nil {
		return nil
	}

	var matches []cards.SetEntry
	for _, child := range obj.ContainedObjects {
		if child == nil {
			continue
		}

		if strings.EqualFold(child.Name, "deck") {
			report.Decks++
			out := Classify(b.rules, child.Nickname, b.mapping)
			switch out.Kind {
			case Matched:
				matches = append(matches, newSetEntry(out, child))
			case Unclassified:
				b.logger.Warn("unclassified set deck",
					zap.String("nickname", child.Nickname),
					zap.String("rule", out.Rule),
					zap.String("reason", out.Reason))
				report.Unclassified = append(report.Unclassified, out)
			}
		}

		matches = append(matches, b.collect(child, report)...)
	}
	return matches
}

func newSetEntry(out Outcome, deck *tts.SavedObject) cards.SetEntry {
	entry := cards.SetEntry{
		SetID:      out.SetID,
		SetName:    out.SetName,
		SetAbbr:    out.SetAbbr,
		DeckAssets: deck.CustomDeck,
		Cards:      make([]cards.CardRef, 0, len(deck.ContainedObjects)),
	}
	for _, card := range deck.ContainedObjects {
		if card == nil {
			continue
		}
		entry.Cards = append(entry.Cards, cards.CardRef{ID: card.CardID, Name: card.Nickname})
	}
	return entry
}

// SortEntries orders entries by set id; entries without one come first and
// ties keep their discovery order.
func SortEntries(entries []cards.SetEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].SetID, entries[j].SetID
		if a == "" || b == "" {
			return a == "" && b != ""
		}
		return a < b
	})
}
