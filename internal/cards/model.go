package cards

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/youruser/ttsdeck/internal/tts"
)

var ErrInvalidReferenceID = errors.New("invalid reference id")

// CardRef pairs a TTS CardID with the card's display name.
type CardRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SetEntry is one set mined from the saved objects.
type SetEntry struct {
	SetID      string                  `json:"setId,omitempty"`
	SetName    string                  `json:"setName"`
	SetAbbr    string                  `json:"setAbbr"`
	DeckAssets map[int]*tts.AssetSheet `json:"deckAssets"`
	Cards      []CardRef               `json:"cards"`

	byName map[string]int
	byID   []CardRef
}

// CardID returns the reference id stored for name.
func (s *SetEntry) CardID(name string) (int, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// CardsByID returns the distinct cards of the set ordered by increasing
// reference id.
func (s *SetEntry) CardsByID() []CardRef {
	return s.byID
}

// Names returns the distinct card names of the set ordered by reference id.
func (s *SetEntry) Names() []string {
	names := make([]string, 0, len(s.byID))
	for _, c := range s.byID {
		names = append(names, c.Name)
	}
	return names
}

// Sheet returns the asset sheet a reference id points into.
func (s *SetEntry) Sheet(referenceID int) (*tts.AssetSheet, int, error) {
	sheetIdx, cardIdx, err := SplitReferenceID(referenceID)
	if err != nil {
		return nil, 0, err
	}
	sheet, ok := s.DeckAssets[sheetIdx]
	if !ok || sheet == nil {
		return nil, 0, errors.Wrapf(ErrInvalidReferenceID, "no asset sheet %d for reference id %d", sheetIdx, referenceID)
	}
	return sheet, cardIdx, nil
}

func (s *SetEntry) index() {
	s.byName = make(map[string]int, len(s.Cards))
	for _, c := range s.Cards {
		// later duplicates win
		s.byName[c.Name] = c.ID
	}

	s.byID = make([]CardRef, 0, len(s.byName))
	for name, id := range s.byName {
		s.byID = append(s.byID, CardRef{ID: id, Name: name})
	}
	sort.Slice(s.byID, func(i, j int) bool {
		if s.byID[i].ID != s.byID[j].ID {
			return s.byID[i].ID < s.byID[j].ID
		}
		return s.byID[i].Name < s.byID[j].Name
	})
}

// SplitReferenceID decodes a composite reference id: every digit but the
// last two is the asset sheet index, the last two are the cell inside it.
func SplitReferenceID(referenceID int) (sheet int, card int, err error) {
	if referenceID < 100 {
		return 0, 0, errors.Wrapf(ErrInvalidReferenceID, "reference id %d has no sheet digits", referenceID)
	}
	return referenceID / 100, referenceID % 100, nil
}

// Index is the read-only set lookup the decklist parser resolves against.
type Index struct {
	sets  map[string]*SetEntry
	order []*SetEntry
}

// NewIndex copies entries into an immutable index keyed by set abbreviation.
// Entries without an abbreviation are dropped; a later entry with the same
// abbreviation replaces an earlier one.
func NewIndex(entries []SetEntry) *Index {
	ix := &Index{sets: make(map[string]*SetEntry, len(entries))}
	pos := make(map[string]int, len(entries))
	for i := range entries {
		if entries[i].SetAbbr == "" {
			continue
		}
		e := entries[i]
		e.Cards = append([]CardRef(nil), entries[i].Cards...)
		e.index()

		if j, dup := pos[e.SetAbbr]; dup {
			ix.order[j] = &e
		} else {
			pos[e.SetAbbr] = len(ix.order)
			ix.order = append(ix.order, &e)
		}
		ix.sets[e.SetAbbr] = &e
	}
	return ix
}

// Lookup returns the set stored under abbr.
func (ix *Index) Lookup(abbr string) (*SetEntry, bool) {
	if ix == nil {
		return nil, false
	}
	s, ok := ix.sets[abbr]
	return s, ok
}

// Sets returns every set in artifact order.
func (ix *Index) Sets() []*SetEntry {
	if ix == nil {
		return nil
	}
	return ix.order
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.order)
}
