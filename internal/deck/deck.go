// Package deck assembles resolved decklist groups into a Tabletop Simulator
// saved object.
package deck

import (
	"github.com/google/uuid"

	"github.com/youruser/ttsdeck/internal/decklist"
	"github.com/youruser/ttsdeck/internal/tts"
)

const guidLength = 6

// NewGUID returns the last six characters of a random UUID. TTS only uses
// it as a display tag, so collisions are not checked.
func NewGUID() string {
	id := uuid.NewString()
	return id[len(id)-guidLength:]
}

// Options control assembly.
type Options struct {
	Name        string
	Description string
	// Append keeps copies in decklist order. By default the deck comes out
	// as if each copy had been placed on top, which matches decks exported
	// by earlier versions.
	Append bool
	// GUID generates object tags; NewGUID when nil.
	GUID func() string
}

func (o Options) guid() string {
	if o.GUID != nil {
		return o.GUID()
	}
	return NewGUID()
}

func baseObject(guid, name, nickname, description string) tts.ObjectBase {
	return tts.ObjectBase{
		GUID: guid,
		Name: name,
		Transform: tts.Transform{
			RotY:   180,
			ScaleX: 1.0,
			ScaleY: 1.0,
			ScaleZ: 1.0,
		},
		Nickname:         nickname,
		Description:      description,
		ColorDiffuse:     tts.Color{R: 0.713235259, G: 0.713235259, B: 0.713235259},
		Grid:             true,
		Snap:             true,
		DragSelectable:   true,
		Autoraise:        true,
		Sticky:           true,
		Tooltip:          true,
		HideWhenFaceDown: true,
	}
}

// NewDeck returns an empty deck object.
func NewDeck(guid, name, description string) *tts.Deck {
	return &tts.Deck{
		ObjectBase:       baseObject(guid, "Deck", name, description),
		DeckIDs:          []int{},
		CustomDeck:       map[int]*tts.AssetSheet{},
		ContainedObjects: []*tts.Card{},
	}
}

// NewCard returns a card object showing cell id of its asset sheet.
func NewCard(guid string, id int, name, description string) *tts.Card {
	card := &tts.Card{
		ObjectBase: baseObject(guid, "Card", name, description),
		CardID:     id,
		CustomDeck: map[int]*tts.AssetSheet{},
	}
	card.Hands = true
	return card
}

// WrapForExport places deck inside the save envelope TTS loads.
func WrapForExport(d *tts.Deck) *tts.SaveFile {
	return &tts.SaveFile{
		Tags:         []string{},
		Gravity:      0.5,
		PlayArea:     0.5,
		TabStates:    map[string]any{},
		ObjectStates: []*tts.Deck{d},
	}
}

// AddGroup gives group the next CustomDeck slot and appends quantity copies
// of every call. It returns the slot used.
func AddGroup(d *tts.Deck, group *decklist.Group, opts Options) int {
	slot := len(d.CustomDeck) + 1
	d.CustomDeck[slot] = group.Sheet

	for _, call := range group.Cards {
		cardID := slot*100 + call.ID

		card := NewCard(opts.guid(), cardID, call.Name, "")
		card.CustomDeck[slot] = group.Sheet

		for i := 0; i < call.Quantity; i++ {
			d.DeckIDs = append(d.DeckIDs, cardID)
			d.ContainedObjects = append(d.ContainedObjects, card)
		}
	}
	return slot
}

// reverse flips the deck in place. Appending every copy and reversing once
// yields the same order as inserting each copy at the front.
func reverse(d *tts.Deck) {
	for i, j := 0, len(d.DeckIDs)-1; i < j; i, j = i+1, j-1 {
		d.DeckIDs[i], d.DeckIDs[j] = d.DeckIDs[j], d.DeckIDs[i]
		d.ContainedObjects[i], d.ContainedObjects[j] = d.ContainedObjects[j], d.ContainedObjects[i]
	}
}

// Assemble builds the save file for the resolved groups, one CustomDeck
// slot per group in group order.
func Assemble(groups []*decklist.Group, opts Options) *tts.SaveFile {
	guid := opts.guid()
	name := opts.Name
	if name == "" {
		name = guid
	}

	d := NewDeck(guid, name, opts.Description)
	for _, g := range groups {
		AddGroup(d, g, opts)
	}
	if !opts.Append {
		reverse(d)
	}
	return WrapForExport(d)
}
