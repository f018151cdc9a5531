// Package decklist parses plain-text decklists and resolves every line
// against the set index.
package decklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/unicode/norm"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/tts"
)

var (
	listHeaderRegex = regexp.MustCompile(`^\s*(Pok[eé]mon|Energy|Trainer).*`)
	listItemRegex   = regexp.MustCompile(`^(\d+) (\D*) (.*) (?:\D)*(\d+)$`)
	newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

const maxSuggestions = 3

// LineKind classifies a trimmed decklist line.
type LineKind int

const (
	Blank LineKind = iota
	Header
	ItemLine
	Malformed
)

// Item is one parsed "QTY NAME SET NUM" line.
type Item struct {
	Quantity  int
	Name      string
	SetAbbr   string
	SetNumber string
}

// Call is a resolved card: its cell inside the asset sheet, its name and
// how many copies go into the deck.
type Call struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Group gathers every call drawn from the same asset sheet image.
type Group struct {
	Sheet *tts.AssetSheet `json:"assetData"`
	Cards []Call          `json:"cardData"`
}

// Result is the outcome of parsing a whole decklist. Lines that fail are
// reported in Errors and left out; the rest still resolve.
type Result struct {
	Groups   []*Group `json:"groups"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`

	byFaceURL map[string]*Group
}

// CardCount is the total number of card copies across every group.
func (r *Result) CardCount() int {
	n := 0
	for _, g := range r.Groups {
		for _, c := range g.Cards {
			n += c.Quantity
		}
	}
	return n
}

func (r *Result) add(sheet *tts.AssetSheet, call Call) {
	if r.byFaceURL == nil {
		r.byFaceURL = map[string]*Group{}
	}
	g, ok := r.byFaceURL[sheet.FaceURL]
	if !ok {
		g = &Group{Sheet: sheet}
		r.byFaceURL[sheet.FaceURL] = g
		r.Groups = append(r.Groups, g)
	}
	g.Cards = append(g.Cards, call)
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// SplitLines splits on any newline convention and trims every line.
func SplitLines(text string) []string {
	lines := strings.Split(newlineReplacer.Replace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// ParseLine classifies a single trimmed line and, for item lines, extracts
// its fields.
func ParseLine(line string) (Item, LineKind) {
	if strings.TrimSpace(line) == "" {
		return Item{}, Blank
	}
	if listHeaderRegex.MatchString(line) {
		return Item{}, Header
	}

	m := listItemRegex.FindStringSubmatch(line)
	if m == nil {
		return Item{}, Malformed
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty < 1 {
		return Item{}, Malformed
	}
	return Item{
		Quantity:  qty,
		Name:      m[2],
		SetAbbr:   m[3],
		SetNumber: m[4],
	}, ItemLine
}

// Parse resolves every line of text against ix. The same text and index
// always give the same result.
func Parse(text string, ix *cards.Index) *Result {
	res := &Result{Warnings: []string{}, Errors: []string{}}

	for _, line := range SplitLines(norm.NFC.String(text)) {
		item, kind := ParseLine(line)
		switch kind {
		case Blank, Header:
			continue
		case Malformed:
			res.errorf("error parsing deck item part: %s", line)
			continue
		}

		if item.SetAbbr == EnergySetAbbr {
			resolveEnergy(res, item)
			continue
		}

		set, ok := ix.Lookup(item.SetAbbr)
		if !ok {
			res.errorf("unable to parse set: %s", item.SetAbbr)
			continue
		}
		resolveInSet(res, set, item)
	}

	return res
}

func resolveEnergy(res *Result, item Item) {
	t, card, ok := lookupEnergy(item.Name)
	if !ok {
		res.errorf("found energy card %s %s without a defined set and could not parse", item.Name, item.SetAbbr)
		return
	}
	res.add(card.sheet, Call{
		ID:       card.referenceID % 100,
		Name:     string(t) + " Energy",
		Quantity: item.Quantity,
	})
}

func resolveInSet(res *Result, set *cards.SetEntry, item Item) {
	name := item.Name
	referenceID, found := set.CardID(name)
	if !found {
		name = cards.NormalizeCardName(item.Name)
		referenceID, found = set.CardID(name)
	}

	if !found {
		guess, ok := guessBySetNumber(set, item.SetNumber)
		if !ok {
			res.errorf("unable to find card with name: %s from set %s%s", name, set.SetAbbr, suggest(set, name))
			return
		}
		res.warnf("unable to find card with name: %s from set %s; guessed %s by set number %s, double check after importing",
			name, set.SetAbbr, guess.Name, item.SetNumber)
		referenceID, name = guess.ID, guess.Name
	}

	sheet, cardIdx, err := set.Sheet(referenceID)
	if err != nil {
		res.errorf("unable to place card %s from set %s: %v", name, set.SetAbbr, err)
		return
	}
	res.add(sheet, Call{ID: cardIdx, Name: name, Quantity: item.Quantity})
}

// guessBySetNumber picks the n-th card of the set by increasing reference
// id. Saves that mislabel a card usually still keep it in set order.
func guessBySetNumber(set *cards.SetEntry, setNumber string) (cards.CardRef, bool) {
	if setNumber == "" {
		return cards.CardRef{}, false
	}
	n, err := strconv.Atoi(setNumber)
	if err != nil || n < 1 {
		return cards.CardRef{}, false
	}
	ordered := set.CardsByID()
	if n > len(ordered) {
		return cards.CardRef{}, false
	}
	return ordered[n-1], true
}

func suggest(set *cards.SetEntry, name string) string {
	matches := fuzzy.Find(name, set.Names())
	if len(matches) == 0 {
		return ""
	}
	names := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, m.Str)
	}
	return " (did you mean: " + strings.Join(names, ", ") + "?)"
}
