package setindex

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/youruser/ttsdeck/internal/cards"
)

// OutcomeKind tags the result of running a deck nickname through the rules.
type OutcomeKind int

const (
	// NotASet means no naming convention matched; the node is only a
	// container and its children are still searched.
	NotASet OutcomeKind = iota
	// Matched means the nickname named a set with a known abbreviation.
	Matched
	// Unclassified means a convention matched but no abbreviation could be
	// found for the derived set name.
	Unclassified
)

func (k OutcomeKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Unclassified:
		return "unclassified"
	default:
		return "not-a-set"
	}
}

// Outcome is what a Rule decided about one deck nickname.
type Outcome struct {
	Kind    OutcomeKind
	Rule    string
	SetID   string
	SetName string
	SetAbbr string
	Reason  string
}

// Rule classifies a deck nickname. ok is false when the rule's naming
// convention does not apply at all, so the next rule is tried.
type Rule interface {
	Name() string
	Classify(nickname string, mapping cards.SetMapping) (out Outcome, ok bool)
}

// DefaultRules is the ordered rule list; the first applicable rule wins.
func DefaultRules() []Rule {
	return []Rule{
		standardSetRule{},
		promoSetRule{},
		popSeriesRule{},
		specialCaseRule{},
	}
}

// Classify runs nickname through rules in order. The nickname is NFC
// normalized first so "Pokémon" matches however the save spelled it.
func Classify(rules []Rule, nickname string, mapping cards.SetMapping) Outcome {
	nickname = norm.NFC.String(nickname)
	for _, r := range rules {
		if out, ok := r.Classify(nickname, mapping); ok {
			out.Rule = r.Name()
			return out
		}
	}
	return Outcome{Kind: NotASet}
}

func lookup(mapping cards.SetMapping, setID, setName string) Outcome {
	abbr, ok := mapping.Abbr(setName)
	if !ok {
		return Outcome{
			Kind:    Unclassified,
			SetID:   setID,
			SetName: setName,
			Reason:  fmt.Sprintf("no abbreviation for set name %q", setName),
		}
	}
	return Outcome{Kind: Matched, SetID: setID, SetName: setName, SetAbbr: abbr}
}

var (
	standardSetRegex = regexp.MustCompile(`^\((\d{2,3})\) (.*)$`)
	eraPrefixRegex   = regexp.MustCompile(`^(BW|DP|EX|HS|PL|SM|SWSH|XY)?\s*(.*)$`)
	promoSetRegex    = regexp.MustCompile(`(?i)^(.*) Promos$`)
	popSeriesRegex   = regexp.MustCompile(`(?i)^(POP Series \d+)$`)
	popTokenRegex    = regexp.MustCompile(`(?i)^pop`)
)

// Set names that appear under a different spelling in the saves than in the
// mapping table.
var irregularSetNames = map[string]string{
	"Burning Shadow":      "Burning Shadows",
	"Expedition Base Set": "Expedition",
	"Power Keeper":        "Power Keepers",
}

// standardSetRule handles "(NN) <era><name>", e.g. "(71) SM Burning Shadow".
type standardSetRule struct{}

func (standardSetRule) Name() string { return "standard" }

func (standardSetRule) Classify(nickname string, mapping cards.SetMapping) (Outcome, bool) {
	m := standardSetRegex.FindStringSubmatch(nickname)
	if m == nil {
		return Outcome{}, false
	}
	setID := m[1]

	// always matches; both groups are optional
	parts := eraPrefixRegex.FindStringSubmatch(m[2])
	era, name := parts[1], parts[2]

	if _, ok := mapping.Abbr(name); ok {
		return lookup(mapping, setID, name), true
	}

	switch {
	case name == "":
		// "(01) XY" names the era's base set.
		name = era
	default:
		renamed, ok := irregularSetNames[name]
		if !ok {
			return Outcome{
				Kind:    Unclassified,
				SetID:   setID,
				SetName: name,
				Reason:  fmt.Sprintf("no abbreviation for set name %q", name),
			}, true
		}
		name = renamed
	}
	return lookup(mapping, setID, name), true
}

// Promo sets use fixed abbreviations not present in the mapping table.
var promoSetAbbrs = map[string]string{
	"Scarlet & Violet Promos":       "PR-SV",
	"XY Promos":                     "PR-XY",
	"Sword & Shield Promos":         "PR-SW",
	"Sun & Moon Promos":             "PR-SM",
	"Black & White Promos":          "PR-BLW",
	"HeartGold & SoulSilver Promos": "PR-HS",
	"Diamond & Pearl Promos":        "PR-DPP",
	"Wizards Star Promos":           "PR",
	"Nintendo Star Promos":          "PR-NP",
}

type promoSetRule struct{}

func (promoSetRule) Name() string { return "promo" }

func (promoSetRule) Classify(nickname string, _ cards.SetMapping) (Outcome, bool) {
	if !promoSetRegex.MatchString(nickname) {
		return Outcome{}, false
	}
	abbr, ok := promoSetAbbrs[nickname]
	if !ok {
		return Outcome{
			Kind:    Unclassified,
			SetName: nickname,
			Reason:  fmt.Sprintf("unknown promo set %q", nickname),
		}, true
	}
	return Outcome{Kind: Matched, SetName: nickname, SetAbbr: abbr}, true
}

type popSeriesRule struct{}

func (popSeriesRule) Name() string { return "pop-series" }

func (popSeriesRule) Classify(nickname string, mapping cards.SetMapping) (Outcome, bool) {
	if !popSeriesRegex.MatchString(nickname) {
		return Outcome{}, false
	}
	name := popTokenRegex.ReplaceAllString(nickname, "POP")
	return lookup(mapping, "", name), true
}

// Historically irregular deck names, mapped to the canonical set name.
var specialSetNames = map[string]string{
	"Pokémon GO":                 "Pokémon GO",
	"Celebrations":               "Celebrations",
	"Pokémon Futsal Collection":  "Pokémon Futsal Promos 2020",
	"SWSH Shining Fates":         "Shining Fates",
	"SWSH Crown Zenith":          "Crown Zenith",
	"Detective Pikachu":          "Detective Pikachu",
	"(59a) XY Kalos Starter Set": "Kalos Starter Set",
	"(63a) XY Double Crisis":     "Double Crisis",
	"(53a) BW Dragon Vault":      "Dragon Vault",
}

type specialCaseRule struct{}

func (specialCaseRule) Name() string { return "special" }

func (specialCaseRule) Classify(nickname string, mapping cards.SetMapping) (Outcome, bool) {
	name, ok := specialSetNames[strings.TrimSpace(nickname)]
	if !ok {
		return Outcome{}, false
	}
	return lookup(mapping, "", name), true
}
