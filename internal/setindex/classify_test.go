package setindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/youruser/ttsdeck/internal/cards"
)

var testMapping = cards.SetMapping{
	"Base Set":                   "BS",
	"Burning Shadows":            "BUS",
	"Expedition":                 "EX",
	"XY":                         "XY",
	"Ultra Prism":                "UPR",
	"POP Series 5":               "P5",
	"Shining Fates":              "SHF",
	"Kalos Starter Set":          "KSS",
	"Pokémon Futsal Promos 2020": "FUT20",
	"Celebrations":               "CEL",
}

func TestClassify(t *testing.T) {
	tcs := []struct {
		nickname string
		want     Outcome
	}{
		{"(01) Base Set", Outcome{Kind: Matched, Rule: "standard", SetID: "01", SetName: "Base Set", SetAbbr: "BS"}},
		{"(110) SM Ultra Prism", Outcome{Kind: Matched, Rule: "standard", SetID: "110", SetName: "Ultra Prism", SetAbbr: "UPR"}},
		{"(71) SM Burning Shadow", Outcome{Kind: Matched, Rule: "standard", SetID: "71", SetName: "Burning Shadows", SetAbbr: "BUS"}},
		{"(35) Expedition Base Set", Outcome{Kind: Matched, Rule: "standard", SetID: "35", SetName: "Expedition", SetAbbr: "EX"}},
		{"(60) XY", Outcome{Kind: Matched, Rule: "standard", SetID: "60", SetName: "XY", SetAbbr: "XY"}},
		{"XY Promos", Outcome{Kind: Matched, Rule: "promo", SetName: "XY Promos", SetAbbr: "PR-XY"}},
		{"Wizards Star Promos", Outcome{Kind: Matched, Rule: "promo", SetName: "Wizards Star Promos", SetAbbr: "PR"}},
		{"Pop Series 5", Outcome{Kind: Matched, Rule: "pop-series", SetName: "POP Series 5", SetAbbr: "P5"}},
		{"SWSH Shining Fates", Outcome{Kind: Matched, Rule: "special", SetName: "Shining Fates", SetAbbr: "SHF"}},
		{"(59a) XY Kalos Starter Set", Outcome{Kind: Matched, Rule: "special", SetName: "Kalos Starter Set", SetAbbr: "KSS"}},
		{"Pokémon Futsal Collection", Outcome{Kind: Matched, Rule: "special", SetName: "Pokémon Futsal Promos 2020", SetAbbr: "FUT20"}},
		{"Celebrations", Outcome{Kind: Matched, Rule: "special", SetName: "Celebrations", SetAbbr: "CEL"}},
		{"Charizard Theme Deck", Outcome{Kind: NotASet}},
		{"(7) Too Short", Outcome{Kind: NotASet}},
	}

	for _, tc := range tcs {
		t.Run(tc.nickname, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(DefaultRules(), tc.nickname, testMapping))
		})
	}
}

func TestClassifyUnclassified(t *testing.T) {
	tcs := []struct {
		nickname string
		rule     string
		setName  string
	}{
		{"(99) SWSH Unknown Set", "standard", "Unknown Set"},
		{"Team Rocket Promos", "promo", "Team Rocket Promos"},
		{"POP Series 9", "pop-series", "POP Series 9"},
		{"Detective Pikachu", "special", "Detective Pikachu"},
	}

	for _, tc := range tcs {
		t.Run(tc.nickname, func(t *testing.T) {
			out := Classify(DefaultRules(), tc.nickname, testMapping)
			assert.Equal(t, Unclassified, out.Kind)
			assert.Equal(t, tc.rule, out.Rule)
			assert.Equal(t, tc.setName, out.SetName)
			assert.Empty(t, out.SetAbbr)
			assert.NotEmpty(t, out.Reason)
		})
	}
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "unclassified", Unclassified.String())
	assert.Equal(t, "not-a-set", NotASet.String())
}
