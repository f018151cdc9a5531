package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func abbrs(sets []*SetEntry) []string {
	out := []string{}
	for _, s := range sets {
		out = append(out, s.SetAbbr)
	}
	return out
}

func TestFilterSets(t *testing.T) {
	ix := NewIndex([]SetEntry{
		{SetName: "XY Promos", SetAbbr: "PR-XY"},
		{SetID: "01", SetName: "Base Set", SetAbbr: "BS", Cards: []CardRef{{ID: 101, Name: "Charmander"}}},
		{SetID: "71", SetName: "Burning Shadows", SetAbbr: "BUS"},
	})

	tcs := []struct {
		name string
		opt  FilterOptions
		want []string
	}{
		{"no options", FilterOptions{}, []string{"PR-XY", "BS", "BUS"}},
		{"numbered", FilterOptions{Numbered: "numbered"}, []string{"BS", "BUS"}},
		{"unnumbered", FilterOptions{Numbered: "unnumbered"}, []string{"PR-XY"}},
		{"abbr", FilterOptions{Abbrs: []string{"bus"}}, []string{"BUS"}},
		{"free words", FilterOptions{FreeWords: "burning shadows"}, []string{"BUS"}},
		{"free words on abbr", FilterOptions{FreeWords: "pr-"}, []string{"PR-XY"}},
		{"card name", FilterOptions{CardName: "Charmander"}, []string{"BS"}},
		{"nothing", FilterOptions{FreeWords: "jungle"}, []string{}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, abbrs(FilterSets(ix, tc.opt)))
		})
	}
}
