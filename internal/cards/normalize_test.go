package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCardName(t *testing.T) {
	tcs := []struct {
		in   string
		want string
	}{
		{"Charizard V", "Charizard-V"},
		{"Pikachu VMAX", "Pikachu-VMAX"},
		{"Arceus VSTAR", "Arceus-VSTAR"},
		{"Lugia vstar", "Lugia-vstar"},
		{"Vikavolt", "Vikavolt"},
		{"Professor's Research", "Professor's Research"},
		{"Double Colorless Energy", "Double Colorless Energy"},
		{"Rainbow Energy", "Rainbow Energy"},
		{"Burning Fire Energy", "Burning F Energy"},
		{"Basic Water Energy", "Basic W Energy"},
		{"Team Rocket's Fire Energy", "Team Rocket's F Energy"},
		{"Burning Fire energy", "Burning F energy"},
		{"Pokémon Fire Energy", "Pokémon F Energy"},
		{"burning fire ENERGY", "burning f ENERGY"},
		{"double Colorless Energy", "double Colorless Energy"},
		{"Special Double Colorless Energy", "Special Double Colorless Energy"},
		{"Basic Double Energy", "Basic D Energy"},
		{"Fire Energy", "Fire Energy"},
		{"Burning F Energy", "Burning F Energy"},
		{"Blend Energy GRPD", "Blend Energy GRPD"},
		{"Burning Fire Energy Burning Water Energy", "Burning Fire Energy Burning W Energy"},
		{"Burning`Fire", "Burning'Fire"},
		{"Boss`s Orders", "Boss's Orders"},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCardName(tc.in))
		})
	}
}

func TestNormalizeCardNameIsIdempotent(t *testing.T) {
	for _, in := range []string{"Charizard V", "Burning Fire Energy", "Boss`s Orders", "Team Rocket's Fire Energy", "Pokémon Fire energy"} {
		once := NormalizeCardName(in)
		assert.Equal(t, once, NormalizeCardName(once), in)
	}
}
