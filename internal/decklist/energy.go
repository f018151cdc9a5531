package decklist

import (
	"strings"

	"github.com/youruser/ttsdeck/internal/tts"
)

// EnergyType is one of the nine basic energy types.
type EnergyType string

const (
	Grass     EnergyType = "Grass"
	Fire      EnergyType = "Fire"
	Water     EnergyType = "Water"
	Lightning EnergyType = "Lightning"
	Psychic   EnergyType = "Psychic"
	Fighting  EnergyType = "Fighting"
	Darkness  EnergyType = "Darkness"
	Metal     EnergyType = "Metal"
	Fairy     EnergyType = "Fairy"
)

// EnergySetAbbr appears in the set column when a basic energy line carries
// no set.
const EnergySetAbbr = "Energy"

const energyBackURL = "http://cloud-3.steamusercontent.com/ugc/993492320947720504/9BE66430CD3C340060773E321DDD5FD86C1F2703/"

func energySheet(faceURL string) *tts.AssetSheet {
	return &tts.AssetSheet{
		FaceURL:      faceURL,
		BackURL:      energyBackURL,
		NumWidth:     10,
		NumHeight:    7,
		BackIsHidden: true,
		UniqueBack:   false,
		Type:         0,
	}
}

var (
	energySheetMDL = energySheet("https://i.imgur.com/uKT9NX3.jpg")
	energySheetFPW = energySheet("https://i.imgur.com/S2NzT92.jpg")
	energySheetFG  = energySheet("https://i.imgur.com/iRtj50x.jpg")
	energySheetY   = energySheet("https://i.imgur.com/qvHhlzK.jpg")
)

type energyCard struct {
	sheet       *tts.AssetSheet
	referenceID int
}

var basicEnergy = map[EnergyType]energyCard{
	Metal:     {sheet: energySheetMDL, referenceID: 829},
	Darkness:  {sheet: energySheetMDL, referenceID: 828},
	Lightning: {sheet: energySheetMDL, referenceID: 827},
	Fighting:  {sheet: energySheetFPW, referenceID: 1025},
	Psychic:   {sheet: energySheetFPW, referenceID: 1024},
	Water:     {sheet: energySheetFPW, referenceID: 1023},
	Fire:      {sheet: energySheetFG, referenceID: 1007},
	Grass:     {sheet: energySheetFG, referenceID: 1006},
	Fairy:     {sheet: energySheetY, referenceID: 638},
}

// EnergyTypes lists the basic energy types.
func EnergyTypes() []EnergyType {
	return []EnergyType{Grass, Fire, Water, Lightning, Psychic, Fighting, Darkness, Metal, Fairy}
}

// lookupEnergy accepts "Metal", "Metal Energy" and "Basic Metal Energy".
func lookupEnergy(name string) (EnergyType, energyCard, bool) {
	keyword := strings.TrimSpace(name)
	keyword = strings.TrimSuffix(keyword, " Energy")
	keyword = strings.TrimPrefix(keyword, "Basic ")
	keyword = strings.TrimSpace(keyword)

	for _, t := range EnergyTypes() {
		if strings.EqualFold(string(t), keyword) {
			return t, basicEnergy[t], true
		}
	}
	return "", energyCard{}, false
}
