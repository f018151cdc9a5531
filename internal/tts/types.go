// Package tts holds the Tabletop Simulator saved-object types shared by the
// set index builder (which reads saves) and the deck assembler (which writes
// them).
package tts

// AssetSheet is one CustomDeck entry: a grid image holding card faces.
type AssetSheet struct {
	FaceURL      string `json:"FaceURL"`
	BackURL      string `json:"BackURL"`
	NumWidth     int    `json:"NumWidth"`
	NumHeight    int    `json:"NumHeight"`
	BackIsHidden bool   `json:"BackIsHidden"`
	UniqueBack   bool   `json:"UniqueBack"`
	Type         int    `json:"Type"`
}

type Transform struct {
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	PosZ   float64 `json:"posZ"`
	RotX   float64 `json:"rotX"`
	RotY   float64 `json:"rotY"`
	RotZ   float64 `json:"rotZ"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	ScaleZ float64 `json:"scaleZ"`
}

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ObjectBase carries the fields every exported deck and card share.
type ObjectBase struct {
	GUID                 string    `json:"GUID"`
	Name                 string    `json:"Name"`
	Transform            Transform `json:"Transform"`
	Nickname             string    `json:"Nickname"`
	Description          string    `json:"Description"`
	GMNotes              string    `json:"GMNotes"`
	AltLookAngle         Vector    `json:"AltLookAngle"`
	ColorDiffuse         Color     `json:"ColorDiffuse"`
	LayoutGroupSortIndex int       `json:"LayoutGroupSortIndex"`
	Value                int       `json:"Value"`
	Locked               bool      `json:"Locked"`
	Grid                 bool      `json:"Grid"`
	Snap                 bool      `json:"Snap"`
	IgnoreFoW            bool      `json:"IgnoreFoW"`
	MeasureMovement      bool      `json:"MeasureMovement"`
	DragSelectable       bool      `json:"DragSelectable"`
	Autoraise            bool      `json:"Autoraise"`
	Sticky               bool      `json:"Sticky"`
	Tooltip              bool      `json:"Tooltip"`
	GridProjection       bool      `json:"GridProjection"`
	HideWhenFaceDown     bool      `json:"HideWhenFaceDown"`
	Hands                bool      `json:"Hands"`
	SidewaysCard         bool      `json:"SidewaysCard"`
	LuaScript            string    `json:"LuaScript"`
	LuaScriptState       string    `json:"LuaScriptState"`
	XmlUI                string    `json:"XmlUI"`
}

// Card is a single card instance inside a deck.
type Card struct {
	ObjectBase
	CardID     int                 `json:"CardID"`
	CustomDeck map[int]*AssetSheet `json:"CustomDeck"`
}

// Deck is a stack of cards. DeckIDs and ContainedObjects are parallel.
type Deck struct {
	ObjectBase
	DeckIDs          []int               `json:"DeckIDs"`
	CustomDeck       map[int]*AssetSheet `json:"CustomDeck"`
	ContainedObjects []*Card             `json:"ContainedObjects"`
}

// SaveFile is the envelope TTS expects around saved objects.
type SaveFile struct {
	SaveName       string         `json:"SaveName"`
	Date           string         `json:"Date"`
	VersionNumber  string         `json:"VersionNumber"`
	GameMode       string         `json:"GameMode"`
	GameType       string         `json:"GameType"`
	GameComplexity string         `json:"GameComplexity"`
	Tags           []string       `json:"Tags"`
	Gravity        float64        `json:"Gravity"`
	PlayArea       float64        `json:"PlayArea"`
	Table          string         `json:"Table"`
	Sky            string         `json:"Sky"`
	Note           string         `json:"Note"`
	TabStates      map[string]any `json:"TabStates"`
	LuaScript      string         `json:"LuaScript"`
	LuaScriptState string         `json:"LuaScriptState"`
	XmlUI          string         `json:"XmlUI"`
	ObjectStates   []*Deck        `json:"ObjectStates"`
}

// SavedObject is the loosely typed node read back from an arbitrary save.
// Only the fields the index builder needs are decoded.
type SavedObject struct {
	Name             string              `json:"Name"`
	Nickname         string              `json:"Nickname"`
	CardID           int                 `json:"CardID"`
	CustomDeck       map[int]*AssetSheet `json:"CustomDeck"`
	ContainedObjects []*SavedObject      `json:"ContainedObjects"`
}

// SavedObjectFile is one file from the TTS "Saved Objects" directory.
type SavedObjectFile struct {
	SaveName     string         `json:"SaveName"`
	ObjectStates []*SavedObject `json:"ObjectStates"`
}
