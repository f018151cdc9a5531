package deck

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/youruser/ttsdeck/internal/decklist"
	"github.com/youruser/ttsdeck/internal/tts"
	"github.com/youruser/ttsdeck/internal/util"
)

var ErrEmptyDeckName = errors.New("empty deck name")

// ExportDecklistText renders groups back into "<qty> <name>" lines, in
// group order.
func ExportDecklistText(groups []*decklist.Group) string {
	lines := []string{}
	for _, g := range groups {
		for _, c := range g.Cards {
			lines = append(lines, strings.TrimSpace(strconv.Itoa(c.Quantity)+" "+c.Name))
		}
	}
	return strings.Join(lines, "\n")
}

// MarshalSaveFile encodes save the way TTS writes saved objects.
func MarshalSaveFile(save *tts.SaveFile) ([]byte, error) {
	b, err := json.MarshalIndent(save, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal save file")
	}
	return b, nil
}

// Files lists what WriteSaveFile produced.
type Files struct {
	SaveFile string
	CardBack string
}

// WriteSaveFile writes <name>.json and, when cardBack is not empty, the
// companion <name>.png card back into dir.
func WriteSaveFile(dir, name string, save *tts.SaveFile, cardBack []byte) (Files, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Files{}, ErrEmptyDeckName
	}
	b, err := MarshalSaveFile(save)
	if err != nil {
		return Files{}, err
	}

	files := Files{SaveFile: filepath.Join(dir, name+".json")}
	if err := util.WriteFile(files.SaveFile, b); err != nil {
		return Files{}, errors.Wrapf(err, "failed to write %s", files.SaveFile)
	}

	if len(cardBack) > 0 {
		files.CardBack = filepath.Join(dir, name+".png")
		if err := util.WriteFile(files.CardBack, cardBack); err != nil {
			return Files{}, errors.Wrapf(err, "failed to write %s", files.CardBack)
		}
	}
	return files, nil
}
