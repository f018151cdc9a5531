package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/ttsdeck/internal/deck"
	"github.com/youruser/ttsdeck/internal/decklist"
	imagepkg "github.com/youruser/ttsdeck/internal/image"
	"github.com/youruser/ttsdeck/internal/indexstore"
	"github.com/youruser/ttsdeck/internal/logging"
	"github.com/youruser/ttsdeck/internal/util"
)

var (
	buildIndexPath string
	buildName      string
	buildDesc      string
	buildOutDir    string
	buildAppend    bool
	buildStrict    bool
	buildLabel     bool
)

var buildCmd = &cobra.Command{
	Use:   "build [decklist file]",
	Short: "Convert a decklist into a TTS saved object",
	Long: `Reads a decklist (one "QTY NAME SET NUM" per line) from the given file or
stdin, resolves it against the set index and writes <name>.json plus the
<name>.png card back into the output directory.

Lines that cannot be resolved are reported and left out of the deck.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildIndexPath != "" {
			cfg.Index.Path = buildIndexPath
		}
		if buildOutDir != "" {
			cfg.Export.Dir = buildOutDir
		}
		if cmd.Flags().Changed("append") {
			cfg.Export.Append = buildAppend
		}

		text, err := readDecklist(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		ix, err := indexstore.Load(cfg.Index.Path)
		if err != nil {
			return err
		}

		res := decklist.Parse(text, ix)
		logging.ParseMessages(logger, res.Warnings, res.Errors)
		if buildStrict && len(res.Errors) > 0 {
			return errors.Errorf("%d decklist lines could not be resolved", len(res.Errors))
		}

		save := deck.Assemble(res.Groups, deck.Options{
			Name:        buildName,
			Description: buildDesc,
			Append:      cfg.Export.Append,
		})
		name := save.ObjectStates[0].Nickname

		back, err := imagepkg.CardBackPNG(cfg.Export.CardBackPath)
		if err != nil {
			return err
		}
		files, err := deck.WriteSaveFile(cfg.Export.Dir, name, save, back)
		if err != nil {
			return err
		}

		if buildLabel {
			label, err := imagepkg.DeckLabelPNG(deck.ExportDecklistText(res.Groups), cfg.Export.CardBackPath)
			if err != nil {
				return err
			}
			labelPath := strings.TrimSuffix(files.SaveFile, ".json") + "-label.png"
			if err := util.WriteFile(labelPath, label); err != nil {
				return errors.Wrapf(err, "failed to write %s", labelPath)
			}
		}

		logger.Info("deck written",
			zap.String("save_file", files.SaveFile),
			zap.String("card_back", files.CardBack),
			zap.Int("cards", len(save.ObjectStates[0].DeckIDs)),
			zap.Int("warnings", len(res.Warnings)),
			zap.Int("errors", len(res.Errors)))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildIndexPath, "index", "i", "", "set index artifact (.json, .db)")
	buildCmd.Flags().StringVarP(&buildName, "name", "n", "", "deck name, also the output file name")
	buildCmd.Flags().StringVar(&buildDesc, "description", "", "deck description")
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "output directory")
	buildCmd.Flags().BoolVar(&buildAppend, "append", false, "keep decklist order instead of front insertion")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "fail when any line cannot be resolved")
	buildCmd.Flags().BoolVar(&buildLabel, "label", false, "also write a QR label of the resolved decklist")
}

func readDecklist(stdin io.Reader, args []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read decklist")
	}
	return string(b), nil
}
