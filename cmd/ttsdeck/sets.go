package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/indexstore"
)

var (
	setsIndexPath string
	setsFilter    cards.FilterOptions
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the sets in the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		if setsIndexPath != "" {
			cfg.Index.Path = setsIndexPath
		}
		ix, err := indexstore.Load(cfg.Index.Path)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tABBR\tNAME\tCARDS")
		for _, s := range cards.FilterSets(ix, setsFilter) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.SetID, s.SetAbbr, s.SetName, len(s.CardsByID()))
		}
		return w.Flush()
	},
}

func init() {
	setsCmd.Flags().StringVarP(&setsIndexPath, "index", "i", "", "set index artifact (.json, .db)")
	setsCmd.Flags().StringVarP(&setsFilter.FreeWords, "search", "s", "", "words to match in set name or abbreviation")
	setsCmd.Flags().StringSliceVar(&setsFilter.Abbrs, "abbr", nil, "only these abbreviations")
	setsCmd.Flags().StringVar(&setsFilter.Numbered, "numbered", "", `"numbered", "unnumbered" or both when empty`)
	setsCmd.Flags().StringVar(&setsFilter.CardName, "card", "", "only sets holding this card name")
}
