package cards

import "strings"

// FilterOptions narrows the set listing.
type FilterOptions struct {
	Abbrs     []string `json:"abbrs"`
	FreeWords string   `json:"free_words"`
	// Numbered keeps only standard sets ("numbered"), only unnumbered
	// promo/special sets ("unnumbered"), or both ("" or "both").
	Numbered string `json:"numbered"`
	// CardName keeps sets holding a card with exactly this name.
	CardName string `json:"card_name"`
}

// FilterSets returns the sets of the index matching every given option,
// in index order.
func FilterSets(ix *Index, opt FilterOptions) []*SetEntry {
	var out []*SetEntry
	for _, s := range ix.Sets() {
		if opt.Numbered == "numbered" && s.SetID == "" {
			continue
		}
		if opt.Numbered == "unnumbered" && s.SetID != "" {
			continue
		}
		if len(opt.Abbrs) > 0 {
			matched := false
			for _, a := range opt.Abbrs {
				if strings.EqualFold(s.SetAbbr, a) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.CardName != "" {
			if _, ok := s.CardID(opt.CardName); !ok {
				continue
			}
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(s.SetName), k) &&
					!strings.Contains(strings.ToLower(s.SetAbbr), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
