package cards

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TTS stores "Charizard V" as "Charizard-V".
var ruleBoxSuffixRegex = regexp.MustCompile(`(?i) (V|VMAX|VSTAR)$`)

// NormalizeCardName reconciles the cosmetic differences between decklist
// exports and the names stored in TTS saves.
func NormalizeCardName(name string) string {
	name = ruleBoxSuffixRegex.ReplaceAllString(name, "-$1")
	name = collapseEnergyType(name)
	return strings.ReplaceAll(name, "`", "'")
}

// collapseEnergyType turns every "<Description> <Type> Energy" run into
// "<Description> <T> Energy". Description words starting with "double" end
// the run, so "Double Colorless Energy" is left alone. Words are ASCII
// word characters; anything else (an apostrophe, an accented letter)
// starts a new run. Matching ignores case.
func collapseEnergyType(name string) string {
	var (
		b       strings.Builder
		last    int
		matched bool
	)
	for i := 0; i < len(name); {
		repl, end, ok := matchTypedEnergy(name, i)
		if !ok {
			i++
			continue
		}
		b.WriteString(name[last:i])
		b.WriteString(repl)
		last, i, matched = end, end, true
	}
	if !matched {
		return name
	}
	b.WriteString(name[last:])
	return b.String()
}

// matchTypedEnergy tries a typed energy run starting at byte i. The
// description is taken as long as possible, shrinking one word at a time
// until the type word and " Energy" fit behind it.
func matchTypedEnergy(s string, i int) (repl string, end int, ok bool) {
	if !isWordByte(s[i]) || (i > 0 && isWordByte(s[i-1])) {
		return "", 0, false
	}

	var ends []int
	for j := i; j < len(s); {
		if !isWordByte(s[j]) || hasFoldPrefix(s[j:], "double") {
			break
		}
		k := j
		for k < len(s) && isWordByte(s[k]) {
			k++
		}
		if k == len(s) || s[k] != ' ' {
			break
		}
		ends = append(ends, k+1)
		j = k + 1
	}

	for n := len(ends) - 1; n >= 0; n-- {
		e := ends[n]
		if e >= len(s) {
			continue
		}
		r, size := utf8.DecodeRuneInString(s[e:])
		if r == '\n' || r == '\r' {
			continue
		}
		k := e + size
		rest := k
		for k < len(s) && isWordByte(s[k]) {
			k++
		}
		if k == rest || !hasFoldPrefix(s[k:], " energy") {
			continue
		}
		end = k + len(" energy")
		return s[i:e] + s[e:e+size] + s[k:end], end, true
	}
	return "", 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
