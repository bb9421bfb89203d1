package matcher

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// TitleMatcher resolves noisy user text to canonical catalog titles
// using Ratcliff-Obershelp similarity over lowercased strings.
type TitleMatcher struct {
	titles []string
	lower  []string
	cutoff float64
}

// New builds a matcher over the given canonical titles. cutoff is the
// minimum similarity (0..1) a candidate must reach to count as a match.
func New(titles []string, cutoff float64) *TitleMatcher {
	lower := make([]string, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}
	return &TitleMatcher{
		titles: titles,
		lower:  lower,
		cutoff: cutoff,
	}
}

// similarity is the Ratcliff-Obershelp ratio between two strings,
// compared rune by rune.
func similarity(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// BestMatch returns the canonical title closest to text, if its
// similarity clears the cutoff. An exact case-insensitive match always
// wins with similarity 1.
func (m *TitleMatcher) BestMatch(text string) (string, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}

	bestIdx := -1
	bestScore := 0.0
	for i, lt := range m.lower {
		score := similarity(text, lt)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < m.cutoff {
		return "", false
	}
	return m.titles[bestIdx], true
}

// ContainedTitle returns the first canonical title that appears as a
// case-insensitive substring of the query. Used to tell "about a known
// title" queries apart from purely descriptive ones.
func (m *TitleMatcher) ContainedTitle(query string) (string, bool) {
	query = strings.ToLower(query)
	for i, lt := range m.lower {
		if lt != "" && strings.Contains(query, lt) {
			return m.titles[i], true
		}
	}
	return "", false
}
