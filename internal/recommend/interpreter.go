package recommend

import (
	"math/rand"
	"regexp"
	"strings"

	"toonrec/internal/adapter/matcher"
	"toonrec/internal/domain"
	"toonrec/internal/port"
)

// Keyword sets are a semantic contract with the catalog's tag
// vocabulary; changing them changes which items descriptive queries
// can reach.
var formatKeywords = map[domain.Format][]string{
	domain.FormatManga:  {"manga", "japanese"},
	domain.FormatManhwa: {"manhwa", "korean", "webtoon"},
	domain.FormatManhua: {"manhua", "chinese"},
}

var genreKeywords = map[string][]string{
	"funny":   {"comedy", "humor", "humour", "slice of life"},
	"action":  {"action", "martial arts", "fighting"},
	"romance": {"romance", "romantic", "love"},
	"dark":    {"dark", "horror", "thriller", "psychological"},
	"fantasy": {"fantasy", "magic", "supernatural", "isekai"},
}

// patternRule captures the reference phrase after a cue word. Rules are
// tried in order and the first match wins; negative cues come first so
// "don't like X" never falls through to the bare "like" rule with a
// dirty capture.
type patternRule struct {
	re       *regexp.Regexp
	negative bool
}

var patternRules = []patternRule{
	{re: regexp.MustCompile(`\b(?:don't like|dont like|dislike|hate)\s+(.+)`), negative: true},
	{re: regexp.MustCompile(`\b(?:similar to|something like)\s+(.+)`)},
	{re: regexp.MustCompile(`\b(?:i like|like|enjoy)\s+(.+)`)},
}

var negativeCues = []string{"hate", "dislike", "don't like", "dont like"}

// Interpreter resolves free-text queries into a reference item plus
// polarity. The patterns are heuristics, not a grammar, so resolution
// is best effort.
type Interpreter struct {
	catalog port.Catalog
	matcher *matcher.TitleMatcher
	rng     *rand.Rand
}

func NewInterpreter(catalog port.Catalog, m *matcher.TitleMatcher, rng *rand.Rand) *Interpreter {
	return &Interpreter{catalog: catalog, matcher: m, rng: rng}
}

// Resolve normalizes the query and runs the resolution steps in order:
// descriptive-query seeding, cue-word patterns with fuzzy title match,
// then a whole-query fuzzy fallback. Returns ErrNoReference when no
// step produces a title.
func (ip *Interpreter) Resolve(query string) (domain.Reference, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.Reference{}, ErrNoReference
	}

	negative := hasNegativeCue(q)

	// A query naming no known title is descriptive: pick a seed item
	// from the requested format/genres and restate the query around it.
	contained, hasContained := ip.matcher.ContainedTitle(q)
	if !hasContained {
		if seed, ok := ip.descriptiveSeed(q); ok {
			q = "like " + strings.ToLower(seed)
		}
	}

	for _, rule := range patternRules {
		m := rule.re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		if title, ok := ip.matcher.BestMatch(m[1]); ok {
			return domain.Reference{Title: title, Negative: negative || rule.negative}, nil
		}
		// First matching rule wins; a dirty capture falls through to
		// the contained-title and whole-query fallbacks.
		break
	}

	// A known title embedded verbatim in the query beats any fuzzy
	// score: long surrounding text must not dilute it below the cutoff.
	if hasContained {
		return domain.Reference{Title: contained, Negative: negative}, nil
	}

	if title, ok := ip.matcher.BestMatch(q); ok {
		return domain.Reference{Title: title, Negative: negative}, nil
	}

	return domain.Reference{}, ErrNoReference
}

// descriptiveSeed picks a random catalog item matching the formats and
// genres the query asks for. When no format is requested, manga-format
// items are excluded: plain descriptive queries come from webtoon
// readers.
func (ip *Interpreter) descriptiveSeed(q string) (string, bool) {
	wantFormats := make(map[domain.Format]bool)
	for format, words := range formatKeywords {
		for _, w := range words {
			if strings.Contains(q, w) {
				wantFormats[format] = true
				break
			}
		}
	}

	var wantGenres [][]string
	for trigger, tags := range genreKeywords {
		if strings.Contains(q, trigger) {
			wantGenres = append(wantGenres, tags)
		}
	}

	// Without at least one recognized keyword the query is not
	// descriptive, it is a title we failed to spot.
	if len(wantFormats) == 0 && len(wantGenres) == 0 {
		return "", false
	}

	var candidates []string
	for _, title := range ip.catalog.Titles() {
		it, ok := ip.catalog.Get(title)
		if !ok {
			continue
		}

		format := domain.FormatOf(it)
		if len(wantFormats) > 0 {
			if !wantFormats[format] {
				continue
			}
		} else if format == domain.FormatManga {
			continue
		}

		if len(wantGenres) > 0 && !matchesAnyGenre(it.Genres, wantGenres) {
			continue
		}

		candidates = append(candidates, title)
	}

	if len(candidates) == 0 {
		return "", false
	}
	return candidates[ip.rng.Intn(len(candidates))], true
}

// matchesAnyGenre reports whether the item's genre tags intersect at
// least one of the requested keyword sets.
func matchesAnyGenre(genres []string, wanted [][]string) bool {
	for _, tags := range wanted {
		for _, g := range genres {
			lg := strings.ToLower(g)
			for _, tag := range tags {
				if strings.Contains(lg, tag) {
					return true
				}
			}
		}
	}
	return false
}

func hasNegativeCue(q string) bool {
	for _, cue := range negativeCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}
