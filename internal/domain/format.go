package domain

import "strings"

// FormatOf derives an item's format from its metadata. The declared
// type field wins; failing that, alternative-title hints decide; the
// fallback is manhwa. Always returns one of the three Format values.
func FormatOf(it Item) Format {
	t := strings.ToLower(it.Type)
	switch {
	case strings.Contains(t, "manga"):
		return FormatManga
	case strings.Contains(t, "manhwa"):
		return FormatManhwa
	case strings.Contains(t, "manhua"):
		return FormatManhua
	}

	for _, alt := range it.AlternativeTitles {
		a := strings.ToLower(alt)
		switch {
		case strings.Contains(a, "japanese"):
			return FormatManga
		case strings.Contains(a, "korean"):
			return FormatManhwa
		case strings.Contains(a, "chinese"):
			return FormatManhua
		}
	}

	return FormatManhwa
}
