package domain

// Format is the categorical origin tag of a catalogued work.
type Format string

const (
	FormatManga  Format = "manga"
	FormatManhwa Format = "manhwa"
	FormatManhua Format = "manhua"
)

// Item is a single catalogued webtoon with the metadata the engine
// needs for matching: format signals, genre and story-element tags,
// synopsis and cover image. The title doubles as the identifier; the
// catalog and the embedding store are co-indexed by it.
type Item struct {
	Title             string
	Type              string
	AlternativeTitles []string
	ImageURL          string
	Genres            []string
	Elements          []string
	Synopsis          string
}

// Reference is the outcome of query interpretation: the catalog item
// the query points at, and whether the user wants more of it or the
// opposite of it.
type Reference struct {
	Title    string
	Negative bool
}

type Recommendation struct {
	Title    string   `json:"title"`
	Score    float64  `json:"score"`
	Format   Format   `json:"format"`
	Genres   []string `json:"genres"`
	Elements []string `json:"elements,omitempty"`
	ImageURL string   `json:"image_url"`
	Synopsis string   `json:"synopsis"`
}

// Overlap reports why a recommendation was made: the genre and
// story-element tags it shares with the reference item.
type Overlap struct {
	Genres   []string `json:"genres,omitempty"`
	Elements []string `json:"elements,omitempty"`
}
