package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"toonrec/internal/domain"
)

// Catalog is the immutable title→metadata mapping loaded from the
// detailed-analysis JSON file.
type Catalog struct {
	items  map[string]domain.Item
	titles []string
}

// rawItem mirrors the on-disk schema produced by the scraping/analysis
// pipeline.
type rawItem struct {
	BasicInfo struct {
		Type              string   `json:"type"`
		AlternativeTitles []string `json:"alternative_titles"`
		ImageURL          string   `json:"image_url"`
	} `json:"basic_info"`
	Analysis struct {
		GenreCategories []string `json:"genre_categories"`
		StoryElements   []string `json:"story_elements,omitempty"`
	} `json:"analysis"`
	Content struct {
		Synopsis string `json:"synopsis"`
	} `json:"content"`
}

// Load reads the catalog file. The file is a single JSON object keyed
// by canonical title.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var raw map[string]rawItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	items := make(map[string]domain.Item, len(raw))
	titles := make([]string, 0, len(raw))
	for title, r := range raw {
		items[title] = domain.Item{
			Title:             title,
			Type:              r.BasicInfo.Type,
			AlternativeTitles: r.BasicInfo.AlternativeTitles,
			ImageURL:          r.BasicInfo.ImageURL,
			Genres:            r.Analysis.GenreCategories,
			Elements:          r.Analysis.StoryElements,
			Synopsis:          r.Content.Synopsis,
		}
		titles = append(titles, title)
	}
	sort.Strings(titles)

	return &Catalog{items: items, titles: titles}, nil
}

// FromItems builds a catalog from already-loaded items. Used by tests
// and the conversion tooling.
func FromItems(items []domain.Item) *Catalog {
	m := make(map[string]domain.Item, len(items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		m[it.Title] = it
		titles = append(titles, it.Title)
	}
	sort.Strings(titles)
	return &Catalog{items: m, titles: titles}
}

func (c *Catalog) Get(title string) (domain.Item, bool) {
	it, ok := c.items[title]
	return it, ok
}

// Titles returns all canonical titles in lexicographic order.
func (c *Catalog) Titles() []string {
	return c.titles
}

func (c *Catalog) Len() int {
	return len(c.items)
}
