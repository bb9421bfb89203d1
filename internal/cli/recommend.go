package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"toonrec/internal/recommend"
)

var (
	recommendQuery string
	recommendJSON  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get a recommendation for a query",
	Long: `Resolve a free-text query to a reference webtoon and print the best
matching recommendation.

Examples:
  toonrec recommend -q "I like Eleceed"
  toonrec recommend -q "something like Solo Leveling"
  toonrec recommend -q "Action webtoon" --json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVarP(&recommendQuery, "query", "q", "", "query text (required)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.MarkFlagRequired("query")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := newLogger(cfg)

	engine, st, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := engine.RecommendDetailed(engine.Session(), recommendQuery)
	if err != nil {
		if errors.Is(err, recommend.ErrNoReference) || errors.Is(err, recommend.ErrNoMatch) {
			fmt.Println(recommend.UserMessage(err))
			return nil
		}
		return err
	}

	if recommendJSON {
		out, err := json.MarshalIndent(res.Recommendation, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	rec := res.Recommendation
	verb := "you'll love"
	if res.Reference.Negative {
		verb = "try instead"
	}
	fmt.Printf("If %s is your reference, %s:\n", res.Reference.Title, verb)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Title:    %s\n", rec.Title)
	fmt.Printf("Score:    %.1f%%\n", rec.Score*100)
	fmt.Printf("Format:   %s\n", rec.Format)
	fmt.Printf("Genres:   %s\n", strings.Join(rec.Genres, ", "))
	if len(rec.Elements) > 0 {
		fmt.Printf("Elements: %s\n", strings.Join(rec.Elements, ", "))
	}
	fmt.Printf("Image:    %s\n", rec.ImageURL)
	fmt.Printf("Synopsis: %s\n", truncate(rec.Synopsis, 150))

	if len(res.Overlap.Genres) > 0 || len(res.Overlap.Elements) > 0 {
		fmt.Println("\nWhy this match?")
		if len(res.Overlap.Genres) > 0 {
			fmt.Printf("- Similar genres: %s\n", strings.Join(res.Overlap.Genres, ", "))
		}
		if len(res.Overlap.Elements) > 0 {
			fmt.Printf("- Similar elements: %s\n", strings.Join(res.Overlap.Elements, ", "))
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
