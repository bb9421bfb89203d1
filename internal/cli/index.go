package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"toonrec/internal/adapter/catalog"
	"toonrec/internal/adapter/store"
	"toonrec/internal/recommend"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build embeddings for the catalog",
	Long: `Encode every catalog item (title, synopsis and genres) and store the
vectors in the embedding database. Run this whenever the catalog file
changes; the engine refuses to start when the two are out of sync.

Examples:
  toonrec index
  toonrec index --config prod.yaml`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	cat, err := catalog.Load(cfg.Data.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Printf("Loaded %d catalog items from %s\n", cat.Len(), cfg.Data.CatalogPath)

	enc, err := newEncoder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	st, err := store.Open(cfg.Data.EmbeddingsPath)
	if err != nil {
		return fmt.Errorf("failed to open embedding store: %w", err)
	}
	defer st.Close()

	if err := st.SetInfo(store.Info{Model: enc.ModelName(), Dimension: enc.Dimension()}); err != nil {
		return fmt.Errorf("failed to record store info: %w", err)
	}

	bar := progressbar.NewOptions(cat.Len(),
		progressbar.OptionSetDescription("Encoding"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	result, err := recommend.BuildEmbeddings(cat, enc, st, cfg.Encoder.BatchSize, func(done, total int) {
		bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("embedding build failed: %w", err)
	}

	fmt.Printf("\nEmbedding build complete:\n")
	fmt.Printf("  Items encoded: %d\n", result.ItemsEncoded)
	fmt.Printf("  Dimension:     %d\n", result.Dimension)
	fmt.Printf("  Model:         %s\n", enc.ModelName())
	fmt.Printf("\nStore written to: %s\n", cfg.Data.EmbeddingsPath)
	return nil
}
