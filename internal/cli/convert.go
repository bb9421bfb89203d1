package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"toonrec/internal/adapter/fs"
	"toonrec/internal/adapter/store"
	"toonrec/internal/port"
)

var (
	convertIncludes []string
	convertModel    string
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Import legacy embedding dumps",
	Long: `Import JSON embedding dumps (a title→vector object per file) exported
from the previous training pipeline into the embedding database.

Examples:
  toonrec convert ./dumps
  toonrec convert ./dumps --glob "**/*_embeddings.json"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringSliceVar(&convertIncludes, "glob", []string{"**/*.json"}, "glob patterns selecting dump files")
	convertCmd.Flags().StringVar(&convertModel, "model", "all-minilm", "encoder model the dumps were built with")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	walker := fs.NewWalker(convertIncludes, nil)
	files, err := walker.Walk(root)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no dump files matched %v under %s", convertIncludes, root)
	}

	st, err := store.Open(cfg.Data.EmbeddingsPath)
	if err != nil {
		return fmt.Errorf("failed to open embedding store: %w", err)
	}
	defer st.Close()

	total := 0
	dimension := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var dump map[string][]float32
		if err := json.Unmarshal(data, &dump); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		records := make([]port.VectorRecord, 0, len(dump))
		for title, vec := range dump {
			if dimension == 0 {
				dimension = len(vec)
			}
			records = append(records, port.VectorRecord{Title: title, Vector: vec})
		}
		if err := st.Upsert(records); err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		fmt.Printf("Imported %d vectors from %s\n", len(records), path)
		total += len(records)
	}

	if err := st.SetInfo(store.Info{Model: convertModel, Dimension: dimension}); err != nil {
		return fmt.Errorf("failed to record store info: %w", err)
	}

	fmt.Printf("\nConversion complete: %d vectors in %s\n", total, cfg.Data.EmbeddingsPath)
	return nil
}
