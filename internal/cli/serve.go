package cli

import (
	"github.com/spf13/cobra"
	"toonrec/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP recommendation API",
	Long: `Start the HTTP server wrapping the recommendation engine.

Endpoints:
  GET  /           health check
  POST /recommend  {"query": "..."} → best match with anti-repeat state
  POST /similar    {"query": "...", "k": 5} → plain top-k similarity

Example:
  toonrec serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := newLogger(cfg)

	engine, st, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(engine,
		server.WithLogger(log),
		server.WithTopK(cfg.Server.TopK),
	)
	return srv.ListenAndServe(addr, cfg.Server.AllowedOrigins)
}
