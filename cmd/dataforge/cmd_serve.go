package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the control-plane HTTP API",
	Long: `Serves the dataset control plane: health, dataset listing and
download, and POST /api/generate to trigger runs. Runs triggered over
the API are serialized so only one executes at a time.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.API.Addr
	}

	ctx, cancel := signalContext()
	defer cancel()

	orch, err := buildOrchestrator(ctx, nil)
	if err != nil {
		return err
	}

	runs, err := openRunStore()
	if err != nil {
		return err
	}
	defer runs.Close()

	srv := api.NewServer(api.Config{
		DatasetsDir: cfg.Paths.GeneratedDatasets,
		APIKey:      cfg.API.Key,
	}, orch, runs, logger)

	logger.Info("starting control plane", zap.String("addr", addr))
	return srv.ListenAndServe(ctx, addr)
}
