// Command dataforge generates synthetic tabular datasets from a domain
// keyword: it infers a schema from a reference dataset, mutates it per
// variation, asks a text-generation service for rows, and falls back
// to deterministic local synthesis when the service is unavailable.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Vasishta03/DataForge/internal/api"
	"github.com/Vasishta03/DataForge/internal/config"
	"github.com/Vasishta03/DataForge/internal/generator"
	"github.com/Vasishta03/DataForge/internal/llm"
	"github.com/Vasishta03/DataForge/internal/reference"
	"github.com/Vasishta03/DataForge/internal/store"
)

var version = "2.0.0"

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dataforge",
	Short: "DataForge - synthetic tabular dataset generator",
	Long: `DataForge generates structurally varied synthetic CSV datasets.

Given a domain keyword it downloads a reference dataset, extracts its
schema, and produces one mutated variation per output file. Rows come
from a text-generation service when one is reachable, and from a
deterministic local synthesizer otherwise.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(logLevel())
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func logLevel() zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	switch cfg.Logging.Level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the DataForge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dataforge %s\n", version)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd, serveCmd, runsCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// buildOrchestrator wires the pipeline from config.
func buildOrchestrator(ctx context.Context, observer generator.Observer) (*generator.Orchestrator, error) {
	provider := reference.NewKaggleClient(reference.KaggleConfig{
		Username:      cfg.Kaggle.Username,
		Key:           cfg.Kaggle.Key,
		MaxResults:    cfg.Kaggle.MaxResults,
		MaxDownloadMB: cfg.Kaggle.MaxDownloadMB,
	}, logger)

	client, err := buildLLMClient(ctx)
	if err != nil {
		return nil, err
	}

	return generator.New(generator.Config{
		ReferenceDir: cfg.Paths.ReferenceDatasets,
		OutputDir:    cfg.Paths.GeneratedDatasets,
		MinRows:      cfg.Generation.MinRows,
		MaxRows:      cfg.Generation.MaxRows,
		MaxTokens:    cfg.LLM.MaxTokens,
		Temperature:  cfg.LLM.Temperature,
	}, provider, client, observer, logger), nil
}

// buildLLMClient selects the text-generation backend. Provider "none"
// forces fallback synthesis for every variation.
func buildLLMClient(ctx context.Context) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return llm.NewOllamaClient(llm.OllamaConfig{
			Host:    cfg.LLM.Host,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLMTimeout(),
		}, logger), nil
	case "gemini":
		return llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, logger)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}

func openRunStore() (*store.RunStore, error) {
	return store.NewRunStore(cfg.Paths.Database)
}

var _ api.Runner = (*generator.Orchestrator)(nil)
