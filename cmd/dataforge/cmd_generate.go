package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/generator"
)

var (
	genRows       int
	genVariations int
)

var generateCmd = &cobra.Command{
	Use:   "generate [keyword]",
	Short: "Generate synthetic datasets for a keyword",
	Long: `Runs the full pipeline for one keyword: reference acquisition,
schema extraction, and one mutated dataset per variation. Press Ctrl-C
to stop after the variation in flight finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genRows, "rows", "r", 0, "rows per dataset (default from config)")
	generateCmd.Flags().IntVarP(&genVariations, "variations", "n", 0, "number of dataset variations (default from config)")
}

// consoleObserver prints progress to stdout for interactive runs.
type consoleObserver struct{}

func (consoleObserver) OnProgress(fraction float64, message string) {
	fmt.Printf("[%3.0f%%] %s\n", fraction*100, message)
}

func (consoleObserver) OnStatus(message string) {
	fmt.Println(message)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	keyword := args[0]
	rows := genRows
	if rows <= 0 {
		rows = cfg.Generation.DefaultRows
	}
	variations := genVariations
	if variations <= 0 {
		variations = cfg.Generation.Variations
	}

	ctx, cancel := signalContext()
	defer cancel()

	orch, err := buildOrchestrator(ctx, consoleObserver{})
	if err != nil {
		return err
	}

	// Translate the signal into cooperative cancellation: the variation
	// in flight finishes, later ones do not start.
	stop := generator.NewStopToken()
	go func() {
		<-ctx.Done()
		stop.Stop()
	}()

	res := orch.Run(ctx, generator.Request{
		Keyword:    keyword,
		Rows:       rows,
		Variations: variations,
	}, stop)

	runs, err := openRunStore()
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
	} else {
		defer runs.Close()
		if err := runs.SaveResult(res); err != nil {
			logger.Warn("saving run failed", zap.Error(err))
		}
	}

	fmt.Printf("\nRun %s: %s in %.1fs\n", res.ID, res.Outcome, res.Elapsed.Seconds())
	for _, f := range res.GeneratedFiles {
		fmt.Println("  ", f)
	}
	if res.Outcome == generator.OutcomeFailed {
		return fmt.Errorf("generation failed: %s", res.Err)
	}
	return nil
}
