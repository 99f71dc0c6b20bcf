package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"silkmoth/internal/adapter/loader"
	"silkmoth/internal/engine"
)

var inspectSrcFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print inverted-index statistics for a source collection",
	Long: `Loads a source collection, builds an engine over it, and prints index
statistics (set count, token count, average set size) without running a
search.

Examples:
  silkmoth inspect -s sources.json`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectSrcFile, "sources", "s", "", "source collection file (JSON/YAML, required)")
	inspectCmd.MarkFlagRequired("sources")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	sources, err := loader.LoadSetsFile(inspectSrcFile)
	if err != nil {
		return fmt.Errorf("failed to load source collection: %w", err)
	}

	ecfg, err := cfg.BuildEngineConfig()
	if err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}

	eng, warnings, err := engine.New(sources, ecfg)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	printWarnings(warnings)

	numSources := eng.NumSources()
	numTokens := eng.NumTokens()

	totalElems := 0
	for _, s := range sources {
		totalElems += len(s)
	}
	avgSize := 0.0
	if numSources > 0 {
		avgSize = float64(totalElems) / float64(numSources)
	}

	fmt.Printf("Source collection: %s\n", inspectSrcFile)
	fmt.Printf("  Sets:              %d\n", numSources)
	fmt.Printf("  Distinct tokens:   %d\n", numTokens)
	fmt.Printf("  Avg. set size:     %.2f elements\n", avgSize)
	fmt.Printf("  sim_func:          %s\n", cfg.Engine.SimFunc)
	fmt.Printf("  sim_metric:        %s\n", cfg.Engine.SimMetric)
	fmt.Printf("  sig_type:          %s\n", cfg.Engine.SigType)

	return nil
}
