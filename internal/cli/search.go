package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"silkmoth/internal/adapter/loader"
	"silkmoth/internal/engine"
)

var (
	searchRefFile string
	searchSrcFile string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find source sets related to a reference set",
	Long: `Loads a reference set and a source collection, builds an engine over
the sources, and prints every source related to the reference at or above
the configured relatedness threshold.

Examples:
  silkmoth search -r ref.json -s sources.json
  silkmoth search -r ref.json -s sources.json --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchRefFile, "ref", "r", "", "reference set file (JSON/YAML, required)")
	searchCmd.Flags().StringVarP(&searchSrcFile, "sources", "s", "", "source collection file (JSON/YAML, required)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("ref")
	searchCmd.MarkFlagRequired("sources")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	refSets, err := loader.LoadSetsFile(searchRefFile)
	if err != nil {
		return fmt.Errorf("failed to load reference set: %w", err)
	}
	if len(refSets) == 0 {
		return fmt.Errorf("reference file %s contains no sets", searchRefFile)
	}

	sources, err := loader.LoadSetsFile(searchSrcFile)
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

	result, err := eng.Search(refSets[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	printWarnings(result.Warnings)

	if searchJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(result.Hits) == 0 {
		fmt.Println("No related sets found.")
	} else {
		fmt.Printf("Found %d related set(s) (candidates %d -> %d):\n\n", len(result.Hits), result.CandidatesBefore, result.CandidatesAfter)
		for _, hit := range result.Hits {
			fmt.Printf("  [%d] relatedness=%.4f\n", hit.Index, hit.Relatedness)
		}
	}

	return nil
}
