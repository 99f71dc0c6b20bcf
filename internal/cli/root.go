package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"silkmoth/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "silkmoth",
	Short: "Set-relatedness search over collections of sets",
	Long: `silkmoth finds source sets related to a reference set under the
SILKMOTH maximum-weighted-bipartite-matching relatedness measure: tokenize,
build an inverted index, derive a signature, filter candidates, and verify
survivors by exact matching.

Example usage:
  silkmoth search -r ref.json -s sources.json     # Find sources related to a reference
  silkmoth discover -s sources.json                # Find all related pairs in one collection
  silkmoth inspect -s sources.json                 # Print index statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./silkmoth.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory for config discovery (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
