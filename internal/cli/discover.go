package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"silkmoth/config"
	"silkmoth/internal/adapter/cache"
	"silkmoth/internal/adapter/loader"
	"silkmoth/internal/domain"
	"silkmoth/internal/engine"
)

var (
	discoverSrcFile string
	discoverJSON    bool
	discoverCache   bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find all related pairs within one collection",
	Long: `Loads a single source collection, treats it as both the sources and
the references, and runs search over every set, reporting every related
pair found.

Examples:
  silkmoth discover -s sources.json
  silkmoth discover -s sources.json --cache`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringVarP(&discoverSrcFile, "sources", "s", "", "source collection file (JSON/YAML, required)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output as JSON")
	discoverCmd.Flags().BoolVar(&discoverCache, "cache", false, "cache discover results across runs in a bbolt-backed store")
	discoverCmd.MarkFlagRequired("sources")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	sources, err := loader.LoadSetsFile(discoverSrcFile)
	if err != nil {
		return fmt.Errorf("failed to load source collection: %w", err)
	}

	ecfg, err := cfg.BuildEngineConfig()
	if err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}

	var persistent *cache.PersistentCache
	var cacheKey string
	if discoverCache {
		if err := config.EnsureCacheDir(cfg.Cache.PersistentPath); err != nil {
			return fmt.Errorf("failed to prepare cache directory: %w", err)
		}
		persistent, err = cache.NewPersistentCache(cfg.Cache.PersistentPath)
		if err != nil {
			return fmt.Errorf("failed to open persistent cache: %w", err)
		}
		defer persistent.Close()

		cacheKey = discoverCacheKey(discoverSrcFile, cfg)
		if hits, found, err := persistent.Get(cacheKey); err == nil && found {
			printDiscoverHits(hits)
			return nil
		}
	}

	eng, warnings, err := engine.New(sources, ecfg)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	printWarnings(warnings)

	bar := progressbar.NewOptions(len(sources),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Discovering[reset]"),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)

	hits, discoverWarnings, err := eng.Discover(func(done, total int) {
		bar.Set(done)
	})
	if err != nil {
		return fmt.Errorf("discover failed: %w", err)
	}
	printWarnings(discoverWarnings)

	if discoverCache {
		if err := persistent.Put(cacheKey, hits); err != nil {
			fmt.Printf("warning: failed to persist discover result: %v\n", err)
		}
	}

	printDiscoverHits(hits)
	return nil
}

func printDiscoverHits(hits []domain.DiscoverHit) {
	if discoverJSON {
		output, _ := json.MarshalIndent(hits, "", "  ")
		fmt.Println(string(output))
		return
	}

	if len(hits) == 0 {
		fmt.Println("No related pairs found.")
		return
	}
	fmt.Printf("Found %d related pair(s):\n\n", len(hits))
	for _, h := range hits {
		fmt.Printf("  (%d, %d) relatedness=%.4f\n", h.I, h.J, h.Relatedness)
	}
}

// discoverCacheKey hashes the source file path, its contents and the engine
// configuration so a changed threshold or collection invalidates the cached
// entry.
func discoverCacheKey(srcFile string, cfg *config.Config) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%+v|", srcFile, cfg.Engine)
	if data, err := os.ReadFile(srcFile); err == nil {
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
