package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/internal/log"
	"github.com/w3c/specfacts/pkg/cache"
	"github.com/w3c/specfacts/pkg/pipeline"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract facts from every spec file under a directory",
	Long: `Walks a directory tree, extracts facts from every recognized spec
file in parallel and writes the results as a JSON array. Unchanged files are
served from the extract cache between runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		jobs, _ := cmd.Flags().GetInt("jobs")
		if jobs <= 0 {
			jobs = cfg.Jobs
		}
		outPath, _ := cmd.Flags().GetString("out")
		noCache, _ := cmd.Flags().GetBool("no-cache")

		logger := log.Default()
		if cfg.Verbose {
			logger.SetLevel(log.DebugLevel)
		}

		var extractCache *cache.ExtractCache
		if !noCache {
			extractCache = cache.New(cache.Options{MaxSize: cfg.CacheMaxEntries})
			if err := cache.LoadFromFile(extractCache, cfg.CacheFile()); err != nil {
				logger.Warn("could not load cache, starting empty", "error", err)
			}
		}

		results, summary, err := pipeline.Run(cmd.Context(), args[0], pipeline.Options{
			Jobs:   jobs,
			Cache:  extractCache,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		for _, res := range results {
			if res.Err != nil {
				logger.Warn("extract failed", "path", res.Path, "error", res.Err)
			}
		}

		if err := writeResults(results, outPath); err != nil {
			return err
		}

		if extractCache != nil {
			if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
				logger.Warn("could not create cache directory", "error", err)
			} else if err := cache.PersistToFile(extractCache, cfg.CacheFile()); err != nil {
				logger.Warn("could not persist cache", "error", err)
			}
		}

		logger.Info("batch complete",
			"total", summary.Total,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
			"cache_hits", summary.CacheHits,
			"elapsed", summary.Elapsed.String())
		return nil
	},
}

func init() {
	batchCmd.Flags().IntP("jobs", "j", 0, "Number of parallel workers (default from config)")
	batchCmd.Flags().StringP("out", "o", "", "Write results to a file instead of stdout")
	batchCmd.Flags().Bool("no-cache", false, "Skip the extract cache")
}

func writeResults(results []pipeline.Result, outPath string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
