package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cacheClearAll bool
	cacheJSON     bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Document cache commands",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [company]",
	Short: "Evict cached documents for a company, or everything with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheStatsCmd.Flags().BoolVar(&cacheJSON, "json", false, "output statistics as JSON")
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "evict the entire document cache")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	stats, err := cacheService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading cache statistics: %w", err)
	}

	if cacheJSON {
		return printJSON(cmd, stats)
	}

	cmd.Printf("Cache location: %s\n", stats.CacheLocation)
	cmd.Printf("Documents:      %d\n", stats.TotalDocuments)
	cmd.Printf("Chunks:         %d\n", stats.TotalChunks)
	cmd.Printf("Total size:     %.1f MB\n", float64(stats.TotalSizeBytes)/(1024*1024))
	cmd.Printf("Securities:     %d\n", stats.SecuritiesCached)

	if len(stats.ByCompany) > 0 {
		cmd.Println("\nBy company:")
		for _, cc := range stats.ByCompany {
			cmd.Printf("  %-40s %d\n", cc.CompanyName, cc.Count)
		}
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if cacheClearAll {
		count, err := cacheService.ClearAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		cmd.Printf("Evicted %d documents.\n", count)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("specify a company or use --all")
	}

	match, err := resolverService.ResolveOne(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("resolving %q: %w", args[0], err)
	}

	count, err := cacheService.ClearCompany(cmd.Context(), match.Code)
	if err != nil {
		return fmt.Errorf("clearing cache for %s: %w", match.Code, err)
	}
	cmd.Printf("Evicted %d documents for %s.\n", count, matchLabel(match))
	return nil
}
