// Package cli implements the scripdex command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scripdex/scripdex/internal/adapters/driven/config/file"
	"github.com/scripdex/scripdex/internal/adapters/driven/extractor"
	"github.com/scripdex/scripdex/internal/adapters/driven/provider/bse"
	"github.com/scripdex/scripdex/internal/adapters/driven/storage/sqlite"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
	"github.com/scripdex/scripdex/internal/core/ports/driving"
	"github.com/scripdex/scripdex/internal/core/services"
	"github.com/scripdex/scripdex/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagDataDir string
)

// Shared service instances, wired once in initServices. Interface-typed
// so tests can swap in doubles.
var (
	configStore      *file.ConfigStore
	store            *sqlite.Store
	provider         driven.MarketDataProvider
	fetcher          driven.DocumentFetcher
	resolverService  driving.ResolverService
	cacheService     driving.CacheService
	retrievalService driving.RetrievalService
	researchService  driving.ResearchService
)

var rootCmd = &cobra.Command{
	Use:   "scripdex",
	Short: "Indian equity filing research from the command line",
	Long: `scripdex resolves listed companies, pulls their exchange filings,
caches extracted documents locally and answers research queries over the
cached content. It also runs as an MCP server for AI assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if cmd.Name() == "version" {
			return nil
		}
		if resolverService != nil {
			// Already wired, either by a prior run or a test.
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.scripdex/data)")
}

// initServices wires the adapters and core services. Called once per
// invocation from the root PersistentPreRunE.
func initServices() error {
	var err error
	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = configStore.GetString(file.KeyDataDir)
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening cache database: %w", err)
	}

	var providerOpts []bse.Option
	if baseURL := configStore.GetString(file.KeyProviderBaseURL); baseURL != "" {
		providerOpts = append(providerOpts, bse.WithBaseURL(baseURL))
	}
	provider = bse.NewClient(providerOpts...)
	fetcher = extractor.New()

	resolverService = services.NewResolverService(store.SecurityStore(), provider)
	cacheService = services.NewCacheService(store.DocumentStore(), nil)
	retrievalService = services.NewRetrievalService(store.DocumentStore())
	researchService = services.NewResearchService(
		resolverService, cacheService, retrievalService, provider, fetcher)

	logger.Debug("services initialised, cache at %s", store.Path())
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
