// Package cli implements the octotext command-line interface.
// Commands hold no logic of their own: they parse flags, call the
// driving ports, and render results.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/octotext/octotext/internal/adapters/driven/config/file"
	"github.com/octotext/octotext/internal/core/ports/driven"
	"github.com/octotext/octotext/internal/core/ports/driving"
	"github.com/octotext/octotext/internal/core/services"
	"github.com/octotext/octotext/internal/logger"
	"github.com/octotext/octotext/internal/scrape/firecrawl"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are package-level so tests can inject fakes before Execute.
var (
	extractService driving.ExtractService
	configStore    driven.ConfigStore
)

var (
	verboseFlag bool
	configDir   string
)

var rootCmd = &cobra.Command{
	Use:   "octotext",
	Short: "Extract GitHub issues and pull requests for LLM consumption",
	Long: `octotext fetches the rendered content of a GitHub issue or pull
request through a scraping API, extracts the title, description,
conversation, commits and file changes, optionally follows links to
related issues, PRs and commits, and reformats everything as JSON or
Markdown for a language model.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.octotext)")
}

// initServices wires the default adapters. Anything a test injected
// beforehand is left alone.
func initServices() error {
	if configStore == nil {
		store, err := configfile.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		configStore = store
	}

	if extractService == nil {
		var opts []firecrawl.Option
		if base := baseURL(); base != "" {
			opts = append(opts, firecrawl.WithBaseURL(base))
		}
		fetcher := firecrawl.NewClient(apiKey(), opts...)
		extractService = services.NewExtractService(fetcher)
	}

	return nil
}

// apiKey resolves the scraping API key: environment first, then the
// config file. An empty result is not an error here; the fetcher
// reports the missing credential when a fetch is actually attempted.
func apiKey() string {
	if key := os.Getenv("FIRECRAWL_API_KEY"); key != "" {
		return key
	}
	return configStore.GetString(configfile.KeyAPIKey)
}

func baseURL() string {
	if u := os.Getenv("FIRECRAWL_BASE_URL"); u != "" {
		return u
	}
	return configStore.GetString(configfile.KeyBaseURL)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
