// Package cli wires the pipeline into the questify command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"questify/internal/config"
	"questify/internal/llm"
	"questify/internal/logging"
)

const (
	ExitOK           = 0
	ExitInvalidInput = 2
	ExitRuntimeError = 3
)

var (
	cfg     *config.Config
	log     *logrus.Logger
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "questify",
	Short: "Questify - Quest report template converter",
	Long: `Questify converts Quest XML report templates into structured LDAP,
DNS and NonDNS report definitions using an LLM backend.

Quick start:
  questify infer "all users whose password never expires"
  questify transform report1.xml report2.xml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			_ = os.Setenv("LOG_LEVEL", "debug")
		}
		log = logging.New()
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version shown by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

// newClient builds the provider stack for the configured backend.
func newClient(ctx context.Context) (llm.Client, error) {
	var base llm.Client
	switch cfg.Provider {
	case config.ProviderAzure:
		base = llm.NewAzureClient(llm.AzureConfig{
			APIKey:     cfg.Azure.APIKey,
			APIBase:    cfg.Azure.APIBase,
			APIVersion: cfg.Azure.APIVersion,
			Deployment: cfg.Azure.Deployment,
			Timeout:    cfg.RequestTimeout,
		})
	default:
		g, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		base = g
	}
	// The rate limiter sits inside the retry loop so every attempt
	// consumes a token.
	return llm.Wrap(base,
		llm.WithLogging(log),
		llm.WithCache(cfg.CacheSize),
		llm.Retry(3, 500*time.Millisecond),
		llm.RateLimit(cfg.MaxRPS, cfg.Burst),
		llm.WithTimeout(cfg.RequestTimeout),
	), nil
}
