package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/reviewlens/internal/analysis"
	cfgpkg "github.com/KaramelBytes/reviewlens/internal/config"
	"github.com/KaramelBytes/reviewlens/internal/logging"
)

var (
	cfgFile string
	debug   bool
	// Overrides applied on top of the loaded config when set
	flagLogLevel  string
	flagLogFormat string
	flagBucketing string
	flagWorkers   int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "ReviewLens: monthly insight reports from labelled product reviews",
	Long: `ReviewLens loads aspect-labelled skincare reviews (CSV/TSV/XLSX), normalizes
them and computes a dataset summary, ten monthly insight tables and an
attribute positive-rate table, per product or across all products.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.reviewlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace|debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console|json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBucketing, "bucketing", "", "time axis: month|year_month (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "concurrent computations per report (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("log-format") && flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if f.Changed("bucketing") && flagBucketing != "" {
		cfg.Bucketing = flagBucketing
	}
	if f.Changed("workers") && flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	log.Logger = logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

// currentConfig returns the loaded config, or defaults when loading was skipped.
func currentConfig() *cfgpkg.Global {
	if cfg == nil {
		return cfgpkg.Default()
	}
	return cfg
}

// analysisOptions resolves engine options from config, validating the
// bucketing mode.
func analysisOptions() (analysis.Options, error) {
	c := currentConfig()
	opt := c.Options()
	b, err := analysis.ParseBucketing(c.Bucketing)
	if err != nil {
		return opt, err
	}
	opt.Bucketing = b
	return opt, nil
}
