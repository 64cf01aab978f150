package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/playground/config"
	"github.com/rustyeddy/playground/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "playground",
	Short: "A paper-trading playground over synthetic market data",
	Long: `Playground generates deterministic OHLCV series for practice instruments
and lets you trade them on paper.

It provides tools for:
  - Generating reproducible synthetic bar series (CSV export)
  - Replaying scripted trading sessions against the position ledger
  - Journaling orders and positions to CSV or SQLite
  - Exposing session metrics for Prometheus

Complete documentation is available at https://github.com/rustyeddy/playground`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (defaults to the built-in ES/XAU setup)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config")
}

// loadConfig reads --config, or the defaults when it is not set, and
// applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		c, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}
