// terragen generates deterministic terrain height maps from seed text.
//
// Usage:
//
//	terragen generate [seed]   - Generate a terrain and print it
//	terragen watch [seed]      - Watch a terrain evolve until it settles
//	terragen serve             - Start SSH server for remote sessions
//	terragen history           - List saved runs
//	terragen history show <id> - Re-render a saved run
//	terragen config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search order)
//	--db <path>         - Run history database (default: from config)
//	--log-level <level> - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/terragen/internal/config"
)

var (
	// Global flags
	flagConfigPath string
	flagDBPath     string
	flagLogLevel   string

	// Set by the root command before any subcommand runs.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "terragen",
	Short: "Terragen - Grow terrain height maps from seed text",
	Long: `Terragen turns any text into a terrain height map. The same text
always produces the same terrain.

Available commands:
  generate - Generate a terrain and print it
  watch    - Watch a terrain evolve generation by generation
  serve    - Start SSH server for remote sessions
  history  - Browse saved runs
  config   - Print the effective configuration

Examples:
  terragen generate hello
  echo hello | terragen generate
  terragen watch "mountain lake"
  terragen serve --ssh :2222
  terragen history --limit 5`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the logger.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "terragen",
		Level:           level,
	})

	cfg, err = config.Load(flagConfigPath)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	logger.Debug("configuration loaded", "size", fmt.Sprintf("%dx%d", cfg.Terrain.Width, cfg.Terrain.Height), "db", cfg.Storage.DBPath)
	return nil
}
