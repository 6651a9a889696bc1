package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terragen/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration terragen would use, after the search order
and command line overrides have been applied.

Search order:
  --config path -> ~/.terragen/config.yaml -> ./configs/terragen.yaml -> built-in defaults

Examples:
  terragen config
  terragen config --defaults > ~/.terragen/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
