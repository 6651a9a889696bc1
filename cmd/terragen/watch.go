package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terragen/internal/platform/tui"
	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
)

var (
	flagDelay     time.Duration
	flagWatchMode string
)

var watchCmd = &cobra.Command{
	Use:   "watch [seed]",
	Short: "Watch a terrain evolve until it settles",
	Long: `Redraw the terrain after every evolution round together with the
generation counter, until the terrain settles or the cap is reached.

Controls:
  p / space  - Pause / resume
  + / -      - Faster / slower
  s          - Save the finished run to history
  ctrl+s     - Export the current grid as text
  q          - Quit

Examples:
  terragen watch hello
  terragen watch --delay 50ms --render color hello`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	addGenerationFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagDelay, "delay", tui.DefaultDelay, "Pause between generations")
	watchCmd.Flags().StringVar(&flagWatchMode, "render", "", "Renderer (default from config)")
	watchCmd.Flags().StringVar(&flagSeedFile, "seed-file", "", "Read the seed from a file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := applyGenerationFlags(); err != nil {
		return err
	}

	seedText, err := readSeed(args, flagSeedFile, os.Stdin, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	mode := cfg.Render.Mode
	if flagWatchMode != "" {
		mode = flagWatchMode
	}
	renderer, err := render.Get(mode)
	if err != nil {
		return err
	}

	// Continue without history if the database is unavailable
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	res, err := tui.RunWatch(tui.WatchConfig{
		SeedText:       seedText,
		Params:         cfg.Params(),
		MaxGenerations: cfg.Generation.MaxGenerations,
		Delay:          flagDelay,
		Renderer:       renderer,
		Store:          store,
	})
	if err != nil {
		return err
	}

	if res != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "seed: %s  state: %s  generations: %d\n", res.SeedText, res.State, res.Generations)
	}
	return nil
}
