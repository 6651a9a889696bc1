package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/terragen/internal/platform/tui"
	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
)

var (
	flagLimit       int
	flagBest        bool
	flagInteractive bool
	flagShowRender  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved runs",
	Long: `Display saved runs, newest first, or the runs with the most ground
on straight runs with --best.

Examples:
  terragen history
  terragen history --best --limit 5
  terragen history -i
  terragen history show 3`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Re-render a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list")
	historyCmd.Flags().BoolVar(&flagBest, "best", false, "Order by linear ground instead of date")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a full-screen view")
	historyShowCmd.Flags().StringVar(&flagShowRender, "render", "", "Renderer (default from config)")
	historyCmd.AddCommand(historyShowCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagInteractive {
		r, err := render.Get(cfg.Render.Mode)
		if err != nil {
			return err
		}
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, r, width, height)
	}

	var runs []storage.Run
	if flagBest {
		runs, err = store.BestRuns(flagLimit)
	} else {
		runs, err = store.RecentRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs saved yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'terragen generate --save <seed>' to record one!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-5s  %-16s  %-8s  %-6s  %-8s  %-6s  %s\n", "ID", "Seed", "Size", "Gens", "State", "Linear", "Date")
	fmt.Fprintf(out, "  %-5s  %-16s  %-8s  %-6s  %-8s  %-6s  %s\n", "--", "----", "----", "----", "-----", "------", "----")

	// Print runs
	for _, row := range tui.RunRows(runs) {
		fmt.Fprintf(out, "  %-5s  %-16s  %-8s  %-6s  %-8s  %-6s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	// Show totals
	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d runs, %d settled, best linear %d, %.1f generations on average\n",
		stats.Runs, stats.Settled, stats.BestLinear, stats.AvgGenerations)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	mode := cfg.Render.Mode
	if flagShowRender != "" {
		mode = flagShowRender
	}
	r, err := render.Get(mode)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %d", id)
	}

	t, err := run.Terrain()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Document(r, t))
	fmt.Fprintf(out, "seed: %s\n", run.SeedText)
	fmt.Fprintf(out, "state: %s after %d generations, saved %s\n", run.State, run.Generations, run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
