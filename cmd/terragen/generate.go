package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/terragen/internal/config"
	"github.com/vovakirdan/terragen/internal/generator"
	"github.com/vovakirdan/terragen/internal/render"
	"github.com/vovakirdan/terragen/internal/storage"
)

var (
	flagSeedFile string
	flagRender   string
	flagSave     bool
	flagMaxGen   int
	flagSize     string
)

var generateCmd = &cobra.Command{
	Use:   "generate [seed]",
	Short: "Generate a terrain and print it",
	Long: `Generate a terrain from seed text and print the grid followed by its
statistics and the seed.

The seed is taken from the argument, from --seed-file, or read as one line
from standard input (a "> " prompt is shown on a terminal).

Examples:
  terragen generate hello
  terragen generate --render color "misty isles"
  terragen generate --seed-file seed.txt --save
  terragen generate --size small --max-gen 500 hello`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerationFlags(generateCmd)
	generateCmd.Flags().StringVar(&flagSeedFile, "seed-file", "", "Read the seed from a file")
	generateCmd.Flags().StringVar(&flagRender, "render", "", "Renderer: "+strings.Join(render.Names(), ", ")+" (default from config)")
	generateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
}

// addGenerationFlags registers the flags shared by generate and watch.
func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagMaxGen, "max-gen", -1, "Generation cap, 0 for none (default from config)")
	cmd.Flags().StringVar(&flagSize, "size", "", "Size preset: "+strings.Join(config.Presets(), ", "))
}

// applyGenerationFlags folds the shared flags into the loaded config.
func applyGenerationFlags() error {
	if flagSize != "" {
		if err := config.ApplySizePreset(&cfg, config.SizePreset(flagSize)); err != nil {
			return err
		}
	}
	if flagMaxGen >= 0 {
		cfg.Generation.MaxGenerations = flagMaxGen
	}
	return cfg.Validate()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := applyGenerationFlags(); err != nil {
		return err
	}

	seedText, err := readSeed(args, flagSeedFile, os.Stdin, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	mode := cfg.Render.Mode
	if flagRender != "" {
		mode = flagRender
	}
	renderer, err := render.Get(mode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := generate(ctx, seedText)
	if err != nil && !errors.Is(err, generator.ErrDidNotConverge) {
		return err
	}
	if err != nil {
		logger.Warn("terrain did not settle; printing the last generation", "generations", res.Generations)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render.Document(renderer, res.Terrain))
	fmt.Fprintf(out, "seed: %s\n", res.SeedText)

	if flagSave {
		id, err := saveRun(res)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved as run #%d\n", id)
	}
	return nil
}

// generate runs a generator configured from cfg.
func generate(ctx context.Context, seedText string) (*generator.Result, error) {
	g, err := generator.New(cfg.Params(), generator.Options{
		MaxGenerations: cfg.Generation.MaxGenerations,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	return g.Run(ctx, seedText)
}

// saveRun records a result in the configured history database.
func saveRun(res *generator.Result) (int64, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.SaveRun(storage.RunFromResult(res))
}

// readSeed picks the seed from args, a file, or one line of in.
// The prompt is only shown when in is a terminal.
func readSeed(args []string, seedFile string, in io.Reader, out io.Writer) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if seedFile != "" {
		data, err := os.ReadFile(seedFile)
		if err != nil {
			return "", fmt.Errorf("cannot read seed file: %w", err)
		}
		return generator.NormalizeSeedText(string(data)), nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "> ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("cannot read seed: %w", err)
	}
	return generator.NormalizeSeedText(line), nil
}
