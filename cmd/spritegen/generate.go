package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/holon-run/spritegen/pkg/family"
	"github.com/holon-run/spritegen/pkg/generate"
	holonlog "github.com/holon-run/spritegen/pkg/log"
)

const (
	defaultStdlibDir = "../plantuml-stdlib/stdlib"
	defaultOutDir    = "./sprites"
)

var (
	configPath string
	stdlibDir  string
	outDir     string
	familyIDs  []string
	skipRemote bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build and write sprite set catalogs",
	Long: `Build and write sprite set catalogs.

Every configured family is discovered below --stdlib and written to --out,
followed by the remote tables. Catalogs are produced one after another; the
first failure stops the run and leaves earlier catalogs in place.

GITHUB_TOKEN (or GH_TOKEN), from the environment or a .env file, switches
remote tables to the authenticated GitHub contents API.

Examples:
  spritegen generate --stdlib ../plantuml-stdlib/stdlib --out src/main/resources/sprites
  spritegen generate --family aws --family k8s --skip-remote`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadSelectedConfig(configPath, familyIDs)
		if err != nil {
			return err
		}

		g := &generate.Generator{
			StdlibDir:  stdlibDir,
			OutDir:     outDir,
			Config:     cfg,
			Fetchers:   generate.DefaultFetchers(githubToken(), nil),
			SkipTables: skipRemote,
		}
		return runGenerate(ctx, g)
	},
}

func loadSelectedConfig(path string, ids []string) (*family.Config, error) {
	cfg, err := family.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Select(ids)
}

func runGenerate(ctx context.Context, g *generate.Generator) error {
	results, err := g.Run(ctx)
	if err != nil {
		return fmt.Errorf("generation failed after %d catalog(s): %w", len(results), err)
	}

	total := 0
	for _, r := range results {
		total += r.Sprites
	}
	holonlog.Progress("generation complete", "catalogs", len(results), "sprites", total)
	return nil
}

func githubToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GH_TOKEN")
}

func init() {
	generateCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a families YAML file (default: built-in table)")
	generateCmd.Flags().StringVarP(&stdlibDir, "stdlib", "s", defaultStdlibDir, "Path to the plantuml-stdlib \"stdlib\" directory")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", defaultOutDir, "Directory the catalogs are written to")
	generateCmd.Flags().StringSliceVarP(&familyIDs, "family", "f", nil, "Only generate these family or table IDs (repeatable)")
	generateCmd.Flags().BoolVar(&skipRemote, "skip-remote", false, "Do not fetch remote tables")
	rootCmd.AddCommand(generateCmd)
}
