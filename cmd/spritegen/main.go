package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	holonlog "github.com/holon-run/spritegen/pkg/log"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "spritegen",
	Short: "Generate sprite set catalogs for PlantUML icon libraries",
	Long: `spritegen builds the JSON sprite sets shipped with the diagram library.

It walks a local plantuml-stdlib checkout to derive one sprite set per icon
family, and converts the gilbarbara sprites list into an image sprite set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := holonlog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		return holonlog.Init(holonlog.Config{Level: level, Format: logFormat})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", string(holonlog.LevelProgress), "Log level: debug, info, progress, minimal, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", holonlog.FormatConsole, "Log format: console or json")
}

func main() {
	// .env may carry GITHUB_TOKEN; a missing file is fine
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = holonlog.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
