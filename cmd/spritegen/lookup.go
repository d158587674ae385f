package main

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holon-run/spritegen/pkg/catalog"
)

var (
	lookupDir   string
	lookupRegex bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup NAME",
	Short: "Resolve a sprite by name from generated catalogs",
	Long: `Resolve a sprite by name from the catalogs in --out.

Names are matched case-insensitively. With --regex, NAME is a regular
expression and every sprite whose name matches is printed.

Examples:
  spritegen lookup logos-docker-icon-img
  spritegen lookup --regex kafka`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := catalog.NewLibrary()
		if err := lib.LoadDir(lookupDir); err != nil {
			return err
		}
		return runLookup(cmd.OutOrStdout(), lib, args[0], lookupRegex)
	},
}

func runLookup(out io.Writer, lib *catalog.Library, name string, useRegex bool) error {
	if !useRegex {
		e, err := lib.ByName(name)
		if err != nil {
			return err
		}
		printEntry(out, e)
		return nil
	}

	re, err := regexp.Compile(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	found := lib.FindByNameContaining(re)
	if len(found) == 0 {
		return fmt.Errorf("%w: no name matches %s", catalog.ErrSpriteNotFound, name)
	}
	for _, e := range found {
		printEntry(out, e)
	}
	return nil
}

func printEntry(out io.Writer, e catalog.Entry) {
	fmt.Fprintf(out, "%s\t%s\t%s", e.Name, e.Locator, e.Set)
	if e.Color != "" {
		fmt.Fprintf(out, "\tcolor=%s", e.Color)
	}
	if e.Reference != "" {
		fmt.Fprintf(out, "\treference=%s", e.Reference)
	}
	fmt.Fprintln(out)
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupDir, "out", "o", defaultOutDir, "Directory holding generated catalogs")
	lookupCmd.Flags().BoolVar(&lookupRegex, "regex", false, "Treat NAME as a regular expression")
	rootCmd.AddCommand(lookupCmd)
}
