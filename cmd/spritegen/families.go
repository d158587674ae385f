package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/holon-run/spritegen/pkg/family"
)

var familiesConfigPath string

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List configured families and remote tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := family.Load(familiesConfigPath)
		if err != nil {
			return err
		}
		return printFamilies(cmd.OutOrStdout(), cfg)
	},
}

func printFamilies(out io.Writer, cfg *family.Config) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSOURCE\tOUTPUT\tRULES")
	for _, f := range cfg.Families {
		fmt.Fprintf(w, "%s\tstdlib\t%s\t%s\t%s\n", f.ID, f.Folder+"/**/*"+f.SuffixOrDefault(), f.Output, describeRules(f))
	}
	for _, t := range cfg.Tables {
		src := t.URL
		if t.GitHub != nil {
			src = fmt.Sprintf("github:%s/%s/%s", t.GitHub.Owner, t.GitHub.Repo, t.GitHub.Path)
		}
		fmt.Fprintf(w, "%s\ttable\t%s\t%s\t-\n", t.ID, src, t.Output)
	}
	return w.Flush()
}

func describeRules(f family.Family) string {
	var parts []string
	switch f.Naming.Rule {
	case "", family.NamingDefault:
		parts = append(parts, "name=default")
	case family.NamingStrip:
		parts = append(parts, fmt.Sprintf("name=strip(%s)", f.Naming.Marker))
	default:
		parts = append(parts, "name="+f.Naming.Rule)
	}
	switch {
	case f.Color.Constant != "":
		parts = append(parts, "color="+f.Color.Constant)
	case len(f.Color.Groups) > 0:
		parts = append(parts, fmt.Sprintf("color=%d groups", len(f.Color.Groups)))
	}
	if f.Reference.Prefix != "" {
		parts = append(parts, "reference="+f.Reference.Prefix)
	}
	return strings.Join(parts, " ")
}

func init() {
	familiesCmd.Flags().StringVarP(&familiesConfigPath, "config", "c", "", "Path to a families YAML file (default: built-in table)")
	rootCmd.AddCommand(familiesCmd)
}
