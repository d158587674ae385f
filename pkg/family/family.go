// Package family holds the per-family configuration records that drive
// catalog generation, loaded from YAML.
package family

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/holon-run/spritegen/pkg/catalog"
	"github.com/holon-run/spritegen/pkg/rules"
	"github.com/holon-run/spritegen/pkg/source/markdown"
)

// DefaultConfigYAML is the embedded family table.
//
//go:embed families.yaml
var DefaultConfigYAML []byte

// DefaultSuffix is the sprite file ending used when a family sets none.
const DefaultSuffix = ".puml"

// Naming rule identifiers.
const (
	NamingDefault = "default"
	NamingDedup   = "dedup"
	NamingStrip   = "strip"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid family config")

// Config is the full generator configuration.
type Config struct {
	StdlibURL string   `yaml:"stdlibURL"`
	Families  []Family `yaml:"families"`
	Tables    []Table  `yaml:"tables"`
}

// Family describes one stdlib folder turned into one sprite set.
type Family struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Folder    string    `yaml:"folder"`
	Output    string    `yaml:"output"`
	Suffix    string    `yaml:"suffix,omitempty"`
	Includes  []string  `yaml:"includes,omitempty"`
	Naming    Naming    `yaml:"naming,omitempty"`
	Color     Color     `yaml:"color,omitempty"`
	Reference Reference `yaml:"reference,omitempty"`
}

// Naming selects the naming rule variant.
type Naming struct {
	Rule   string `yaml:"rule,omitempty"`
	Marker string `yaml:"marker,omitempty"`
}

// Color selects the classifier: Constant, or Groups with a Default color.
// Both empty means no color.
type Color struct {
	Constant string        `yaml:"constant,omitempty"`
	Default  string        `yaml:"default,omitempty"`
	Groups   []rules.Group `yaml:"groups,omitempty"`
}

// Reference enables reference tags when Prefix is set.
type Reference struct {
	Prefix string `yaml:"prefix,omitempty"`
}

// Table describes a remote markdown sprites list turned into image sprites.
type Table struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	Output      string   `yaml:"output"`
	URL         string   `yaml:"url,omitempty"`
	GitHub      *GitHub  `yaml:"github,omitempty"`
	Separator   string   `yaml:"separator,omitempty"`
	FolderToken string   `yaml:"folderToken,omitempty"`
	BaseLocator string   `yaml:"baseLocator"`
	NamePrefix  string   `yaml:"namePrefix,omitempty"`
	Strip       []string `yaml:"strip,omitempty"`
	Definitions []string `yaml:"definitions,omitempty"`
}

// GitHub locates the sprites list inside a repository.
type GitHub struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Ref   string `yaml:"ref,omitempty"`
	Path  string `yaml:"path"`
}

// Default parses the embedded configuration.
func Default() (*Config, error) {
	return Parse(DefaultConfigYAML)
}

// Load reads a configuration file; an empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields, unique IDs and resolvable rules.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	claim := func(id string) error {
		if id == "" {
			return fmt.Errorf("%w: missing id", ErrInvalidConfig)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidConfig, id)
		}
		seen[id] = true
		return nil
	}

	for _, f := range c.Families {
		if err := claim(f.ID); err != nil {
			return err
		}
		if f.Name == "" || f.Folder == "" || f.Output == "" {
			return fmt.Errorf("%w: family %q needs name, folder and output", ErrInvalidConfig, f.ID)
		}
		if _, err := f.Rules(""); err != nil {
			return err
		}
	}
	for _, t := range c.Tables {
		if err := claim(t.ID); err != nil {
			return err
		}
		if t.Name == "" || t.Source == "" || t.Output == "" || t.BaseLocator == "" {
			return fmt.Errorf("%w: table %q needs name, source, output and baseLocator", ErrInvalidConfig, t.ID)
		}
		if t.URL == "" && t.GitHub == nil {
			return fmt.Errorf("%w: table %q needs url or github", ErrInvalidConfig, t.ID)
		}
		if g := t.GitHub; g != nil && (g.Owner == "" || g.Repo == "" || g.Path == "") {
			return fmt.Errorf("%w: table %q github needs owner, repo and path", ErrInvalidConfig, t.ID)
		}
	}
	return nil
}

// IDs returns family IDs followed by table IDs, in configuration order.
func (c *Config) IDs() []string {
	ids := make([]string, 0, len(c.Families)+len(c.Tables))
	for _, f := range c.Families {
		ids = append(ids, f.ID)
	}
	for _, t := range c.Tables {
		ids = append(ids, t.ID)
	}
	return ids
}

// Select keeps the families and tables named in ids, preserving
// configuration order. No ids keeps everything.
func (c *Config) Select(ids []string) (*Config, error) {
	if len(ids) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	out := &Config{StdlibURL: c.StdlibURL}
	for _, f := range c.Families {
		if want[f.ID] {
			out.Families = append(out.Families, f)
			delete(want, f.ID)
		}
	}
	for _, t := range c.Tables {
		if want[t.ID] {
			out.Tables = append(out.Tables, t)
			delete(want, t.ID)
		}
	}
	if len(want) > 0 {
		var unknown []string
		for _, id := range ids {
			if want[id] {
				unknown = append(unknown, id)
			}
		}
		return nil, fmt.Errorf("unknown family %s (known: %s)", strings.Join(unknown, ", "), strings.Join(c.IDs(), ", "))
	}
	return out, nil
}

// SuffixOrDefault returns the configured file suffix.
func (f Family) SuffixOrDefault() string {
	if f.Suffix == "" {
		return DefaultSuffix
	}
	return f.Suffix
}

// SourceURL is the browsable location of the family folder.
func (c *Config) SourceURL(f Family) string {
	return strings.TrimSuffix(c.StdlibURL, "/") + "/" + strings.Trim(f.Folder, "/") + "/"
}

// Rules resolves the family's rule functions for a checkout rooted at root.
func (f Family) Rules(root string) (catalog.Rules, error) {
	r := catalog.Rules{
		Normalizer: rules.Normalizer{Root: root, Suffix: f.SuffixOrDefault()},
		Folder:     f.Folder,
	}

	switch f.Naming.Rule {
	case "", NamingDefault:
		r.Name = rules.DefaultName
	case NamingDedup:
		r.Name = rules.DedupName
	case NamingStrip:
		if f.Naming.Marker == "" {
			return r, fmt.Errorf("%w: family %q: strip naming needs a marker", ErrInvalidConfig, f.ID)
		}
		r.Name = rules.StripName(f.Naming.Marker)
	default:
		return r, fmt.Errorf("%w: family %q: unknown naming rule %q", ErrInvalidConfig, f.ID, f.Naming.Rule)
	}

	switch {
	case f.Color.Constant != "" && len(f.Color.Groups) > 0:
		return r, fmt.Errorf("%w: family %q: color has both constant and groups", ErrInvalidConfig, f.ID)
	case f.Color.Constant != "":
		r.Color = rules.ConstantColor(f.Color.Constant)
	case len(f.Color.Groups) > 0:
		if f.Color.Default == "" {
			return r, fmt.Errorf("%w: family %q: grouped colors need a default", ErrInvalidConfig, f.ID)
		}
		g, err := rules.NewGroupedClassifier(f.Color.Groups, f.Color.Default)
		if err != nil {
			return r, fmt.Errorf("%w: family %q: %v", ErrInvalidConfig, f.ID, err)
		}
		r.Color = g.Classifier()
	}

	if f.Reference.Prefix != "" {
		r.Reference = rules.PrefixReference(f.Reference.Prefix)
	}
	return r, nil
}

// TableParser returns the markdown parser for t.
func (t Table) TableParser() markdown.Table {
	return markdown.Table{
		Separator:   t.Separator,
		FolderToken: t.FolderToken,
		BaseLocator: t.BaseLocator,
		NamePrefix:  t.NamePrefix,
		Strip:       t.Strip,
	}
}
