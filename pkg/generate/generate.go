// Package generate runs the build-and-write pipeline for every configured
// sprite family and remote table, one catalog at a time.
package generate

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/holon-run/spritegen/pkg/catalog"
	"github.com/holon-run/spritegen/pkg/family"
	holonlog "github.com/holon-run/spritegen/pkg/log"
	"github.com/holon-run/spritegen/pkg/source/markdown"
	"github.com/holon-run/spritegen/pkg/source/stdlib"
	"github.com/holon-run/spritegen/pkg/sprite"
)

// FetcherFactory returns the fetcher for a remote table.
type FetcherFactory func(ctx context.Context, t family.Table) markdown.Fetcher

// Generator writes one JSON sprite set per family and table.
type Generator struct {
	// StdlibDir is the root of the plantuml-stdlib checkout ("stdlib" folder).
	StdlibDir string
	// OutDir receives the catalogs; family output paths are relative to it.
	OutDir string
	Config *family.Config
	// Fetchers defaults to DefaultFetchers with no token.
	Fetchers FetcherFactory
	// SkipTables disables remote tables.
	SkipTables bool
}

// Result summarizes one written catalog.
type Result struct {
	ID         string
	Output     string
	Sprites    int
	Bytes      int
	Duplicates []string
}

// DefaultFetchers prefers the GitHub contents API when a token is available
// and falls back to the raw URL otherwise.
func DefaultFetchers(token string, client *http.Client) FetcherFactory {
	return func(ctx context.Context, t family.Table) markdown.Fetcher {
		if t.GitHub != nil && (token != "" || t.URL == "") {
			gh := markdown.NewGitHubClient(ctx, token)
			return markdown.NewGitHubFetcher(gh, t.GitHub.Owner, t.GitHub.Repo, t.GitHub.Ref, t.GitHub.Path)
		}
		return markdown.NewHTTPFetcher(t.URL, client)
	}
}

// Run generates every configured catalog in order. It stops at the first
// failure; catalogs written before it stay on disk.
func (g *Generator) Run(ctx context.Context) ([]Result, error) {
	var results []Result
	for _, f := range g.Config.Families {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := g.RunFamily(f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	if g.SkipTables {
		if len(g.Config.Tables) > 0 {
			holonlog.Info("skipping remote tables", "tables", len(g.Config.Tables))
		}
		return results, nil
	}

	fetchers := g.Fetchers
	if fetchers == nil {
		fetchers = DefaultFetchers("", nil)
	}
	for _, t := range g.Config.Tables {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := g.RunTable(ctx, t, fetchers(ctx, t))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// RunFamily discovers, builds and writes the sprite set of one stdlib family.
func (g *Generator) RunFamily(f family.Family) (Result, error) {
	r, err := f.Rules(g.StdlibDir)
	if err != nil {
		return Result{}, err
	}

	paths, err := stdlib.Discover(g.StdlibDir, f.Folder, f.SuffixOrDefault())
	if err != nil {
		return Result{}, fmt.Errorf("family %s: %w", f.ID, err)
	}

	set := &sprite.Set{
		Name:               f.Name,
		Source:             g.Config.SourceURL(f),
		AdditionalIncludes: f.Includes,
		Sprites:            catalog.Build(paths, r),
	}
	return g.write(f.ID, f.Output, set)
}

// RunTable fetches, parses and writes the image sprite set of a remote table.
func (g *Generator) RunTable(ctx context.Context, t family.Table, fetcher markdown.Fetcher) (Result, error) {
	holonlog.Debug("fetching remote table", "table", t.ID, "source", fetcher.Source())
	lines, err := fetcher.Fetch(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("table %s: %w", t.ID, err)
	}

	sprites, err := t.TableParser().Parse(lines)
	if err != nil {
		return Result{}, fmt.Errorf("table %s: %w", t.ID, err)
	}

	set := &sprite.Set{
		Name:                  t.Name,
		Source:                t.Source,
		AdditionalDefinitions: t.Definitions,
		Sprites:               sprites,
	}
	return g.write(t.ID, t.Output, set)
}

func (g *Generator) write(id, output string, set *sprite.Set) (Result, error) {
	dest := output
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(g.OutDir, output)
	}

	res := Result{ID: id, Output: dest, Sprites: len(set.Sprites), Duplicates: catalog.Duplicates(set.Sprites)}
	if len(res.Duplicates) > 0 {
		holonlog.Warn("duplicate sprite names", "catalog", id, "names", res.Duplicates)
	}

	size, err := catalog.Write(set, dest)
	if err != nil {
		return Result{}, fmt.Errorf("catalog %s: %w", id, err)
	}
	res.Bytes = size
	holonlog.Progress("wrote sprite set", "catalog", id, "sprites", res.Sprites, "size", humanize.Bytes(uint64(size)), "path", dest)
	return res, nil
}
