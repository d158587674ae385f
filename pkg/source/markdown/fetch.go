package markdown

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	holonlog "github.com/holon-run/spritegen/pkg/log"
)

// RequestTimeout bounds a single fetch of the sprites list.
const RequestTimeout = 30 * time.Second

// Fetcher returns the lines of a remote markdown document.
type Fetcher interface {
	Fetch(ctx context.Context) ([]string, error)
	// Source describes where the lines come from, for logs.
	Source() string
}

// HTTPFetcher downloads a raw file over HTTP.
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTPFetcher creates a fetcher for url. A nil client uses a default one
// with RequestTimeout.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: RequestTimeout}
	}
	return &HTTPFetcher{client: client, url: url}
}

func (f *HTTPFetcher) Source() string {
	return f.url
}

// Fetch performs a single GET; there are no retries.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	holonlog.Debug("fetching sprites list", "url", f.url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s returned HTTP %d: %s", f.url, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return readLines(resp.Body)
}

// GitHubFetcher reads a file through the GitHub contents API.
type GitHubFetcher struct {
	client *github.Client
	owner  string
	repo   string
	ref    string
	path   string
}

// NewGitHubClient creates an API client, authenticated when token is set.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: RequestTimeout})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = RequestTimeout
	return github.NewClient(tc)
}

// NewGitHubFetcher creates a fetcher for owner/repo/path at ref. An empty ref
// means the default branch.
func NewGitHubFetcher(client *github.Client, owner, repo, ref, path string) *GitHubFetcher {
	return &GitHubFetcher{client: client, owner: owner, repo: repo, ref: ref, path: path}
}

func (f *GitHubFetcher) Source() string {
	src := fmt.Sprintf("github:%s/%s/%s", f.owner, f.repo, f.path)
	if f.ref != "" {
		src += "@" + f.ref
	}
	return src
}

func (f *GitHubFetcher) Fetch(ctx context.Context) ([]string, error) {
	holonlog.Debug("fetching sprites list from GitHub", "owner", f.owner, "repo", f.repo, "path", f.path, "ref", f.ref)

	var opts *github.RepositoryContentGetOptions
	if f.ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: f.ref}
	}
	file, _, _, err := f.client.Repositories.GetContents(ctx, f.owner, f.repo, f.path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.Source(), err)
	}
	if file == nil {
		return nil, fmt.Errorf("failed to fetch %s: path is a directory", f.Source())
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.Source(), err)
	}
	return readLines(strings.NewReader(content))
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sprites list: %w", err)
	}
	return lines, nil
}
