// Package fetch retrieves .gitignore templates and the template index from
// the github/gitignore repository. Both are cached on disk so repeated runs
// and offline use stay fast.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sempervent/gi/internal/cache"
)

const (
	// DefaultBaseURL serves raw template files from github/gitignore.
	DefaultBaseURL = "https://raw.githubusercontent.com/github/gitignore/HEAD"
	// DefaultAPIURL lists repository contents for building the index.
	DefaultAPIURL = "https://api.github.com/repos/github/gitignore/contents"

	userAgent  = "gi"
	maxRetries = 3
)

// ErrNotFound reports a template name the repository does not serve.
var ErrNotFound = errors.New("template not found")

// TemplateInfo describes one entry in the template index.
type TemplateInfo struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
	Size        int64  `json:"size"`
}

// Index is the cached list of templates the repository serves.
type Index struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Source    string         `json:"source"`
	Templates []TemplateInfo `json:"templates"`
}

// Names returns the canonical template names in the index, derived from
// repository paths ("Python", "Global/macOS").
func (i *Index) Names() []string {
	names := make([]string, 0, len(i.Templates))
	for _, t := range i.Templates {
		names = append(names, strings.TrimSuffix(t.Path, ".gitignore"))
	}
	return names
}

// Lookup finds the index entry for a canonical template name.
func (i *Index) Lookup(name string) (TemplateInfo, bool) {
	for _, t := range i.Templates {
		if strings.TrimSuffix(t.Path, ".gitignore") == name {
			return t, true
		}
	}
	return TemplateInfo{}, false
}

// Options configures a Fetcher. Zero fields use package defaults.
type Options struct {
	// BaseURL overrides the raw content URL (--from flag).
	BaseURL string
	// APIURL overrides the contents API used for the index.
	APIURL string
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
	// MaxAge bounds cache freshness. Zero means the default 24 hours;
	// a negative value treats every cached file as stale.
	MaxAge time.Duration
}

// Fetcher downloads templates with retry and falls back to cached copies
// when the network is unavailable.
type Fetcher struct {
	baseURL   string
	apiURL    string
	maxAge    time.Duration
	retryBase time.Duration
	client    *http.Client
}

// New returns a Fetcher for the given options.
func New(opts Options) *Fetcher {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxAge := opts.MaxAge
	if maxAge == 0 {
		maxAge = cache.DefaultMaxAge
	}
	return &Fetcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiURL:    apiURL,
		maxAge:    maxAge,
		retryBase: time.Second,
		client:    &http.Client{Timeout: timeout},
	}
}

// BaseURL reports the configured raw content URL.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// Template returns the content of one template, preferring a fresh cached
// copy. With noCache set the cache is skipped for reads but still written,
// and still serves as a last resort if the network fails.
func (f *Fetcher) Template(ctx context.Context, name string, noCache bool) (string, error) {
	path, cacheErr := cache.TemplatePath(name)
	if cacheErr == nil && !noCache && !cache.IsStale(path, f.maxAge) {
		if data, err := os.ReadFile(path); err == nil {
			return string(data), nil
		}
	}

	content, fetchErr := f.get(ctx, f.baseURL+"/"+name+".gitignore")
	if fetchErr == nil {
		if cacheErr == nil {
			if err := os.WriteFile(path, content, 0o644); err != nil {
				slog.Warn("caching template failed", "template", name, "error", err)
			}
		}
		return string(content), nil
	}

	// Network failed; any cached copy, stale or not, beats nothing.
	if cacheErr == nil {
		if data, err := os.ReadFile(path); err == nil {
			slog.Debug("serving cached template after fetch failure", "template", name)
			return string(data), nil
		}
	}
	if errors.Is(fetchErr, ErrNotFound) {
		return "", fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return "", fmt.Errorf("fetching template %q: %w", name, fetchErr)
}

// Index returns the template index, consulting the GitHub contents API when
// the cached copy is stale or force is set. Network failures fall back to
// any cached index.
func (f *Fetcher) Index(ctx context.Context, force bool) (*Index, error) {
	path, cacheErr := cache.IndexPath()
	if cacheErr == nil && !force && !cache.IsStale(path, f.maxAge) {
		if idx, err := readIndex(path); err == nil {
			return idx, nil
		}
		// Corrupt cache; fetch fresh below.
	}

	idx, fetchErr := f.fetchIndex(ctx)
	if fetchErr == nil {
		if cacheErr == nil {
			if err := writeIndex(path, idx); err != nil {
				slog.Warn("caching index failed", "error", err)
			}
		}
		return idx, nil
	}

	if cacheErr == nil {
		if idx, err := readIndex(path); err == nil {
			slog.Debug("serving cached index after fetch failure")
			return idx, nil
		}
	}
	return nil, fmt.Errorf("fetching template index: %w", fetchErr)
}

// CachedIndex returns the locally cached index without touching the
// network. Callers that can fetch should use Index instead.
func CachedIndex() (*Index, error) {
	path, err := cache.IndexPath()
	if err != nil {
		return nil, err
	}
	return readIndex(path)
}

// ListTemplates returns every template name the repository serves, sorted.
func (f *Fetcher) ListTemplates(ctx context.Context) ([]string, error) {
	idx, err := f.Index(ctx, false)
	if err != nil {
		return nil, err
	}
	names := idx.Names()
	sort.Strings(names)
	return names, nil
}

// SearchTemplates returns template names containing the query, matched
// case-insensitively.
func (f *Fetcher) SearchTemplates(ctx context.Context, query string) ([]string, error) {
	names, err := f.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matches []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), q) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// TemplateInfo returns the index entry for a canonical template name.
func (f *Fetcher) TemplateInfo(ctx context.Context, name string) (TemplateInfo, error) {
	idx, err := f.Index(ctx, false)
	if err != nil {
		return TemplateInfo{}, err
	}
	info, ok := idx.Lookup(name)
	if !ok {
		return TemplateInfo{}, fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return info, nil
}

// contentsEntry mirrors the fields we use from the GitHub contents API.
type contentsEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

// fetchIndex builds a fresh index from the contents API. The repository
// keeps editor templates one level down in Global/, so that directory is
// listed too.
func (f *Fetcher) fetchIndex(ctx context.Context) (*Index, error) {
	entries, err := f.listContents(ctx, f.apiURL)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		FetchedAt: time.Now().UTC(),
		Source:    f.apiURL,
	}
	for _, entry := range entries {
		switch {
		case entry.Type == "file" && strings.HasSuffix(entry.Name, ".gitignore"):
			idx.Templates = append(idx.Templates, TemplateInfo{
				Name:        entry.Name,
				Path:        entry.Path,
				DownloadURL: entry.DownloadURL,
				Size:        entry.Size,
			})
		case entry.Type == "dir" && entry.Name == "Global":
			sub, err := f.listContents(ctx, entry.URL)
			if err != nil {
				return nil, err
			}
			for _, g := range sub {
				if g.Type == "file" && strings.HasSuffix(g.Name, ".gitignore") {
					idx.Templates = append(idx.Templates, TemplateInfo{
						Name:        g.Name,
						Path:        g.Path,
						DownloadURL: g.DownloadURL,
						Size:        g.Size,
					})
				}
			}
		}
	}
	return idx, nil
}

func (f *Fetcher) listContents(ctx context.Context, url string) ([]contentsEntry, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var entries []contentsEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing contents listing: %w", err)
	}
	return entries, nil
}

// get issues a GET with retries on transient failures (429 and 5xx),
// backing off 1s, 2s, 4s between attempts.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := f.retryBase << (attempt - 1)
			slog.Debug("retrying fetch", "url", url, "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		case retryStatus(resp.StatusCode):
			lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		default:
			return nil, fmt.Errorf("server returned %d", resp.StatusCode)
		}
	}
	return nil, lastErr
}

// retryStatus reports whether an HTTP status is worth retrying.
func retryStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func readIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

func writeIndex(path string, idx *Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
