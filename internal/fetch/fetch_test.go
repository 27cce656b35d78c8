package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sempervent/gi/internal/cache"
)

func setCacheHome(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// newTestFetcher builds a Fetcher pointed at test servers with retries
// shortened to keep tests fast.
func newTestFetcher(opts Options) *Fetcher {
	f := New(opts)
	f.retryBase = time.Millisecond
	return f
}

// templateServer serves raw templates at /<name>.gitignore.
func templateServer(t *testing.T, templates map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".gitignore")
		content, ok := templates[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, content)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTemplateFetchesAndCaches(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{"Python": "*.pyc\n__pycache__/\n"})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	content, err := f.Template(context.Background(), "Python", false)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if content != "*.pyc\n__pycache__/\n" {
		t.Errorf("content = %q", content)
	}

	path, err := cache.TemplatePath("Python")
	if err != nil {
		t.Fatalf("TemplatePath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("template was not cached: %v", err)
	}
	if string(data) != content {
		t.Errorf("cached content = %q, want %q", data, content)
	}
}

func TestTemplateServedFromFreshCache(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{"Go": "*.exe\n"})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	if _, err := f.Template(context.Background(), "Go", false); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	srv.Close()

	// Server is gone; the fresh cache must answer.
	content, err := f.Template(context.Background(), "Go", false)
	if err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if content != "*.exe\n" {
		t.Errorf("content = %q", content)
	}
}

func TestTemplateNoCacheBypassesRead(t *testing.T) {
	setCacheHome(t)
	templates := map[string]string{"Node": "node_modules/\n"}
	srv := templateServer(t, templates)
	f := newTestFetcher(Options{BaseURL: srv.URL})

	if _, err := f.Template(context.Background(), "Node", false); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	templates["Node"] = "node_modules/\n.npm/\n"
	content, err := f.Template(context.Background(), "Node", true)
	if err != nil {
		t.Fatalf("noCache fetch: %v", err)
	}
	if content != "node_modules/\n.npm/\n" {
		t.Errorf("noCache should refetch, got %q", content)
	}
}

func TestTemplateStaleCacheFallback(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{"Rust": "target/\n"})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	if _, err := f.Template(context.Background(), "Rust", false); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	srv.Close()

	// Negative MaxAge marks every cached file stale, forcing a network
	// attempt; with the server gone the stale copy must still win.
	offline := newTestFetcher(Options{BaseURL: srv.URL, MaxAge: -1})
	content, err := offline.Template(context.Background(), "Rust", false)
	if err != nil {
		t.Fatalf("offline fetch: %v", err)
	}
	if content != "target/\n" {
		t.Errorf("content = %q", content)
	}
}

func TestTemplateNotFound(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, nil)
	f := newTestFetcher(Options{BaseURL: srv.URL})

	_, err := f.Template(context.Background(), "NoSuchThing", false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err == nil || !strings.Contains(err.Error(), "NoSuchThing") {
		t.Errorf("error should name the template: %v", err)
	}
}

func TestTemplateRetriesTransientErrors(t *testing.T) {
	setCacheHome(t)
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()
		if n <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "vendor/\n")
	}))
	t.Cleanup(srv.Close)

	f := newTestFetcher(Options{BaseURL: srv.URL})
	content, err := f.Template(context.Background(), "Composer", false)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if content != "vendor/\n" {
		t.Errorf("content = %q", content)
	}
	mu.Lock()
	defer mu.Unlock()
	if requests != 3 {
		t.Errorf("requests = %d, want 3 (two failures then success)", requests)
	}
}

func TestTemplateGivesUpAfterRetries(t *testing.T) {
	setCacheHome(t)
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	f := newTestFetcher(Options{BaseURL: srv.URL})
	if _, err := f.Template(context.Background(), "Python", false); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	mu.Lock()
	defer mu.Unlock()
	if requests != maxRetries+1 {
		t.Errorf("requests = %d, want %d", requests, maxRetries+1)
	}
}

func TestTemplateDoesNotRetryClientErrors(t *testing.T) {
	setCacheHome(t)
	var mu sync.Mutex
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	f := newTestFetcher(Options{BaseURL: srv.URL})
	if _, err := f.Template(context.Background(), "Python", false); err == nil {
		t.Fatal("expected error for 403")
	}
	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (no retry on 4xx)", requests)
	}
}

// indexServer mimics the GitHub contents API with a root listing and a
// Global/ subdirectory.
func indexServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/contents", func(w http.ResponseWriter, r *http.Request) {
		entries := []map[string]any{
			{"name": "Go.gitignore", "path": "Go.gitignore", "type": "file", "size": 50},
			{"name": "Python.gitignore", "path": "Python.gitignore", "type": "file", "size": 100},
			{"name": "README.md", "path": "README.md", "type": "file", "size": 10},
			{"name": "Global", "path": "Global", "type": "dir", "url": srv.URL + "/contents/Global"},
		}
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			t.Errorf("encode: %v", err)
		}
	})
	mux.HandleFunc("/contents/Global", func(w http.ResponseWriter, r *http.Request) {
		entries := []map[string]any{
			{"name": "macOS.gitignore", "path": "Global/macOS.gitignore", "type": "file", "size": 30},
			{"name": "Vim.gitignore", "path": "Global/Vim.gitignore", "type": "file", "size": 20},
		}
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			t.Errorf("encode: %v", err)
		}
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestIndexBuildsFromContentsAPI(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	idx, err := f.Index(context.Background(), false)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}

	want := []string{"Go", "Python", "Global/macOS", "Global/Vim"}
	if diff := cmp.Diff(want, idx.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if idx.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
	if idx.Source != srv.URL+"/contents" {
		t.Errorf("Source = %q", idx.Source)
	}
}

func TestIndexCachesResult(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	if _, err := f.Index(context.Background(), false); err != nil {
		t.Fatalf("Index: %v", err)
	}
	srv.Close()

	idx, err := f.Index(context.Background(), false)
	if err != nil {
		t.Fatalf("cached Index: %v", err)
	}
	if len(idx.Templates) != 4 {
		t.Errorf("cached index has %d templates, want 4", len(idx.Templates))
	}
}

func TestIndexOfflineFallback(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	if _, err := f.Index(context.Background(), false); err != nil {
		t.Fatalf("Index: %v", err)
	}
	srv.Close()

	offline := newTestFetcher(Options{APIURL: srv.URL + "/contents", MaxAge: -1})
	idx, err := offline.Index(context.Background(), false)
	if err != nil {
		t.Fatalf("offline Index should fall back to cache: %v", err)
	}
	if len(idx.Templates) != 4 {
		t.Errorf("fallback index has %d templates, want 4", len(idx.Templates))
	}
}

func TestIndexRefetchesCorruptCache(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	path, err := cache.IndexPath()
	if err != nil {
		t.Fatalf("IndexPath: %v", err)
	}
	if err := os.WriteFile(path, []byte("{不正"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	idx, err := f.Index(context.Background(), false)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(idx.Templates) != 4 {
		t.Errorf("index has %d templates, want 4", len(idx.Templates))
	}
}

func TestIndexForceRefetches(t *testing.T) {
	setCacheHome(t)
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		entries := []map[string]any{
			{"name": "Go.gitignore", "path": "Go.gitignore", "type": "file", "size": 50},
		}
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	f := newTestFetcher(Options{APIURL: srv.URL})
	for i := 0; i < 2; i++ {
		if _, err := f.Index(context.Background(), false); err != nil {
			t.Fatalf("Index: %v", err)
		}
	}
	mu.Lock()
	if hits != 1 {
		t.Errorf("hits = %d, want 1 (second call served from cache)", hits)
	}
	mu.Unlock()

	if _, err := f.Index(context.Background(), true); err != nil {
		t.Fatalf("forced Index: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if hits != 2 {
		t.Errorf("hits = %d, want 2 (force bypasses fresh cache)", hits)
	}
}

func TestListTemplatesSorted(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	names, err := f.ListTemplates(context.Background())
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	want := []string{"Global/Vim", "Global/macOS", "Go", "Python"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchTemplates(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	tests := []struct {
		query string
		want  []string
	}{
		{"py", []string{"Python"}},
		{"GLOBAL", []string{"Global/Vim", "Global/macOS"}},
		{"o", []string{"Global/Vim", "Global/macOS", "Go", "Python"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		got, err := f.SearchTemplates(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("SearchTemplates(%q): %v", tt.query, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SearchTemplates(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestTemplateInfo(t *testing.T) {
	setCacheHome(t)
	srv := indexServer(t)
	f := newTestFetcher(Options{APIURL: srv.URL + "/contents"})

	info, err := f.TemplateInfo(context.Background(), "Global/macOS")
	if err != nil {
		t.Fatalf("TemplateInfo: %v", err)
	}
	if info.Name != "macOS.gitignore" || info.Path != "Global/macOS.gitignore" {
		t.Errorf("info = %+v", info)
	}
	if info.Size != 30 {
		t.Errorf("Size = %d, want 30", info.Size)
	}

	if _, err := f.TemplateInfo(context.Background(), "Atari"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
