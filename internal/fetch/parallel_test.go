package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFetchAllPreservesOrder(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{
		"Python": "*.pyc\n",
		"Go":     "*.exe\n",
		"Node":   "node_modules/\n",
	})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	names := []string{"Python", "Go", "Node"}
	results := f.FetchAll(context.Background(), names, 2, false)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, name := range names {
		if results[i].Name != name {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, name)
		}
		if results[i].Err != nil {
			t.Errorf("results[%d].Err = %v", i, results[i].Err)
		}
		if results[i].Content == "" {
			t.Errorf("results[%d] has empty content", i)
		}
	}
}

func TestFetchAllPartialFailure(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{
		"Python": "*.pyc\n",
		"Go":     "*.exe\n",
	})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	results := f.FetchAll(context.Background(), []string{"Python", "Klingon", "Go"}, 3, false)

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("valid templates failed: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, ErrNotFound) {
		t.Errorf("results[1].Err = %v, want ErrNotFound", results[1].Err)
	}
	if results[0].Content != "*.pyc\n" || results[2].Content != "*.exe\n" {
		t.Errorf("contents corrupted: %+v", results)
	}
}

func TestFetchAllBoundsConcurrency(t *testing.T) {
	setCacheHome(t)
	var mu sync.Mutex
	inFlight, peak := 0, 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		fmt.Fprint(w, "pattern\n")
	}))
	t.Cleanup(srv.Close)

	f := newTestFetcher(Options{BaseURL: srv.URL})
	names := make([]string, 8)
	for i := range names {
		names[i] = fmt.Sprintf("T%d", i)
	}

	results := f.FetchAll(context.Background(), names, 2, true)
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("fetch %s: %v", res.Name, res.Err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", peak)
	}
	if peak == 0 {
		t.Error("no requests observed")
	}
}

func TestFetchAllEmptyNames(t *testing.T) {
	setCacheHome(t)
	f := newTestFetcher(Options{BaseURL: "http://127.0.0.1:0"})
	results := f.FetchAll(context.Background(), nil, 4, false)
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestFetchAllCancelledContext(t *testing.T) {
	setCacheHome(t)
	srv := templateServer(t, map[string]string{"Python": "*.pyc\n"})
	f := newTestFetcher(Options{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := f.FetchAll(ctx, []string{"Python"}, 1, true)
	if results[0].Err == nil {
		t.Error("expected error from cancelled context")
	}
	if !strings.Contains(results[0].Err.Error(), "context canceled") {
		t.Logf("error is %v (acceptable as long as it fails)", results[0].Err)
	}
}
