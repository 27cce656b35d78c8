package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of fetching one template.
type Result struct {
	Name    string
	Content string
	Err     error
}

// FetchAll downloads the named templates, at most concurrency at a time.
// Every name gets a Result in input order. Failures are reported
// per-template so one bad name does not sink the rest.
func (f *Fetcher) FetchAll(ctx context.Context, names []string, concurrency int, noCache bool) []Result {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]Result, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, name := range names {
		eg.Go(func() error {
			content, err := f.Template(egCtx, name, noCache)
			results[i] = Result{Name: name, Content: content, Err: err}
			return nil
		})
	}
	// Workers never return errors; per-template failures live in results.
	_ = eg.Wait()
	return results
}
