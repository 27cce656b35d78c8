package combine

import (
	"strings"
	"time"
)

// DefaultSourceURL is the attribution recorded in generated headers when no
// override is configured.
const DefaultSourceURL = "github/gitignore (HEAD)"

// Options control how Combine assembles the final output.
type Options struct {
	// Strategy selects replace or append behavior against existing content.
	Strategy MergeStrategy

	// Header prepends the generated attribution header block.
	Header bool

	// SourceURL is recorded in the header. Empty means DefaultSourceURL.
	SourceURL string

	// Now supplies the header timestamp. Nil means time.Now. Tests inject a
	// fixed clock here.
	Now func() time.Time
}

// GenerateHeader renders the attribution block placed at the top of a
// generated file: a title line, the source and fetch time, the template
// names in order, and a blank separator line.
func GenerateHeader(names []string, sourceURL string, now time.Time) string {
	var b strings.Builder
	b.WriteString("# .gitignore generated by gi\n")
	b.WriteString("# Source: " + sourceURL + " — fetched " + now.UTC().Format("2006-01-02 15:04:05") + " UTC\n")
	b.WriteString("# Templates: " + strings.Join(names, ", ") + "\n")
	b.WriteString("\n")
	return b.String()
}

// Combine merges the templates in sources into one .gitignore body and,
// under StrategyAppend, folds that body into existingText while skipping
// sections the existing content already has. An empty set returns
// existingText unchanged. Non-empty results end with exactly one newline.
func Combine(sources *TemplateSet, existingText string, opts Options) string {
	if sources == nil || sources.Len() == 0 {
		return existingText
	}

	lines := CollapseBlankLines(DeduplicateLines(sources))
	body := strings.Join(lines, "\n")

	if opts.Header {
		sourceURL := opts.SourceURL
		if sourceURL == "" {
			sourceURL = DefaultSourceURL
		}
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		body = GenerateHeader(sources.Names(), sourceURL, now()) + body
	}

	body = EnsureTrailingNewline(body)

	if opts.Strategy == StrategyAppend && existingText != "" {
		return MergeWithExisting(existingText, body, StrategyAppend)
	}
	return body
}
