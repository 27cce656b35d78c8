package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffResult holds a comparison between two file contents, used to
// preview what an overwrite or append would change.
type DiffResult struct {
	Name1       string  `json:"name1"`
	Name2       string  `json:"name2"`
	LineCount1  int     `json:"line_count_1"`
	LineCount2  int     `json:"line_count_2"`
	Similarity  float64 `json:"similarity"`
	UnifiedDiff string  `json:"unified_diff,omitempty"`
}

// ComputeDiff compares two contents and returns line counts, a
// similarity ratio, and a unified-style diff.
func ComputeDiff(name1, content1, name2, content2 string) DiffResult {
	result := DiffResult{
		Name1:      name1,
		Name2:      name2,
		LineCount1: countLines(content1),
		LineCount2: countLines(content2),
		Similarity: similarity(content1, content2),
	}
	if content1 != content2 {
		result.UnifiedDiff = unifiedDiff(name1, content1, name2, content2)
	}
	return result
}

// FormatDiff colorizes a unified diff for terminal display. With color
// off the diff is returned unchanged.
func FormatDiff(diff string, color bool) string {
	if !color || diff == "" {
		return diff
	}
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			lines[i] = TitleStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = SuccessStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = ErrorStyle.Render(line)
		default:
			lines[i] = DimStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// countLines counts logical lines: a trailing newline does not start a
// new line, and empty content has zero lines.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

// similarity is the fraction of the longer input covered by unchanged
// text. Two empty inputs compare as 0.
func similarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMain(a, b, false)

	equal := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			equal += len(d.Text)
		}
	}
	return float64(equal) / float64(maxLen)
}

// unifiedDiff produces a line-level diff. The char reduction keeps the
// diff on line boundaries instead of mid-line splits.
func unifiedDiff(name1, content1, name2, content2 string) string {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lineArray := dmp.DiffLinesToChars(content1, content2)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name1, name2)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			prefix = " "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text != "\n" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
