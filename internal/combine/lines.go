// Package combine merges .gitignore templates into a single deduplicated,
// sectioned body and can fold that body into an existing file without
// touching content outside previously generated sections.
package combine

import (
	"regexp"
	"strings"
)

// wsRun matches a run of horizontal whitespace inside a rule line.
var wsRun = regexp.MustCompile(`[ \t]+`)

// lineClass is the process-time classification of a single line.
type lineClass int

const (
	classBlank   lineClass = iota // empty or whitespace-only
	classComment                  // starts with # after trimming
	classRule                     // anything else
)

// classify reports whether a line is blank, a comment, or a rule.
func classify(line string) lineClass {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return classBlank
	case strings.HasPrefix(trimmed, "#"):
		return classComment
	default:
		return classRule
	}
}

// NormalizeLineEndings converts CRLF and bare CR line endings to LF.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// ParseLines splits text into lines with universal newline handling.
// The result always has at least one element; a trailing newline in the
// input yields a trailing empty line, mirroring a plain split on "\n".
func ParseLines(text string) []string {
	return strings.Split(NormalizeLineEndings(text), "\n")
}

// NormalizeLine canonicalizes a line for deduplication. Trailing spaces and
// tabs are stripped; for rule lines every run of horizontal whitespace
// collapses to a single space so stylistic spacing differences between
// independently authored templates compare equal. Comments and blank lines
// are returned with only the trailing strip applied. The normalized form is
// used solely as a dedup key; callers emit the original line.
func NormalizeLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if classify(line) == classRule {
		return wsRun.ReplaceAllString(line, " ")
	}
	return line
}

// CollapseBlankLines reduces every run of consecutive blank lines to a
// single blank line. A lone blank line is preserved, never dropped.
func CollapseBlankLines(lines []string) []string {
	result := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		if classify(line) == classBlank {
			blanks++
			if blanks <= 1 {
				result = append(result, line)
			}
			continue
		}
		blanks = 0
		result = append(result, line)
	}

	return result
}

// EnsureTrailingNewline strips all trailing newlines and appends exactly
// one. Empty input stays empty.
func EnsureTrailingNewline(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}
