package combine

import "strings"

// MergeStrategy selects how new content interacts with an existing file.
type MergeStrategy string

const (
	// StrategyReplace discards the existing file content.
	StrategyReplace MergeStrategy = "replace"
	// StrategyAppend keeps the existing file and appends only sections it
	// does not already contain.
	StrategyAppend MergeStrategy = "append"
)

// MergeWithExisting folds newText into existingText. Sections of newText
// whose name already appears between section markers in existingText are
// dropped wholesale; everything else is appended after the existing
// content. Lines inside existing sections are not inspected or rewritten,
// so user edits within them survive. Blank runs in the combined result are
// collapsed and the result carries exactly one trailing newline.
func MergeWithExisting(existingText, newText string, strategy MergeStrategy) string {
	if strategy == StrategyReplace {
		return newText
	}
	if strings.TrimSpace(existingText) == "" {
		return newText
	}

	existingLines := ParseLines(existingText)
	newLines := ParseLines(newText)

	existing := existingSectionNames(existingLines)

	kept := make([]string, 0, len(newLines))
	for i := 0; i < len(newLines); {
		line := newLines[i]
		if name, ok := strings.CutPrefix(line, sectionOpen); ok && existing[name] {
			// Drop through the matching footer. The blank separator after
			// it stays and is collapsed below.
			for i < len(newLines) && !strings.HasPrefix(newLines[i], sectionClose) {
				i++
			}
			if i < len(newLines) {
				i++
			}
			continue
		}
		kept = append(kept, line)
		i++
	}

	combined := append(existingLines, kept...)
	combined = CollapseBlankLines(combined)

	return EnsureTrailingNewline(strings.Join(combined, "\n"))
}

// existingSectionNames scans lines for generated section headers and
// returns the set of section names found. Scanning jumps from each header
// to its footer; lines in between are not inspected.
func existingSectionNames(lines []string) map[string]bool {
	names := make(map[string]bool)
	for i := 0; i < len(lines); i++ {
		name, ok := strings.CutPrefix(lines[i], sectionOpen)
		if !ok {
			continue
		}
		names[name] = true
		for i < len(lines) && !strings.HasPrefix(lines[i], sectionClose) {
			i++
		}
	}
	return names
}
