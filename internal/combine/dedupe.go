package combine

import "strings"

// Section markers written around each template's lines. These are part of
// the on-disk format: MergeWithExisting matches them byte-for-byte on later
// runs to recognize previously generated sections.
const (
	sectionOpen  = "###> "
	sectionClose = "###< "
)

// SectionHeader returns the opening marker line for a template section.
func SectionHeader(name string) string {
	return sectionOpen + name + ".gitignore"
}

// SectionFooter returns the closing marker line for a template section.
func SectionFooter(name string) string {
	return sectionClose + name + ".gitignore"
}

// groupState tracks the comment-group scanner. The scanner starts inside
// the comment run and moves to seeking once the run ends.
type groupState int

const (
	groupCollecting groupState = iota // consuming consecutive comment lines
	groupSeeking                      // past the run, searching for the associated rule
)

// scanCommentGroup consumes the comment run starting at pos and locates the
// rule line it documents: the next non-blank, non-comment line, even when
// further blanks or comment runs sit in between. ruleIdx is -1 when only
// blanks and comments remain before end of input.
func scanCommentGroup(lines []string, pos int) (block []string, ruleIdx int) {
	state := groupCollecting
	for i := pos; i < len(lines); i++ {
		switch state {
		case groupCollecting:
			if classify(lines[i]) == classComment {
				block = append(block, lines[i])
				continue
			}
			state = groupSeeking
			fallthrough
		case groupSeeking:
			if classify(lines[i]) == classRule {
				return block, i
			}
		}
	}
	return block, -1
}

// DeduplicateLines flattens the set into a single sequence of lines, one
// marker-delimited section per template in insertion order, suppressing
// duplicates across all sections.
//
// Dedup keys are global to one call: a rule emitted under an earlier
// section is dropped from every later one. A comment run is keyed together
// with the rule it documents, so identical documented entries collapse as a
// unit while the same boilerplate comment above a different rule survives.
// A comment run with no rule before end of input is keyed by its own text
// and emitted or dropped whole. When a documented entry is suppressed the
// comment lines and the rule are dropped together; blanks between them are
// consumed either way. Bare blank lines pass through untouched and are only
// thinned later by CollapseBlankLines.
func DeduplicateLines(sources *TemplateSet) []string {
	if sources == nil {
		return nil
	}

	seen := make(map[string]bool)
	var result []string

	for _, name := range sources.Names() {
		content, _ := sources.Get(name)
		result = appendSection(result, name, content, seen)
	}

	return result
}

// appendSection writes one template's section onto dst, consulting and
// updating the shared seen set.
func appendSection(dst []string, name, content string, seen map[string]bool) []string {
	lines := ParseLines(content)
	dst = append(dst, SectionHeader(name))

	for i := 0; i < len(lines); {
		switch classify(lines[i]) {
		case classComment:
			block, ruleIdx := scanCommentGroup(lines, i)
			if ruleIdx >= 0 {
				key := strings.Join(block, "\n") + "\n" + NormalizeLine(lines[ruleIdx])
				if !seen[key] {
					seen[key] = true
					dst = append(dst, block...)
					dst = append(dst, lines[ruleIdx])
				}
				i = ruleIdx + 1
			} else {
				key := strings.Join(block, "\n")
				if !seen[key] {
					seen[key] = true
					dst = append(dst, block...)
				}
				i += len(block)
			}

		case classRule:
			key := NormalizeLine(lines[i])
			if !seen[key] {
				seen[key] = true
				dst = append(dst, lines[i])
			}
			i++

		default: // blank
			dst = append(dst, lines[i])
			i++
		}
	}

	dst = append(dst, SectionFooter(name), "")
	return dst
}
