package diff

import (
	"regexp"
	"strings"
)

const (
	// Fragments below this length are incidental formatting noise.
	minFragmentLen = 10
	// Fragments above this length start a section of their own.
	sectionBreakLen = 200
)

// Heading-like prefixes: markdown headings, "Label:" lines, enumerated
// and bulleted list markers.
var sectionStartRe = regexp.MustCompile(`^(#|[A-Z][^.]*:|\d+\.|[-•*])`)

// GroupSections merges ordered diff fragments into coherent sections
// suitable for scoring and summarization. The walk is a greedy single
// pass: a fragment either starts a new section or is space-joined onto
// the current one, and assignments are never revisited.
func GroupSections(fragments []string) []string {
	if len(fragments) == 0 {
		return nil
	}

	var sections []string
	var current string

	for _, fragment := range fragments {
		if len(fragment) < minFragmentLen {
			continue
		}

		startsSection := sectionStartRe.MatchString(fragment) || len(fragment) > sectionBreakLen

		switch {
		case startsSection && current != "":
			sections = append(sections, strings.TrimSpace(current))
			current = fragment
		case current == "":
			current = fragment
		default:
			current += " " + fragment
		}
	}

	if strings.TrimSpace(current) != "" {
		sections = append(sections, strings.TrimSpace(current))
	}

	return sections
}
