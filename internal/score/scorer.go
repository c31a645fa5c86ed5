// Package score assigns importance scores, tags, actions and deadlines
// to content changes. The scoring function is a deterministic additive
// point system over the grouped addition sections: identical inputs
// always produce identical output.
package score

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

// Result carries the importance assessment for one content change.
type Result struct {
	Score    int // 0-100
	Tags     []string
	Action   string // empty when no action keyword matched
	Deadline *time.Time
}

// Scorer evaluates content changes.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

const (
	highPriorityBonus   = 15
	mediumPriorityBonus = 8
	actionBonus         = 10
	deadlineBonus       = 15
)

var categoryBase = map[model.Category]int{
	model.CategoryGrants:     20,
	model.CategoryGovernance: 15,
	model.CategoryProtocol:   10,
	model.CategoryEcosystem:  5,
}

// Score evaluates the added sections of a change. newContent is the
// full new snapshot text in its original casing; the deadline scan
// runs over it rather than the added sections, because deadlines are
// often static page furniture outside the changed region.
func (s *Scorer) Score(source model.Source, d diff.Result, newContent string) Result {
	points := 0
	tags := make(map[string]struct{})
	var action string
	var deadline *time.Time

	sections := diff.GroupSections(d.Additions)
	text := strings.ToLower(strings.Join(sections, " "))

	points += categoryBase[source.Category]
	switch source.Category {
	case model.CategoryGrants:
		tags["grant"] = struct{}{}
	case model.CategoryGovernance:
		tags["governance"] = struct{}{}
	}

	changeLength := 0
	for _, section := range sections {
		changeLength += len(section)
	}
	switch {
	case changeLength > 1000:
		points += 15
	case changeLength > 500:
		points += 10
	case changeLength > 100:
		points += 5
	}

	// Priority bonuses apply at most once each.
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(text, keyword) {
			points += highPriorityBonus
			break
		}
	}
	for _, keyword := range mediumPriorityKeywords {
		if strings.Contains(text, keyword) {
			points += mediumPriorityBonus
			break
		}
	}

	for _, keyword := range actionKeywords {
		if strings.Contains(text, keyword) {
			action = capitalize(keyword)
			points += actionBonus
			break
		}
	}

	for _, tp := range tagPatterns {
		if tp.pattern.MatchString(text) {
			tags[tp.tag] = struct{}{}
		}
	}

	if when := s.findDeadline(newContent); when != nil {
		deadline = when
		points += deadlineBonus
		tags["deadline"] = struct{}{}
	}

	if points > 100 {
		points = 100
	}
	if points < 0 {
		points = 0
	}

	return Result{
		Score:    points,
		Tags:     sortedTags(tags),
		Action:   action,
		Deadline: deadline,
	}
}

// findDeadline returns the first pattern match that parses to a valid
// calendar date strictly after now. A pattern whose match fails to
// parse, or parses to a past date, does not stop the scan.
func (s *Scorer) findDeadline(content string) *time.Time {
	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		when, ok := parseDate(m[1])
		if ok && when.After(s.now()) {
			return &when
		}
	}
	return nil
}

var ordinalSuffixRe = regexp.MustCompile(`(\d)(?:st|nd|rd|th)`)

var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1-2-06",
}

func parseDate(raw string) (time.Time, bool) {
	raw = ordinalSuffixRe.ReplaceAllString(strings.TrimSpace(raw), "$1")
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, raw); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func sortedTags(tags map[string]struct{}) []string {
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
