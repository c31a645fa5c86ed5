package llm

import (
	"regexp"
	"strings"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

const (
	titleLimit  = 80
	bulletLimit = 150
	maxBullets  = 4
)

var firstSentenceRe = regexp.MustCompile(`^[^.!?]+[.!?]`)

// Fallback actions in priority order; first substring match wins.
var fallbackActions = []string{"apply", "vote", "register", "submit"}

// FallbackSummary builds a deterministic rule-based summary from the
// grouped addition sections. It is the recovery path whenever no
// generative provider is configured or the provider call fails.
func FallbackSummary(source model.Source, d diff.Result) SummaryResult {
	sections := diff.GroupSections(d.Additions)

	title := source.Name + " Update"
	if len(sections) > 0 {
		title = sentenceOrTruncate(sections[0], titleLimit)
	}

	var bullets []string
	for _, section := range sections {
		if len(bullets) == maxBullets {
			break
		}
		bullets = append(bullets, sentenceOrTruncate(section, bulletLimit))
	}

	var action string
	allText := strings.ToLower(strings.Join(sections, " "))
	for _, keyword := range fallbackActions {
		if strings.Contains(allText, keyword) {
			action = strings.ToUpper(keyword[:1]) + keyword[1:]
			break
		}
	}

	return SummaryResult{Title: title, Bullets: bullets, Action: action}
}

// sentenceOrTruncate reduces text to its first sentence when that fits
// within limit, otherwise truncates to limit-3 characters plus an
// ellipsis marker.
func sentenceOrTruncate(text string, limit int) string {
	if m := firstSentenceRe.FindString(text); m != "" && len([]rune(m)) <= limit {
		return m
	}

	runes := []rune(text)
	cut := limit - 3
	if len(runes) < cut {
		cut = len(runes)
	}
	return string(runes[:cut]) + "..."
}
