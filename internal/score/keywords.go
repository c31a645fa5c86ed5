package score

import "regexp"

// One of these adds the high-priority bonus once, regardless of how
// many match.
var highPriorityKeywords = []string{
	"deadline",
	"apply now",
	"closes",
	"last day",
	"urgent",
	"limited",
	"ending soon",
	"final",
	"announcement",
	"breaking",
	"major update",
	"new round",
	"funding",
	"grant",
	"application",
}

// One of these adds the medium-priority bonus once.
var mediumPriorityKeywords = []string{
	"update",
	"release",
	"launch",
	"upgrade",
	"proposal",
	"vote",
	"governance",
	"roadmap",
	"milestone",
	"partnership",
	"integration",
}

// The first matching action keyword becomes the recommended action.
var actionKeywords = []string{
	"apply",
	"vote",
	"participate",
	"register",
	"sign up",
	"submit",
	"join",
	"claim",
}

type tagPattern struct {
	pattern *regexp.Regexp
	tag     string
}

// Tag extraction is not one-shot: every matching pattern adds its tag.
// Patterns run against lower-cased text.
var tagPatterns = []tagPattern{
	{regexp.MustCompile(`\bgrant\b`), "grant"},
	{regexp.MustCompile(`\bfunding\b`), "funding"},
	{regexp.MustCompile(`\bgovernance\b`), "governance"},
	{regexp.MustCompile(`\bvote\b`), "vote"},
	{regexp.MustCompile(`\bproposal\b`), "proposal"},
	{regexp.MustCompile(`\bhackathon\b`), "hackathon"},
	{regexp.MustCompile(`\bbuilder\b`), "builder"},
	{regexp.MustCompile(`\bdeveloper\b`), "developer"},
	{regexp.MustCompile(`\binfrastructure\b`), "infrastructure"},
	{regexp.MustCompile(`\bdefi\b`), "defi"},
	{regexp.MustCompile(`\bnft\b`), "nft"},
	{regexp.MustCompile(`\bsecurity\b`), "security"},
	{regexp.MustCompile(`\bupgrade\b`), "upgrade"},
	{regexp.MustCompile(`\brelease\b`), "release"},
}

// Date-shaped patterns for deadline extraction, tried in order:
// explicit deadline phrasing, slash-delimited numeric dates,
// spelled-month dates.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:deadline|closes?|ends?|due|by|before)\s*:?\s*(\w+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	regexp.MustCompile(`(?i)(\w+\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`),
}
