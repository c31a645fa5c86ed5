// Package strategies holds named, source-specific extraction rules.
// Each rule selects the relevant content region of one kind of site;
// rules that do not apply to a document report ok=false so the caller
// can fall back to generic extraction.
package strategies

import "golang.org/x/net/html"

// Strategy extracts text from a parsed document, or reports that it
// does not apply.
type Strategy func(doc *html.Node) (text string, ok bool)

// Registry maps strategy identifiers to extraction rules.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates a registry with the built-in site strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register("paragraph", paragraphBlog)
	r.Register("charmverse", charmversePage)
	r.Register("base-blog", baseBlog)
	r.Register("farcaster-blog", farcasterBlog)
	r.Register("notion", notionPage)
	r.Register("snapshot", snapshotSpace)
	r.Register("discourse", discourseForum)
	r.Register("purple", purpleDAO)
	return r
}

// Register adds or replaces a strategy.
func (r *Registry) Register(id string, s Strategy) {
	r.strategies[id] = s
}

// Apply runs the named strategy against doc. Unknown identifiers and
// not-applicable rules both report ok=false.
func (r *Registry) Apply(id string, doc *html.Node) (string, bool) {
	s, exists := r.strategies[id]
	if !exists {
		return "", false
	}
	return s(doc)
}
