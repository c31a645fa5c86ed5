package model

import "time"

// Category classifies a monitored source. The base importance score of
// a digest depends on it.
type Category string

const (
	CategoryGrants     Category = "grants"
	CategoryProtocol   Category = "protocol"
	CategoryGovernance Category = "governance"
	CategoryEcosystem  Category = "ecosystem"
)

// Kind is the fetch mechanism for a source.
type Kind string

const (
	KindHTML Kind = "html"
	KindRSS  Kind = "rss"
	KindAPI  Kind = "api"
)

// Source is a configured external endpoint monitored for changes.
// Sources are created from the catalog, never by the pipeline; only
// Enabled and LastFetchedAt change after creation.
type Source struct {
	ID            string
	Name          string
	Kind          Kind
	URL           string
	Category      Category
	Extractor     string // named extraction strategy, empty for generic
	Enabled       bool
	LastFetchedAt *time.Time
	CreatedAt     time.Time
}
