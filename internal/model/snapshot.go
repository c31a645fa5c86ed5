package model

import "time"

// Snapshot is one fetched-and-extracted observation of a source.
// Snapshots are append-only; the pipeline reads the most recent one
// per source and writes a new one when content changes.
type Snapshot struct {
	ID          string
	SourceID    string
	ContentHash string // sha256 hex of Content
	Content     string // normalized plain text
	FetchedAt   time.Time
}

// Diff is the persisted record of one snapshot transition. Patch is a
// reversible encoding: applying it to the previous snapshot's content
// reproduces the new snapshot's content.
type Diff struct {
	ID             string
	SnapshotID     string
	PrevSnapshotID string
	Patch          string
	CreatedAt      time.Time
}

// Digest is the scored, summarized description of a meaningful change.
// Exactly one digest exists per meaningfully-changed transition and it
// is never mutated after creation.
type Digest struct {
	ID        string
	DiffID    string
	SourceID  string
	Title     string
	Bullets   []string
	Action    string // empty when no recommended action
	Deadline  *time.Time
	Tags      []string
	Score     int // 0-100
	CreatedAt time.Time
}
