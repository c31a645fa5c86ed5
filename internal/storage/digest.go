package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opportunities-radar/radar/internal/model"
)

type dbDigest struct {
	ID        string         `db:"id"`
	DiffID    string         `db:"diff_id"`
	SourceID  string         `db:"source_id"`
	Title     string         `db:"title"`
	Bullets   []byte         `db:"bullets"`
	Action    sql.NullString `db:"action"`
	Deadline  sql.NullTime   `db:"deadline"`
	Tags      []byte         `db:"tags"`
	Score     int            `db:"score"`
	CreatedAt time.Time      `db:"created_at"`
}

func (d dbDigest) toModel() (model.Digest, error) {
	digest := model.Digest{
		ID:        d.ID,
		DiffID:    d.DiffID,
		SourceID:  d.SourceID,
		Title:     d.Title,
		Action:    d.Action.String,
		Score:     d.Score,
		CreatedAt: d.CreatedAt,
	}
	if d.Deadline.Valid {
		t := d.Deadline.Time
		digest.Deadline = &t
	}
	if err := json.Unmarshal(d.Bullets, &digest.Bullets); err != nil {
		return model.Digest{}, fmt.Errorf("decode bullets: %w", err)
	}
	if err := json.Unmarshal(d.Tags, &digest.Tags); err != nil {
		return model.Digest{}, fmt.Errorf("decode tags: %w", err)
	}
	return digest, nil
}

// InsertDiffAndDigest stores a diff record and its digest in one
// transaction, so a diff is never visible without the digest it
// produced.
func (s *Store) InsertDiffAndDigest(ctx context.Context, d model.Diff, digest model.Digest) (model.Diff, model.Digest, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	d.ID = uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO diffs (id, snapshot_id, prev_snapshot_id, patch, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.SnapshotID, d.PrevSnapshotID, d.Patch, d.CreatedAt); err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("insert diff: %w", err)
	}

	bullets, err := json.Marshal(digest.Bullets)
	if err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("encode bullets: %w", err)
	}
	tags, err := json.Marshal(digest.Tags)
	if err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("encode tags: %w", err)
	}

	digest.ID = uuid.NewString()
	digest.DiffID = d.ID
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO digests (id, diff_id, source_id, title, bullets, action, deadline, tags, score, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)`,
		digest.ID, digest.DiffID, digest.SourceID, digest.Title, bullets,
		digest.Action, digest.Deadline, tags, digest.Score, digest.CreatedAt); err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("insert digest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Diff{}, model.Digest{}, fmt.Errorf("commit: %w", err)
	}

	return d, digest, nil
}

// ListDigests returns digests the way downstream readers consume them:
// highest score first, then most recent.
func (s *Store) ListDigests(ctx context.Context, limit int) ([]model.Digest, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []dbDigest
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM digests ORDER BY score DESC, created_at DESC LIMIT $1`, limit); err != nil {
		return nil, fmt.Errorf("select digests: %w", err)
	}

	digests := make([]model.Digest, 0, len(rows))
	for _, row := range rows {
		digest, err := row.toModel()
		if err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}
	return digests, nil
}

// DigestsForSource returns a source's digests, newest first.
func (s *Store) DigestsForSource(ctx context.Context, sourceID string, limit int) ([]model.Digest, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []dbDigest
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM digests WHERE source_id = $1 ORDER BY created_at DESC LIMIT $2`, sourceID, limit); err != nil {
		return nil, fmt.Errorf("select digests for source: %w", err)
	}

	digests := make([]model.Digest, 0, len(rows))
	for _, row := range rows {
		digest, err := row.toModel()
		if err != nil {
			return nil, err
		}
		digests = append(digests, digest)
	}
	return digests, nil
}
