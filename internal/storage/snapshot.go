package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opportunities-radar/radar/internal/model"
)

type dbSnapshot struct {
	ID          string    `db:"id"`
	SourceID    string    `db:"source_id"`
	ContentHash string    `db:"content_hash"`
	Content     string    `db:"content"`
	FetchedAt   time.Time `db:"fetched_at"`
}

func (s dbSnapshot) toModel() model.Snapshot {
	return model.Snapshot{
		ID:          s.ID,
		SourceID:    s.SourceID,
		ContentHash: s.ContentHash,
		Content:     s.Content,
		FetchedAt:   s.FetchedAt,
	}
}

// LatestSnapshot returns the most recent snapshot for a source, or nil
// when the source has never been observed.
func (s *Store) LatestSnapshot(ctx context.Context, sourceID string) (*model.Snapshot, error) {
	var row dbSnapshot
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM snapshots WHERE source_id = $1 ORDER BY fetched_at DESC LIMIT 1`, sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select latest snapshot: %w", err)
	}

	snapshot := row.toModel()
	return &snapshot, nil
}

// InsertSnapshot appends a new observation.
func (s *Store) InsertSnapshot(ctx context.Context, snapshot model.Snapshot) (model.Snapshot, error) {
	snapshot.ID = uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, source_id, content_hash, content, fetched_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		snapshot.ID, snapshot.SourceID, snapshot.ContentHash, snapshot.Content, snapshot.FetchedAt); err != nil {
		return model.Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snapshot, nil
}
