package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/opportunities-radar/radar/internal/model"
)

type dbSource struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Kind          string         `db:"kind"`
	URL           string         `db:"url"`
	Category      string         `db:"category"`
	Extractor     sql.NullString `db:"extractor"`
	Enabled       bool           `db:"enabled"`
	LastFetchedAt sql.NullTime   `db:"last_fetched_at"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (s dbSource) toModel() model.Source {
	src := model.Source{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      model.Kind(s.Kind),
		URL:       s.URL,
		Category:  model.Category(s.Category),
		Extractor: s.Extractor.String,
		Enabled:   s.Enabled,
		CreatedAt: s.CreatedAt,
	}
	if s.LastFetchedAt.Valid {
		t := s.LastFetchedAt.Time
		src.LastFetchedAt = &t
	}
	return src
}

// ListSources returns every source, enabled or not.
func (s *Store) ListSources(ctx context.Context) ([]model.Source, error) {
	var rows []dbSource
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM sources ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select sources: %w", err)
	}
	return lo.Map(rows, func(row dbSource, _ int) model.Source { return row.toModel() }), nil
}

// EnabledSources returns the sources the pipeline should process, in
// stable enumeration order.
func (s *Store) EnabledSources(ctx context.Context) ([]model.Source, error) {
	var rows []dbSource
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM sources WHERE enabled ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select enabled sources: %w", err)
	}
	return lo.Map(rows, func(row dbSource, _ int) model.Source { return row.toModel() }), nil
}

// SetSourceEnabled flips a source's enabled flag.
func (s *Store) SetSourceEnabled(ctx context.Context, id string, enabled bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sources SET enabled = $2 WHERE id = $1`, id, enabled)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("source %s not found", id)
	}
	return nil
}

// TouchSource records a successful fetch time.
func (s *Store) TouchSource(ctx context.Context, id string, fetchedAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sources SET last_fetched_at = $2 WHERE id = $1`, id, fetchedAt); err != nil {
		return fmt.Errorf("touch source: %w", err)
	}
	return nil
}

// SeedSources inserts catalog entries that are not present yet,
// matching on URL. Existing rows are left untouched so operator edits
// survive reseeding.
func (s *Store) SeedSources(ctx context.Context, defs []model.SourceDefinition) error {
	for _, def := range defs {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO sources (id, name, kind, url, category, extractor, enabled, created_at)
			 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NOW())
			 ON CONFLICT (url) DO NOTHING`,
			uuid.NewString(), def.Name, string(def.Kind), def.URL,
			string(def.Category), def.Extractor, def.Enabled); err != nil {
			return fmt.Errorf("seed source %q: %w", def.Name, err)
		}
	}
	return nil
}
