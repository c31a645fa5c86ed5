// Package pipeline runs the change-detection cycle: fetch, extract,
// hash, diff, score, summarize, persist.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/extract"
	"github.com/opportunities-radar/radar/internal/fingerprint"
	"github.com/opportunities-radar/radar/internal/llm"
	"github.com/opportunities-radar/radar/internal/model"
	"github.com/opportunities-radar/radar/internal/score"
)

// Store is the persistence contract the pipeline depends on. The
// concrete Postgres implementation lives in internal/storage; tests
// use an in-memory fake.
type Store interface {
	EnabledSources(ctx context.Context) ([]model.Source, error)
	LatestSnapshot(ctx context.Context, sourceID string) (*model.Snapshot, error)
	InsertSnapshot(ctx context.Context, snapshot model.Snapshot) (model.Snapshot, error)
	// InsertDiffAndDigest persists both records together; a diff is
	// never visible without its digest.
	InsertDiffAndDigest(ctx context.Context, d model.Diff, digest model.Digest) (model.Diff, model.Digest, error)
	TouchSource(ctx context.Context, sourceID string, fetchedAt time.Time) error
}

// Summarizer produces the digest summary for a change. It must not
// fail; provider errors are recovered internally.
type Summarizer interface {
	Summarize(ctx context.Context, source model.Source, d diff.Result) llm.SummaryResult
}

// Outcome classifies a completed source-processing attempt.
type Outcome int

const (
	// OutcomeUnchanged means the content hash matched the previous
	// snapshot; only lastFetchedAt was updated.
	OutcomeUnchanged Outcome = iota

	// OutcomeBaseline means a first observation was stored; there is
	// nothing to diff against.
	OutcomeBaseline

	// OutcomeNoMeaningfulChange means the hash differed but the diff
	// distilled to nothing (whitespace-level edits). A snapshot was
	// stored, no digest.
	OutcomeNoMeaningfulChange

	// OutcomeDigest means a meaningful change produced a digest.
	OutcomeDigest
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeBaseline:
		return "baseline"
	case OutcomeNoMeaningfulChange:
		return "no-meaningful-change"
	case OutcomeDigest:
		return "digest"
	default:
		return "unknown"
	}
}

// Pipeline orchestrates per-source processing.
type Pipeline struct {
	store      Store
	fetcher    *Fetcher
	extractor  *extract.Extractor
	engine     *diff.Engine
	scorer     *score.Scorer
	summarizer Summarizer
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a pipeline over the given collaborators.
func New(store Store, fetcher *Fetcher, summarizer Summarizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:      store,
		fetcher:    fetcher,
		extractor:  extract.NewExtractor(),
		engine:     diff.NewEngine(),
		scorer:     score.NewScorer(),
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
	}
}

// RunReport tallies one fetch cycle.
type RunReport struct {
	Total     int
	Processed int
	Unchanged int
	Errors    int
}

// Run processes every enabled source once, sequentially, in
// enumeration order. A failing source is counted and logged; it never
// aborts the rest of the run.
func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	sources, err := p.store.EnabledSources(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("load sources: %w", err)
	}

	report := RunReport{Total: len(sources)}
	for _, source := range sources {
		outcome, err := p.ProcessSource(ctx, source)
		p.Tally(&report, source, outcome, err)
	}

	return report, nil
}

// Tally folds one source result into a run report.
func (p *Pipeline) Tally(report *RunReport, source model.Source, outcome Outcome, err error) {
	if err != nil {
		report.Errors++
		p.logger.Error("source processing failed", "source", source.Name, "error", err)
		return
	}
	if outcome == OutcomeUnchanged {
		report.Unchanged++
		return
	}
	report.Processed++
	p.logger.Info("source processed", "source", source.Name, "outcome", outcome.String())
}

// ProcessSource runs one fetch-diff-digest attempt for a source. The
// attempt either completes fully or leaves the source's persisted
// state untouched: nothing is written before the fetch and extraction
// succeed, and the diff is stored atomically with its digest.
func (p *Pipeline) ProcessSource(ctx context.Context, source model.Source) (Outcome, error) {
	raw, err := p.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", source.URL, err)
	}

	// Empty extracted text is valid content, not an error: it hashes
	// and diffs like any other observation.
	content := p.extractor.Extract(raw, source.Extractor)
	contentHash := fingerprint.Hash(content)

	prev, err := p.store.LatestSnapshot(ctx, source.ID)
	if err != nil {
		return 0, fmt.Errorf("load previous snapshot: %w", err)
	}

	now := p.now()

	if prev != nil && prev.ContentHash == contentHash {
		if err := p.store.TouchSource(ctx, source.ID, now); err != nil {
			return 0, fmt.Errorf("touch source: %w", err)
		}
		return OutcomeUnchanged, nil
	}

	snapshot, err := p.store.InsertSnapshot(ctx, model.Snapshot{
		SourceID:    source.ID,
		ContentHash: contentHash,
		Content:     content,
		FetchedAt:   now,
	})
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}

	outcome := OutcomeBaseline
	if prev != nil {
		outcome = OutcomeNoMeaningfulChange

		result := p.engine.Compute(prev.Content, content)
		if result.HasChanges {
			scored := p.scorer.Score(source, result, content)
			summary := p.summarizer.Summarize(ctx, source, result)

			// The summarizer's action wins when both produced one.
			action := summary.Action
			if action == "" {
				action = scored.Action
			}

			_, _, err := p.store.InsertDiffAndDigest(ctx,
				model.Diff{
					SnapshotID:     snapshot.ID,
					PrevSnapshotID: prev.ID,
					Patch:          result.Patch,
					CreatedAt:      now,
				},
				model.Digest{
					SourceID:  source.ID,
					Title:     summary.Title,
					Bullets:   summary.Bullets,
					Action:    action,
					Deadline:  scored.Deadline,
					Tags:      scored.Tags,
					Score:     scored.Score,
					CreatedAt: now,
				})
			if err != nil {
				return 0, fmt.Errorf("insert diff and digest: %w", err)
			}
			outcome = OutcomeDigest
		}
	}

	if err := p.store.TouchSource(ctx, source.ID, now); err != nil {
		return 0, fmt.Errorf("touch source: %w", err)
	}

	return outcome, nil
}
