package worker

import (
	"context"

	"github.com/opportunities-radar/radar/internal/model"
	"github.com/opportunities-radar/radar/internal/pipeline"
)

// SourceProcessor processes a single monitored source.
type SourceProcessor interface {
	ProcessSource(ctx context.Context, source model.Source) (pipeline.Outcome, error)
}

// SourceJob is one source-processing unit of work.
type SourceJob struct {
	Source    model.Source
	Processor SourceProcessor
}

// Execute runs the processing attempt.
func (j *SourceJob) Execute(ctx context.Context) Result {
	outcome, err := j.Processor.ProcessSource(ctx, j.Source)
	return &SourceResult{Source: j.Source, Outcome: outcome, Err: err}
}

// SourceResult is the outcome of one source job.
type SourceResult struct {
	Source  model.Source
	Outcome pipeline.Outcome
	Err     error
}

// GetError returns the processing error, if any.
func (r *SourceResult) GetError() error {
	return r.Err
}

// BatchProcessor processes sources on a bounded worker pool. Sources
// are mutually independent, so parallelism is safe as long as each
// per-source attempt stays atomic, which the processor guarantees.
type BatchProcessor struct {
	processor   SourceProcessor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor SourceProcessor, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessSources runs every source through the pool and returns all
// results. Failures stay isolated to their own result; cancelling ctx
// abandons the remaining sources. Submission and result collection run
// concurrently so the source count is never bounded by the pool's
// channel buffers.
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []model.Source) []*SourceResult {
	if len(sources) == 0 {
		return nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for _, source := range sources {
			pool.Submit(&SourceJob{Source: source, Processor: b.processor})
		}
		pool.Close()
	}()

	results := pool.Wait()
	sourceResults := make([]*SourceResult, 0, len(results))
	for _, result := range results {
		sourceResults = append(sourceResults, result.(*SourceResult))
	}
	return sourceResults
}
