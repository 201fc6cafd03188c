package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/gomdsite/internal/logging"
	"github.com/yaklabco/gomdsite/pkg/build"
)

// Runner builds pages concurrently through a build.Pipeline.
type Runner struct {
	Pipeline *build.Pipeline
}

// New creates a Runner using pipeline.
func New(pipeline *build.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the sources described by opts and builds them with a worker
// pool. A failing source is recorded in its FileOutcome and does not stop the
// others. Outcomes are returned in discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	sources, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(sources)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(sources)

	if len(sources) == 0 {
		return result, nil
	}

	jobs := opts.effectiveJobs(len(sources))
	logging.FromContext(ctx).Debug("building pages",
		logging.FieldFilesDiscovered, len(sources),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan build.Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and replay in order.
	outcomes := make(map[string]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Source.Path] = outcome
	}

	for _, src := range sources {
		if outcome, ok := outcomes[src.Path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("build cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan build.Source, outCh chan<- FileOutcome) {
	for src := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Source: src}

		fileCtx := logging.WithFields(ctx, logging.FieldCategory, src.Category)
		res, err := r.Pipeline.ProcessFile(fileCtx, src)
		if err != nil {
			logging.FromContext(fileCtx).Warn("page failed",
				logging.FieldPath, src.Path,
				logging.FieldError, err,
			)
			outcome.Error = err
		} else {
			outcome.Result = res
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
