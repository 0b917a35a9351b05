package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/synaptiq/cereb/pkg/logger"
)

// FailurePolicy controls what a run does when processing a record fails.
type FailurePolicy int

const (
	// FailFast aborts the run on the first record failure. Results
	// collected up to that point are still written.
	FailFast FailurePolicy = iota

	// ContinueOnError records the failure as an errored result and moves
	// on to the next record.
	ContinueOnError
)

// ProcessFunc turns one benchmark record into a prediction.
type ProcessFunc func(ctx context.Context, rec Record) (Result, error)

// Options configures a benchmark run.
type Options struct {
	// Limit caps how many records are processed. Negative means the whole
	// dataset; zero means none.
	Limit int

	// OnFailure selects the failure policy. Defaults to FailFast.
	OnFailure FailurePolicy

	// Logger receives run progress. Defaults to a no-op logger.
	Logger *slog.Logger
}

// Summary reports what a run did.
type Summary struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Attempted is how many records were handed to the process func.
	Attempted int

	// Failed is how many of those records errored.
	Failed int

	// Written is how many results landed in the output file.
	Written int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// String returns a human-readable summary of the run.
func (s *Summary) String() string {
	return fmt.Sprintf(
		"Run complete: %d attempted, %d failed\n"+
			"Write results num: %d",
		s.Attempted, s.Failed, s.Written,
	)
}

// Harness runs a ProcessFunc over a dataset in order and writes all
// predictions to the output file in one invocation at the end, never
// incrementally.
type Harness struct {
	process ProcessFunc
	opts    Options
	logger  *slog.Logger
}

// NewHarness creates a harness around the given process func.
func NewHarness(process ProcessFunc, opts Options) (*Harness, error) {
	if process == nil {
		return nil, errors.New("harness requires a process func")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Harness{
		process: process,
		opts:    opts,
		logger:  log,
	}, nil
}

// Run processes up to Limit records in dataset order and then writes every
// collected result to outputFile. The write happens exactly once per run,
// even when the run aborts early, so a failed run still leaves a coherent
// partial output behind. A Limit of zero writes an empty file without
// invoking the process func.
func (h *Harness) Run(ctx context.Context, records []Record, outputFile string) (*Summary, error) {
	runID := uuid.New().String()
	log := h.logger.With("run_id", runID)

	limit := h.opts.Limit
	if limit < 0 || limit > len(records) {
		limit = len(records)
	}

	start := time.Now()
	log.Info("starting benchmark run",
		"records", len(records),
		"limit", limit,
		"output", outputFile,
	)

	results := make([]Result, 0, limit)
	failed := 0
	attempted := 0

	var runErr error
	for i := 0; i < limit; i++ {
		rec := records[i]

		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("run cancelled after %d records: %w", attempted, err)
			break
		}

		attempted++
		res, err := h.process(ctx, rec)
		if err != nil {
			failed++
			log.Error("record failed", "task_id", rec.TaskID, "error", err)

			if h.opts.OnFailure == FailFast {
				runErr = fmt.Errorf("processing %s: %w", rec.TaskID, err)
				break
			}

			results = append(results, Result{TaskID: rec.TaskID, Error: err.Error()})
			continue
		}

		results = append(results, res)
		log.Debug("record processed", "task_id", rec.TaskID)
	}

	if err := WriteResults(results, outputFile); err != nil {
		return nil, fmt.Errorf("writing results: %w", err)
	}
	log.Info("wrote results", "num", len(results))

	summary := &Summary{
		RunID:     runID,
		Attempted: attempted,
		Failed:    failed,
		Written:   len(results),
		Duration:  time.Since(start),
	}

	log.Info("benchmark run finished",
		"attempted", summary.Attempted,
		"failed", summary.Failed,
		"written", summary.Written,
		"duration", summary.Duration,
	)

	return summary, runErr
}
