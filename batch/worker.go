package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hricks/onpage"
)

// DefaultPollInterval is how long the worker sleeps when the queue is empty.
const DefaultPollInterval = 2 * time.Second

// Worker polls the job queue and runs claimed jobs until its context is
// canceled. Multiple workers can share one queue; the claim is atomic.
type Worker struct {
	Jobs     onpage.JobService
	Runner   *Runner
	Interval time.Duration
	Logger   *slog.Logger
}

// Run claims and processes jobs until ctx is canceled. It returns nil on
// cancellation; any other error is a queue failure.
func (w *Worker) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		processed, err := w.RunOnce(ctx)
		if err != nil {
			return err
		}
		if processed {
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

// RunOnce claims at most one job and processes it. It reports whether a job
// was processed; an empty queue is not an error.
func (w *Worker) RunOnce(ctx context.Context) (bool, error) {
	job, err := w.Jobs.ClaimNextJob(ctx)
	if onpage.ErrorCode(err) == onpage.ENOTFOUND {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	w.log().Info("job claimed", "job_id", job.ID, "urls", len(job.SourceURLs))

	result, runErr := w.Runner.Run(ctx, job, nil)
	if runErr != nil {
		w.log().Error("job failed", "job_id", job.ID, "err", runErr)
		if failErr := w.Jobs.FailJob(ctx, job.ID, runErr.Error()); failErr != nil {
			return true, failErr
		}
		return true, nil
	}

	if result.Extracted == 0 && result.Failed > 0 {
		message := fmt.Sprintf("all %d pages failed", result.Failed)
		w.log().Error("job failed", "job_id", job.ID, "err", message)
		if failErr := w.Jobs.FailJob(ctx, job.ID, message); failErr != nil {
			return true, failErr
		}
		return true, nil
	}

	if err := w.Jobs.CompleteJob(ctx, job.ID); err != nil {
		return true, err
	}

	w.log().Info("job completed",
		"job_id", job.ID,
		"extracted", result.Extracted,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return true, nil
}

func (w *Worker) log() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
