package resume

import (
	"context"
	"time"

	"github.com/hirelens/hirelens/pkg/kernel"
)

type Repository interface {
	// Create stores a parse result.
	Create(ctx context.Context, r *ParsedResume) error

	// GetByID retrieves a stored parse by ID.
	GetByID(ctx context.Context, id kernel.ResumeID) (*ParsedResume, error)

	// GetByHash retrieves a stored parse by content hash, for dedup.
	GetByHash(ctx context.Context, hash string) (*ParsedResume, error)

	// SetCandidateID links the candidate projection created from a parse.
	SetCandidateID(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error

	// List retrieves stored parses ordered most-recent-first.
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ParsedResume], error)

	// Delete removes a stored parse.
	Delete(ctx context.Context, id kernel.ResumeID) error
}

type JobRepository interface {
	Create(ctx context.Context, job *ProcessingJob) error
	Update(ctx context.Context, job *ProcessingJob) error
	GetByID(ctx context.Context, jobID kernel.JobID) (*ProcessingJob, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ProcessingJob], error)

	// Status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.JobID, resumeID kernel.ResumeID) error
	MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.JobID, step ProcessingStep, percentage int) error
}

// JobQueue is the transport between the API and the worker pool. Delayed
// entries back the retry mechanism.
type JobQueue interface {
	// Enqueue adds a job to the ready queue.
	Enqueue(ctx context.Context, jobID kernel.JobID, payload any) error

	// Dequeue blocks up to timeout for the next ready job; (nil, nil) on
	// timeout.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job to become ready after delay.
	EnqueueDelayed(ctx context.Context, jobID kernel.JobID, payload any, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed jobs to the ready queue.
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Size returns the number of ready jobs.
	Size(ctx context.Context) (int64, error)

	// DelayedSize returns the number of delayed jobs.
	DelayedSize(ctx context.Context) (int64, error)
}
