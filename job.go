package onpage

import (
	"context"
	"time"
)

// JobStatus represents the lifecycle state of an extraction job.
type JobStatus string

// Job lifecycle states. Jobs move queued → processing → completed or failed.
const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job represents a batch extraction request: a set of page URLs to fetch and
// extract. Jobs are processed independently; a failure on one page never
// affects another.
type Job struct {
	ID          string     `json:"id"`
	Status      JobStatus  `json:"status"`
	SourceURLs  []string   `json:"sourceUrls"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if len(j.SourceURLs) == 0 {
		return Errorf(EINVALID, "job requires at least one source URL")
	}
	return nil
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID     *string    `json:"id"`
	Status *JobStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobService represents a service for managing extraction jobs.
type JobService interface {
	// CreateJob queues a new job.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter, newest first.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// ClaimNextJob atomically moves the oldest queued job to processing and
	// returns it. Returns ENOTFOUND when the queue is empty.
	ClaimNextJob(ctx context.Context) (*Job, error)

	// CompleteJob marks a processing job as completed.
	CompleteJob(ctx context.Context, id string) error

	// FailJob marks a job as failed with the given message.
	FailJob(ctx context.Context, id string, message string) error
}
