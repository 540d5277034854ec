package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hricks/onpage"
)

// Compile-time interface verification.
var _ onpage.JobService = (*JobService)(nil)

// JobService implements onpage.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob queues a new job.
func (s *JobService) CreateJob(ctx context.Context, job *onpage.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.Status = onpage.JobQueued
	job.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, status, source_urls, error, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, job.ID, job.Status, joinURLs(job.SourceURLs), job.Error,
		job.CreatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*onpage.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, status, source_urls, error, created_at, started_at, completed_at
		FROM jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row.Scan)
	if err == sql.ErrNoRows {
		return nil, onpage.Errorf(onpage.ENOTFOUND, "job not found")
	}
	return job, err
}

// FindJobs retrieves jobs matching the filter, newest first.
func (s *JobService) FindJobs(ctx context.Context, filter onpage.JobFilter) ([]*onpage.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, status, source_urls, error, created_at, started_at, completed_at FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	// rowid breaks ties between jobs created within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*onpage.Job
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// ClaimNextJob atomically moves the oldest queued job to processing and
// returns it. The single UPDATE both selects and transitions the job, so
// concurrent workers never claim the same one.
func (s *JobService) ClaimNextJob(ctx context.Context) (*onpage.Job, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		UPDATE jobs
		SET status = ?, started_at = ?
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = ?
			ORDER BY created_at ASC, rowid ASC
			LIMIT 1
		)
		RETURNING id
	`, onpage.JobProcessing, time.Now().UTC().Format(time.RFC3339),
		onpage.JobQueued).Scan(&id)

	if err == sql.ErrNoRows {
		return nil, onpage.Errorf(onpage.ENOTFOUND, "no queued jobs")
	}
	if err != nil {
		return nil, err
	}

	return s.FindJobByID(ctx, id)
}

// CompleteJob marks a processing job as completed.
func (s *JobService) CompleteJob(ctx context.Context, id string) error {
	return s.finishJob(ctx, id, onpage.JobCompleted, "")
}

// FailJob marks a job as failed with the given message.
func (s *JobService) FailJob(ctx context.Context, id string, message string) error {
	return s.finishJob(ctx, id, onpage.JobFailed, message)
}

func (s *JobService) finishJob(ctx context.Context, id string, status onpage.JobStatus, message string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, error = ?, completed_at = ?
		WHERE id = ?
	`, status, message, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return onpage.Errorf(onpage.ENOTFOUND, "job not found")
	}

	return nil
}

// scanJob reads one job row through the given scan function.
func scanJob(scan func(dest ...any) error) (*onpage.Job, error) {
	var job onpage.Job
	var urls, createdAt string
	var startedAt, completedAt sql.NullString

	if err := scan(&job.ID, &job.Status, &urls, &job.Error,
		&createdAt, &startedAt, &completedAt); err != nil {
		return nil, err
	}

	job.SourceURLs = splitURLs(urls)

	var err error
	job.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	if job.StartedAt, err = parseNullableRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if job.CompletedAt, err = parseNullableRFC3339(completedAt, "completed_at"); err != nil {
		return nil, err
	}

	return &job, nil
}

// joinURLs flattens a URL list into the newline-joined storage form.
func joinURLs(urls []string) string {
	return strings.Join(urls, "\n")
}

// splitURLs is the inverse of joinURLs, dropping empty lines.
func splitURLs(s string) []string {
	var urls []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}
