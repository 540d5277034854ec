package mock

import (
	"context"

	"github.com/hricks/onpage"
)

var _ onpage.JobService = (*JobService)(nil)

// JobService is a mock implementation of onpage.JobService.
type JobService struct {
	CreateJobFn    func(ctx context.Context, job *onpage.Job) error
	FindJobByIDFn  func(ctx context.Context, id string) (*onpage.Job, error)
	FindJobsFn     func(ctx context.Context, filter onpage.JobFilter) ([]*onpage.Job, error)
	ClaimNextJobFn func(ctx context.Context) (*onpage.Job, error)
	CompleteJobFn  func(ctx context.Context, id string) error
	FailJobFn      func(ctx context.Context, id string, message string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *onpage.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*onpage.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter onpage.JobFilter) ([]*onpage.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) ClaimNextJob(ctx context.Context) (*onpage.Job, error) {
	return s.ClaimNextJobFn(ctx)
}

func (s *JobService) CompleteJob(ctx context.Context, id string) error {
	return s.CompleteJobFn(ctx, id)
}

func (s *JobService) FailJob(ctx context.Context, id string, message string) error {
	return s.FailJobFn(ctx, id, message)
}
