package mock

import (
	"context"

	"github.com/hricks/onpage"
)

var _ onpage.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of onpage.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn       func(ctx context.Context, ext *onpage.Extraction) error
	FindExtractionByIDFn     func(ctx context.Context, id string) (*onpage.Extraction, error)
	FindExtractionsFn        func(ctx context.Context, filter onpage.ExtractionFilter) ([]*onpage.Extraction, error)
	DeleteExtractionsByJobFn func(ctx context.Context, jobID string) error
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, ext *onpage.Extraction) error {
	return s.CreateExtractionFn(ctx, ext)
}

func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*onpage.Extraction, error) {
	return s.FindExtractionByIDFn(ctx, id)
}

func (s *ExtractionService) FindExtractions(ctx context.Context, filter onpage.ExtractionFilter) ([]*onpage.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}

func (s *ExtractionService) DeleteExtractionsByJob(ctx context.Context, jobID string) error {
	return s.DeleteExtractionsByJobFn(ctx, jobID)
}
