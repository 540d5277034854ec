package onpage

import (
	"context"
	"time"
)

// Extraction represents one extracted page result belonging to a job.
type Extraction struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Document    *Document `json:"document"`
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.JobID == "" {
		return Errorf(EINVALID, "extraction job ID required")
	}
	if e.SourceURL == "" {
		return Errorf(EINVALID, "extraction source URL required")
	}
	if e.Document == nil {
		return Errorf(EINVALID, "extraction document required")
	}
	return nil
}

// ExtractionWriter writes extraction results to storage.
type ExtractionWriter interface {
	WriteExtraction(ctx context.Context, ext *Extraction) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	ID        *string `json:"id"`
	JobID     *string `json:"jobId"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ExtractionService represents a service for managing stored extractions.
type ExtractionService interface {
	// CreateExtraction creates a new extraction record.
	CreateExtraction(ctx context.Context, ext *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter,
	// ordered by position.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtractionsByJob removes all extractions for a job.
	DeleteExtractionsByJob(ctx context.Context, jobID string) error
}
