package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/hricks/onpage"
)

// Compile-time interface verification.
var _ onpage.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements onpage.ExtractionService using SQLite.
// Documents are stored as their canonical JSON serialization.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateExtraction creates a new extraction record. The content hash is
// computed over the serialized document, so unchanged pages produce the same
// hash across runs.
func (s *ExtractionService) CreateExtraction(ctx context.Context, ext *onpage.Extraction) error {
	if err := ext.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(ext.Document)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	ext.ID = uuid.New().String()
	ext.ExtractedAt = time.Now().UTC()
	ext.ContentHash = hashContent(data)
	if ext.Title == "" {
		ext.Title = ext.Document.Source.Title
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, job_id, source_url, title, document, content_hash, position, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ext.ID, ext.JobID, ext.SourceURL, ext.Title, string(data), ext.ContentHash,
		ext.Position, ext.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*onpage.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, job_id, source_url, title, document, content_hash, position, extracted_at
		FROM extractions
		WHERE id = ?
	`, id)

	ext, err := scanExtraction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, onpage.Errorf(onpage.ENOTFOUND, "extraction not found")
	}
	return ext, err
}

// FindExtractions retrieves extractions matching the filter, ordered by
// position so job results read back in source order.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter onpage.ExtractionFilter) ([]*onpage.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, job_id, source_url, title, document, content_hash, position, extracted_at FROM extractions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.JobID != nil {
		query.WriteString(" AND job_id = ?")
		args = append(args, *filter.JobID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY position ASC, extracted_at ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exts []*onpage.Extraction
	for rows.Next() {
		ext, err := scanExtraction(rows.Scan)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}

	return exts, rows.Err()
}

// DeleteExtractionsByJob removes all extractions for a job.
func (s *ExtractionService) DeleteExtractionsByJob(ctx context.Context, jobID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE job_id = ?", jobID)
	return err
}

// scanExtraction reads one extraction row through the given scan function.
func scanExtraction(scan func(dest ...any) error) (*onpage.Extraction, error) {
	var ext onpage.Extraction
	var document, extractedAt string

	if err := scan(&ext.ID, &ext.JobID, &ext.SourceURL, &ext.Title,
		&document, &ext.ContentHash, &ext.Position, &extractedAt); err != nil {
		return nil, err
	}

	var doc onpage.Document
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stored document: %w", err)
	}
	ext.Document = &doc

	var err error
	ext.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &ext, nil
}
