package sqlite_test

import (
	"context"
	"testing"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(title string) *onpage.Document {
	return &onpage.Document{
		Source: onpage.SourceMetadata{
			URL:   "https://example.com/page",
			Title: title,
		},
		Blocks: []onpage.Block{
			onpage.Heading{Level: 1, Text: title},
			onpage.Paragraph{Text: "Body text for " + title + "."},
		},
		Validation: onpage.Validation{
			Status:   onpage.ValidationPass,
			H1Count:  1,
			Messages: []string{},
		},
	}
}

// createTestJob queues a job so extractions have a parent to reference.
func createTestJob(t *testing.T, db *sqlite.DB) *onpage.Job {
	t.Helper()

	job := &onpage.Job{SourceURLs: []string{"https://example.com/page"}}
	require.NoError(t, sqlite.NewJobService(db).CreateJob(context.Background(), job))
	return job
}

func TestExtractionService_CreateExtraction(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the document", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewExtractionService(db)
		ctx := context.Background()
		job := createTestJob(t, db)

		ext := &onpage.Extraction{
			JobID:     job.ID,
			SourceURL: "https://example.com/page",
			Document:  testDocument("Welcome"),
			Position:  3,
		}
		err := s.CreateExtraction(ctx, ext)
		require.NoError(t, err)

		assert.NotEmpty(t, ext.ID)
		assert.NotEmpty(t, ext.ContentHash)
		assert.Equal(t, "Welcome", ext.Title)

		got, err := s.FindExtractionByID(ctx, ext.ID)
		require.NoError(t, err)
		assert.Equal(t, ext.Document, got.Document)
		assert.Equal(t, 3, got.Position)
		assert.Equal(t, ext.ContentHash, got.ContentHash)
	})

	t.Run("identical documents hash identically", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewExtractionService(db)
		ctx := context.Background()
		job := createTestJob(t, db)

		a := &onpage.Extraction{JobID: job.ID, SourceURL: "https://example.com/a", Document: testDocument("Same")}
		b := &onpage.Extraction{JobID: job.ID, SourceURL: "https://example.com/b", Document: testDocument("Same")}
		require.NoError(t, s.CreateExtraction(ctx, a))
		require.NoError(t, s.CreateExtraction(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)

		c := &onpage.Extraction{JobID: job.ID, SourceURL: "https://example.com/c", Document: testDocument("Different")}
		require.NoError(t, s.CreateExtraction(ctx, c))
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})

	t.Run("rejects extraction without document", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewExtractionService(db)
		job := createTestJob(t, db)

		err := s.CreateExtraction(context.Background(), &onpage.Extraction{
			JobID:     job.ID,
			SourceURL: "https://example.com/page",
		})
		assert.Equal(t, onpage.EINVALID, onpage.ErrorCode(err))
	})
}

func TestExtractionService_FindExtractionByID_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewExtractionService(mustOpenDB(t))

	_, err := s.FindExtractionByID(context.Background(), "missing")
	assert.Equal(t, onpage.ENOTFOUND, onpage.ErrorCode(err))
}

func TestExtractionService_FindExtractions(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewExtractionService(db)
	ctx := context.Background()
	job := createTestJob(t, db)

	// Inserted out of position order on purpose.
	for _, pos := range []int{2, 0, 1} {
		require.NoError(t, s.CreateExtraction(ctx, &onpage.Extraction{
			JobID:     job.ID,
			SourceURL: "https://example.com/page",
			Document:  testDocument("Page"),
			Position:  pos,
		}))
	}

	jobID := job.ID
	exts, err := s.FindExtractions(ctx, onpage.ExtractionFilter{JobID: &jobID})
	require.NoError(t, err)
	require.Len(t, exts, 3)
	assert.Equal(t, 0, exts[0].Position)
	assert.Equal(t, 1, exts[1].Position)
	assert.Equal(t, 2, exts[2].Position)
}

func TestExtractionService_DeleteExtractionsByJob(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewExtractionService(db)
	ctx := context.Background()

	keep := createTestJob(t, db)
	drop := createTestJob(t, db)

	require.NoError(t, s.CreateExtraction(ctx, &onpage.Extraction{
		JobID: keep.ID, SourceURL: "https://example.com/keep", Document: testDocument("Keep"),
	}))
	require.NoError(t, s.CreateExtraction(ctx, &onpage.Extraction{
		JobID: drop.ID, SourceURL: "https://example.com/drop", Document: testDocument("Drop"),
	}))

	require.NoError(t, s.DeleteExtractionsByJob(ctx, drop.ID))

	keepID := keep.ID
	exts, err := s.FindExtractions(ctx, onpage.ExtractionFilter{JobID: &keepID})
	require.NoError(t, err)
	assert.Len(t, exts, 1)

	dropID := drop.ID
	exts, err = s.FindExtractions(ctx, onpage.ExtractionFilter{JobID: &dropID})
	require.NoError(t, err)
	assert.Empty(t, exts)
}
