// Package batch executes extraction jobs: it fetches each source URL,
// runs the extractor, and stores the results in source order.
package batch

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for within-job URL deduplication. A false positive
// skips a page that was not actually seen; at this rate that is rare enough
// to accept.
const (
	seenExpectedURLs      = 10000
	seenFalsePositiveRate = 0.01
)

// DefaultConcurrency is the number of pages fetched in parallel per job.
const DefaultConcurrency = 8

// Runner executes a single extraction job. Pages are processed concurrently
// but results are stored in source-list order, and a failure on one page
// never affects another.
type Runner struct {
	Fetcher     onpage.Fetcher
	Extractor   onpage.Extractor
	Extractions onpage.ExtractionService
	Limiter     onpage.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of one job run.
type Result struct {
	Extracted int
	Failed    int
	Skipped   int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress while a job runs.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting job progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	doc      *onpage.Document
	err      error
}

// Run processes every source URL of the job and stores the extractions.
// Page-level failures are counted, not propagated; Run itself fails only on
// context cancellation or a storage error.
func (r *Runner) Run(ctx context.Context, job *onpage.Job, progress ProgressFunc) (*Result, error) {
	// Within-job dedup: the same URL listed twice is extracted once.
	seen := bloom.NewFilter(seenExpectedURLs, seenFalsePositiveRate)

	var result Result
	work := make([]pageResult, 0, len(job.SourceURLs))
	for _, u := range job.SourceURLs {
		if seen.Test(u) {
			result.Skipped++
			continue
		}
		seen.Add(u)
		work = append(work, pageResult{position: len(work), url: u})
	}

	total := len(work)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, page := range work {
			page := page
			g.Go(func() error {
				resultCh <- r.processPage(gctx, page.position, page.url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	for page := range resultCh {
		completed.Add(1)
		results[page.position] = page

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       page.url,
			Error:     page.err,
		}
		if page.err != nil {
			event.Type = ProgressFailed
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Store in source order so positions read back deterministically.
	for _, page := range results {
		if page.err != nil {
			result.Failed++
			continue
		}

		ext := &onpage.Extraction{
			JobID:     job.ID,
			SourceURL: page.url,
			Document:  page.doc,
			Position:  page.position,
		}
		if err := r.Extractions.CreateExtraction(ctx, ext); err != nil {
			return nil, err
		}
		result.Extracted++
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// processPage fetches and extracts a single URL.
func (r *Runner) processPage(ctx context.Context, position int, pageURL string) pageResult {
	page := pageResult{position: position, url: pageURL}

	if r.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			page.err = onpage.Errorf(onpage.EINVALID, "invalid URL %q: %v", pageURL, err)
			return page
		}
		if err := r.Limiter.Wait(ctx, parsed.Host); err != nil {
			page.err = err
			return page
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, r.Fetcher.Fetch, delays)
	if err != nil {
		page.err = err
		return page
	}

	doc, err := r.Extractor.Extract(html)
	if err != nil {
		page.err = err
		return page
	}

	page.doc = doc
	return page
}
