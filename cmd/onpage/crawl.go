package main

import (
	"fmt"
	"regexp"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/batch"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	urlFilter, err := compileFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	if c.Limit > 0 && len(urls) > c.Limit {
		urls = urls[:c.Limit]
	}

	// Preview mode: show URLs without queueing a job
	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if len(urls) == 0 {
		err := onpage.Errorf(onpage.ENOTFOUND, "no URLs discovered for %s", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	job := &onpage.Job{SourceURLs: urls}
	if err := deps.Jobs.CreateJob(deps.Ctx, job); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Queued job %s (%d pages)\n", job.ID, len(job.SourceURLs))

	if !c.RunInline || deps.Runner == nil {
		return nil
	}

	// Inline run: process the job now and finish it, like a worker would
	if c.Concurrency > 0 {
		deps.Runner.Concurrency = c.Concurrency
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, event.URL)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.URL, event.Error)
		case batch.ProgressFinished:
			fmt.Fprintln(deps.Stdout)
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, job, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error running job: %v\n", err)
		if failErr := deps.Jobs.FailJob(deps.Ctx, job.ID, err.Error()); failErr != nil {
			return failErr
		}
		return err
	}

	if result.Extracted == 0 && result.Failed > 0 {
		message := fmt.Sprintf("all %d pages failed", result.Failed)
		fmt.Fprintf(deps.Stderr, "error: %s\n", message)
		if failErr := deps.Jobs.FailJob(deps.Ctx, job.ID, message); failErr != nil {
			return failErr
		}
		return onpage.Errorf(onpage.EINTERNAL, "%s", message)
	}

	if err := deps.Jobs.CompleteJob(deps.Ctx, job.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d pages (%d failed, %d skipped)\n",
		result.Extracted, result.Failed, result.Skipped)

	return nil
}

// compileFilter builds a URLFilter from include and exclude patterns.
// Returns nil when no patterns are given.
func compileFilter(include, exclude []string) (*onpage.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &onpage.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}

	return filter, nil
}
