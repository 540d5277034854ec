package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hricks/onpage"
)

// Run executes the jobs list command.
func (c *JobsListCmd) Run(deps *Dependencies) error {
	filter := onpage.JobFilter{Limit: c.Limit}

	if c.Status != "" {
		status := onpage.JobStatus(c.Status)
		switch status {
		case onpage.JobQueued, onpage.JobProcessing, onpage.JobCompleted, onpage.JobFailed:
			filter.Status = &status
		default:
			err := onpage.Errorf(onpage.EINVALID, "unknown status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
			return err
		}
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'onpage crawl' to queue one.")
		return nil
	}

	for _, job := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %4d pages  %s\n",
			job.ID, job.Status, len(job.SourceURLs),
			job.CreatedAt.Format(time.RFC3339))
	}

	return nil
}

// Run executes the jobs show command.
func (c *JobsShowCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Job %s\n", job.ID)
	fmt.Fprintf(deps.Stdout, "  Status:  %s\n", job.Status)
	fmt.Fprintf(deps.Stdout, "  Pages:   %d\n", len(job.SourceURLs))
	fmt.Fprintf(deps.Stdout, "  Created: %s\n", job.CreatedAt.Format(time.RFC3339))
	if job.CompletedAt != nil {
		fmt.Fprintf(deps.Stdout, "  Finished: %s\n", job.CompletedAt.Format(time.RFC3339))
	}
	if job.Error != "" {
		fmt.Fprintf(deps.Stdout, "  Error:   %s\n", job.Error)
	}

	exts, err := deps.Extractions.FindExtractions(deps.Ctx, onpage.ExtractionFilter{JobID: &job.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", onpage.ErrorMessage(err))
		return err
	}

	if len(exts) == 0 {
		fmt.Fprintln(deps.Stdout, "  No extractions stored.")
		return nil
	}

	if c.Full {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		for _, ext := range exts {
			if err := enc.Encode(ext.Document); err != nil {
				return err
			}
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "  Extractions (%d):\n", len(exts))
	for _, ext := range exts {
		title := ext.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "  %3d. %s  %s\n", ext.Position+1, title, ext.SourceURL)
	}

	return nil
}
