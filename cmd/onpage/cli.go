package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/hricks/onpage"
	"github.com/hricks/onpage/batch"
	"github.com/hricks/onpage/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	DB          *sqlite.DB
	Jobs        onpage.JobService
	Extractions onpage.ExtractionService
	Sitemaps    onpage.SitemapService
	Fetcher     onpage.Fetcher
	Extractor   onpage.Extractor
	Runner      *batch.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract structured content from one page"`
	Crawl   CrawlCmd   `cmd:"" help:"Discover a site's pages and queue an extraction job"`
	Work    WorkCmd    `cmd:"" help:"Process queued jobs until interrupted"`
	Jobs    JobsCmd    `cmd:"" help:"Inspect jobs and their results"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL  string `arg:"" optional:"" help:"Page URL to fetch and extract"`
	File string `short:"f" help:"Read rendered HTML from a file instead of fetching ('-' for stdin)"`
	Out  string `short:"o" help:"Write the result under this directory instead of stdout"`
	Base string `help:"Base URL for resolving relative links when reading from a file"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string   `arg:"" help:"Site URL to discover pages from"`
	Filter      []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" help:"Exclude URLs matching regex (repeatable)"`
	Limit       int      `short:"n" help:"Queue at most this many URLs"`
	Preview     bool     `short:"p" help:"Show discovered URLs without queueing a job"`
	RunInline   bool     `name:"run" help:"Run the job inline instead of waiting for a worker"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent fetch limit when running inline"`
}

// WorkCmd is the "work" subcommand.
type WorkCmd struct {
	Interval    time.Duration `default:"2s" help:"Poll interval when the queue is empty"`
	Concurrency int           `short:"c" default:"8" help:"Concurrent fetch limit per job"`
	Rate        float64       `default:"1" help:"Requests per second per domain"`
}

// JobsCmd groups the job inspection subcommands.
type JobsCmd struct {
	List JobsListCmd `cmd:"" default:"1" help:"List jobs, newest first"`
	Show JobsShowCmd `cmd:"" help:"Show a job and its stored extractions"`
}

// JobsListCmd is the "jobs list" subcommand.
type JobsListCmd struct {
	Status string `help:"Filter by status (queued, processing, completed, failed)"`
	Limit  int    `default:"20" help:"Maximum number of jobs to show"`
}

// JobsShowCmd is the "jobs show" subcommand.
type JobsShowCmd struct {
	ID   string `arg:"" help:"Job ID"`
	Full bool   `help:"Print full extracted documents as JSON"`
}
