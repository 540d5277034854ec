package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/hricks/onpage"
	"github.com/hricks/onpage/batch"
	"github.com/hricks/onpage/goquery"
	onpagehttp "github.com/hricks/onpage/http"
	onpageslog "github.com/hricks/onpage/slog"
	"github.com/hricks/onpage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	JobService        onpage.JobService
	ExtractionService onpage.ExtractionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  os.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("onpage"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'onpage --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	deps.Logger = logger

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ONPAGE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.JobService = sqlite.NewJobService(m.DB)
	m.ExtractionService = sqlite.NewExtractionService(m.DB)
	deps.DB = m.DB
	deps.Jobs = m.JobService
	deps.Extractions = m.ExtractionService
	deps.Sitemaps = onpageslog.NewLoggingSitemapService(onpagehttp.NewSitemapService(), logger)

	// Commands that fetch pages share one HTTP fetcher
	if cmd == "extract" || cmd == "crawl" || cmd == "work" {
		fetcher := onpageslog.NewLoggingFetcher(onpagehttp.NewFetcher(), logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	switch cmd {
	case "extract":
		// Relative hrefs resolve against the page URL unless overridden
		base := cli.Extract.Base
		if base == "" {
			base = cli.Extract.URL
		}
		deps.Extractor = onpageslog.NewLoggingExtractor(
			goquery.NewExtractor(goquery.WithBaseURL(base)), logger)

	case "crawl":
		deps.Extractor = goquery.NewExtractor()
		deps.Runner = &batch.Runner{
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Extractions: deps.Extractions,
			Limiter:     batch.NewDomainLimiter(1.0),
			Concurrency: cli.Crawl.Concurrency,
		}

	case "work":
		deps.Extractor = goquery.NewExtractor()
		deps.Runner = &batch.Runner{
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Extractions: deps.Extractions,
			Limiter:     batch.NewDomainLimiter(cli.Work.Rate),
			Concurrency: cli.Work.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ONPAGE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "onpage.db"
	}
	dir := filepath.Join(home, ".onpage")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "onpage.db")
}
