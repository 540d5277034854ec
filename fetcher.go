package onpage

import "context"

// Fetcher retrieves rendered HTML from URLs. The engine itself never fetches;
// fetching happens around it, and the engine receives the resulting markup.
type Fetcher interface {
	// Fetch retrieves the rendered HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for batch fetching.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
