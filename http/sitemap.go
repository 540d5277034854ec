package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/hricks/onpage"
)

// maxSitemapDepth bounds sitemap-index recursion so a self-referencing index
// cannot loop forever even before the seen-set check.
const maxSitemapDepth = 5

// Ensure SitemapService implements onpage.SitemapService.
var _ onpage.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from website sitemaps via HTTP.
// Discovery order: Sitemap directives in robots.txt, then /sitemap.xml.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapClient sets the HTTP client used for sitemap requests.
func WithSitemapClient(client *http.Client) SitemapOption {
	return func(s *SitemapService) {
		s.client = client
	}
}

// NewSitemapService creates a new SitemapService.
func NewSitemapService(opts ...SitemapOption) *SitemapService {
	s := &SitemapService{
		client:    http.DefaultClient,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs finds all page URLs reachable from a site's sitemaps.
// Returns an empty slice (not nil) when no sitemap exists. URLs are
// deduplicated across sitemaps and returned in discovery order.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *onpage.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, onpage.Errorf(onpage.EINVALID, "invalid base URL: %v", err)
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""

	sitemaps, err := s.sitemapLocations(ctx, &root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps, 0)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathMatchesBase(u, base.Path) && filter.Match(u) {
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// sitemapLocations resolves where the site's sitemaps live: robots.txt
// directives first, then the conventional /sitemap.xml location.
func (s *SitemapService) sitemapLocations(ctx context.Context, root *url.URL) ([]string, error) {
	if sitemaps := s.robotsSitemaps(ctx, root.JoinPath("robots.txt").String()); len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.JoinPath("sitemap.xml").String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps extracts Sitemap directives from robots.txt. A missing or
// unreadable robots.txt simply yields no directives.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		directive, value, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(directive), "sitemap") {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	return sitemaps
}

// readSitemap fetches and parses one sitemap document. A urlset yields page
// URLs; a sitemapindex recurses into its children.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > maxSitemapDepth || seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, loc := range locValues(root, "sitemap") {
			urls, err := s.readSitemap(ctx, loc, seen, depth+1)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	return locValues(root, "url"), nil
}

// locValues collects non-empty <loc> texts from the named child elements.
func locValues(root *etree.Element, childTag string) []string {
	var values []string
	for _, child := range root.SelectElements(childTag) {
		loc := child.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// pathMatchesBase reports whether a discovered URL falls under the base
// path. A root or empty base path matches everything; otherwise matching
// respects path segment boundaries, so /docs matches /docs/intro but not
// /documentation.
func pathMatchesBase(rawURL, basePath string) bool {
	if basePath == "" || basePath == "/" {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	prefix := strings.TrimSuffix(basePath, "/")
	path := parsed.Path
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// get fetches a URL, failing on non-200 responses.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

// exists checks whether a URL answers 200 to a HEAD request.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
