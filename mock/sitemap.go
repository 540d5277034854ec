package mock

import (
	"context"

	"github.com/hricks/onpage"
)

var _ onpage.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of onpage.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *onpage.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *onpage.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
