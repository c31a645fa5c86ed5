package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opportunities-radar/radar/internal/cache"
	"github.com/opportunities-radar/radar/internal/model"
	"github.com/opportunities-radar/radar/internal/util"
)

// Waiter grants rate-limit clearance for an outbound request.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// Fetcher retrieves raw markup for monitored sources. Any transport
// error or non-2xx status fails the fetch; the caller treats that as
// the whole source cycle failing.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    Waiter
	bodyCache  cache.Cache
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher. limiter and bodyCache may be nil to
// disable pacing and caching.
func NewFetcher(cfg model.HTTPConfig, limiter Waiter, bodyCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   limiter,
		bodyCache: bodyCache,
		cacheTTL:  cacheTTL,
	}
}

// Fetch retrieves the document at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	cacheKey := cache.Key(rawURL)
	if f.bodyCache != nil {
		if body, found := f.bodyCache.Get(cacheKey); found {
			return string(body), nil
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err == nil && !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}
	if crawlDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(crawlDelay):
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.bodyCache != nil {
		f.bodyCache.Set(cacheKey, body, f.cacheTTL)
	}

	return string(body), nil
}
