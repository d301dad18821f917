// Package fetch retrieves static HTML pages from the town site.
// Raw HTTP requests plus goquery parsing; the municipal CMS serves plain
// server-rendered markup, so no browser engine is needed.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/curbside-tools/lexington/internal/cache"
	"github.com/curbside-tools/lexington/internal/ratelimit"
	"github.com/curbside-tools/lexington/internal/retry"
	"github.com/curbside-tools/lexington/pkg/models"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves pages with rate limiting, retry, and an optional
// short-TTL page cache for interactive commands.
type Fetcher struct {
	cache     cache.Cache
	limiter   ratelimit.RateLimiter
	client    *http.Client
	retryCfg  retry.Config
	userAgent string
	cacheTTL  time.Duration
}

// New creates a new Fetcher with dependency injection
func New(c cache.Cache, lim ratelimit.RateLimiter, client *http.Client, ua string, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		cache:     c,
		limiter:   lim,
		client:    client,
		retryCfg:  retry.DefaultConfig(),
		userAgent: ua,
		cacheTTL:  cacheTTL,
	}
}

// Page retrieves a single page
func (f *Fetcher) Page(ctx context.Context, opts models.FetchOptions) (*models.Page, error) {
	if f.cache != nil && f.cacheTTL > 0 && !opts.Fresh {
		if page, ok := f.cache.Get(opts.URL); ok {
			return page, nil
		}
	}

	start := time.Now()

	log.Debug().
		Str("url", opts.URL).
		Bool("fresh", opts.Fresh).
		Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, opts.URL); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var page *models.Page
	err := retry.WithRetry(ctx, f.retryCfg, func() error {
		var err error
		page, err = f.get(ctx, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	page.ResponseTime = time.Since(start).Milliseconds()

	if f.cache != nil && f.cacheTTL > 0 {
		if err := f.cache.Set(opts.URL, page, f.cacheTTL); err != nil {
			log.Warn().Err(err).Str("url", opts.URL).Msg("Failed to cache page")
		}
	}

	log.Debug().
		Str("url", opts.URL).
		Int("status", page.StatusCode).
		Int64("response_time_ms", page.ResponseTime).
		Msg("Fetch completed")

	return page, nil
}

// Document retrieves a page and parses it with goquery
func (f *Fetcher) Document(ctx context.Context, opts models.FetchOptions) (*goquery.Document, error) {
	page, err := f.Page(ctx, opts)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func (f *Fetcher) get(ctx context.Context, opts models.FetchOptions) (*models.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := f.client
	if opts.Timeout > 0 {
		// Per-request timeout without mutating the shared client
		c := *f.client
		c.Timeout = opts.Timeout
		client = &c
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, retry.NewHTTPError(resp.StatusCode, resp.Status, opts.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &models.Page{
		URL:        opts.URL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
		FetchedAt:  time.Now(),
	}, nil
}
