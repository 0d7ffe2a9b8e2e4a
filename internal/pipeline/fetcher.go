package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/jmfreder123/az-boards/internal/cache"
	"github.com/jmfreder123/az-boards/internal/model"
	"github.com/jmfreder123/az-boards/internal/util"
	"github.com/jmfreder123/az-boards/internal/worker"
)

// ErrSourceMissing marks a county-year file the upstream repository simply
// does not have. Not every county posted precinct data every cycle; the
// caller records the gap as unfillable and moves on.
var ErrSourceMissing = errors.New("source file not published")

// Fetcher downloads county-year source files with a layered cache, a
// per-host rate limit, a robots.txt gate, and bounded exponential retries.
// Any failure degrades to "no data for this gap key"; the fetcher never
// aborts a run.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries uint64
	store      cache.Cache
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
}

// NewFetcher builds a fetcher from the HTTP and worker configuration.
// store may be nil to disable caching.
func NewFetcher(httpCfg model.HTTPConfig, workerCfg model.WorkerConfig, store cache.Cache) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:  httpCfg.UserAgent,
		maxBytes:   httpCfg.MaxBodyBytes,
		maxRetries: httpCfg.MaxRetries,
		store:      store,
		limiter:    worker.NewLimiter(workerCfg.RequestsPerSecond, workerCfg.Burst),
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
	}
}

// Fetch retrieves the text of one source file, normalized to \n line
// endings. Cached content is served without touching the network.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if f.store != nil {
		if data, found := f.store.Get(key); found {
			return string(data), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	var body []byte
	operation := func() error {
		var opErr error
		body, opErr = f.doRequest(ctx, rawURL)
		return opErr
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}

	text := normalizeLineEndings(string(body))
	if f.store != nil {
		_ = f.store.Set(key, []byte(text), 0)
	}
	return text, nil
}

// doRequest performs a single attempt. Missing files and client errors are
// permanent; server errors and transport failures are retryable.
func (f *Fetcher) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ErrSourceMissing)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("server error: %d %s", resp.StatusCode, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status))
	}

	// Read one byte past the cap so an oversized body fails instead of
	// silently handing a torn CSV to the extractor.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, backoff.Permanent(fmt.Errorf("body exceeds %d bytes: %s", f.maxBytes, rawURL))
	}
	return body, nil
}

func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SetHostRate tightens the download rate for one host, typically from a
// robots.txt crawl delay discovered at run time.
func (f *Fetcher) SetHostRate(host string, requestsPerSecond float64, burst int) {
	f.limiter.SetHostRate(host, requestsPerSecond, burst)
}
