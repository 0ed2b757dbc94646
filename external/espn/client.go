package espn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/picksleagues/picks-leagues/internal/platform/cache"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
	"github.com/picksleagues/picks-leagues/internal/platform/resilience"
	"github.com/picksleagues/picks-leagues/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL            = "https://sports.core.api.espn.com/v2/sports"
	defaultResolveConcurrency = 4
	defaultLeagueCacheTTL     = time.Hour
	defaultPageLimit          = 100
	maxPages                  = 200
	maxBodyBytes              = 6 << 20
	espnCoreHost              = "sports.core.api.espn.com"
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	Timeout            time.Duration
	MaxRetries         int
	RetryBackoff       time.Duration
	ResolveConcurrency int
	// RequestsPerSecond <= 0 disables rate limiting.
	RequestsPerSecond    float64
	Burst                int
	LeagueCacheTTL       time.Duration
	Logger               *logging.Logger
	CircuitBreaker       resilience.CircuitBreakerConfig
	OnBreakerStateChange resilience.StateChangeFunc
	// ObserveRequest receives the response status ("error" for transport
	// failures) and latency of every attempt.
	ObserveRequest func(status string, elapsed time.Duration)
}

// Client reads the ESPN core API.
type Client struct {
	httpClient         *http.Client
	baseURL            string
	retry              resilience.RetryPolicy
	resolveConcurrency int
	limiter            *rate.Limiter
	logger             *logging.Logger
	breaker            *resilience.CircuitBreaker
	flight             singleflight.Group
	leagues            *cache.Store[usecase.ExternalLeague]
	observe            func(status string, elapsed time.Duration)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	concurrency := cfg.ResolveConcurrency
	if concurrency <= 0 {
		concurrency = defaultResolveConcurrency
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	ttl := cfg.LeagueCacheTTL
	if ttl <= 0 {
		ttl = defaultLeagueCacheTTL
	}

	observe := cfg.ObserveRequest
	if observe == nil {
		observe = func(string, time.Duration) {}
	}

	return &Client{
		httpClient:         httpClient,
		baseURL:            baseURL,
		retry:              resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0), Backoff: cfg.RetryBackoff},
		resolveConcurrency: concurrency,
		limiter:            limiter,
		logger:             logger.Named("espn"),
		breaker: resilience.NewCircuitBreaker("espn",
			resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker), cfg.OnBreakerStateChange),
		leagues: cache.NewStore[usecase.ExternalLeague](ttl),
		observe: observe,
	}
}

func (c *Client) leagueURL(sportSlug, leagueSlug string) string {
	return fmt.Sprintf("%s/%s/leagues/%s", c.baseURL, url.PathEscape(sportSlug), url.PathEscape(leagueSlug))
}

// getJSON fetches rawURL through the breaker and decodes it into target.
// Concurrent requests for the same URL share one upstream call.
func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	out, err, _ := c.flight.Do(rawURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, rawURL)
			return reqErr
		}, isTransient)
		return raw, execErr
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: espn is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode espn payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := resilience.Retry(ctx, c.retry, func(attempt int) (bool, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}

		started := time.Now()
		raw, status, err := c.fetchOnce(ctx, rawURL)
		label := "error"
		if status > 0 {
			label = strconv.Itoa(status)
		}
		c.observe(label, time.Since(started))

		if err != nil {
			if isTransient(err) {
				c.logger.DebugContext(ctx, "espn request attempt failed", "url", rawURL, "attempt", attempt, "error", err)
				return true, err
			}
			return false, err
		}
		body = raw
		return false, nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "espn request failed", "url", rawURL, "error", err)
		return nil, err
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, crerr.Mark(fmt.Errorf("send request: %w", err), errESPNTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, resp.StatusCode, crerr.Mark(fmt.Errorf("read response body: %w", err), errESPNTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := fmt.Errorf("espn status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
		if isRetryableStatus(resp.StatusCode) {
			return nil, resp.StatusCode, crerr.Mark(statusErr, errESPNTransient)
		}
		return nil, resp.StatusCode, statusErr
	}

	return append([]byte(nil), buf.B...), resp.StatusCode, nil
}

// listPages walks a paginated list until pageIndex reaches pageCount.
func listPages[T any](ctx context.Context, c *Client, listURL string) ([]T, error) {
	items := make([]T, 0, 32)
	for page := 1; page <= maxPages; page++ {
		pageURL, err := withPage(listURL, page)
		if err != nil {
			return nil, err
		}

		var envelope pageEnvelope[T]
		if err := c.getJSON(ctx, pageURL, &envelope); err != nil {
			return nil, fmt.Errorf("list page %d: %w", page, err)
		}
		items = append(items, envelope.Items...)

		if envelope.PageCount == 0 || envelope.PageIndex >= envelope.PageCount {
			return items, nil
		}
	}
	return nil, fmt.Errorf("list %s: more than %d pages", listURL, maxPages)
}

func (c *Client) listRefs(ctx context.Context, listURL string) ([]string, error) {
	items, err := listPages[refItem](ctx, c, listURL)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(items))
	for _, item := range items {
		if ref := strings.TrimSpace(item.Ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// resolveRefs resolves every ref on a bounded pool. Results keep the order of
// refs; the first failure cancels the remaining work.
func resolveRefs[T any](ctx context.Context, c *Client, refs []string, resolve func(ctx context.Context, ref string) (T, error)) ([]T, error) {
	out := make([]T, len(refs))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(c.resolveConcurrency).
		WithCancelOnError().
		WithFirstError()
	for i, ref := range refs {
		p.Go(func(ctx context.Context) error {
			value, err := resolve(ctx, c.normalizeRef(ref))
			if err != nil {
				return fmt.Errorf("resolve %s: %w", ref, err)
			}
			out[i] = value
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func fetch[T any](ctx context.Context, c *Client, rawURL string) (T, error) {
	var out T
	if err := c.getJSON(ctx, rawURL, &out); err != nil {
		return out, err
	}
	return out, nil
}

// normalizeRef upgrades the API's http refs to https and resolves relative refs
// against the configured base URL.
func (c *Client) normalizeRef(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if parsed.Host == "" {
		base, err := url.Parse(c.baseURL)
		if err != nil {
			return ref
		}
		return base.ResolveReference(parsed).String()
	}
	if parsed.Host == espnCoreHost && parsed.Scheme == "http" {
		parsed.Scheme = "https"
		return parsed.String()
	}
	return ref
}

func withPage(rawURL string, page int) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse list url: %w", err)
	}
	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	if query.Get("limit") == "" {
		query.Set("limit", strconv.Itoa(defaultPageLimit))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
