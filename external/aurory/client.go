package aurory

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/resilience"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

const (
	defaultBaseURL   = "https://aggregator-api.live.aurory.io/v1"
	defaultPageDelay = 500 * time.Millisecond

	// cpuOpponent marks system-controlled opponents in the aggregator feed.
	// They are not real competitors and must never reach the scoring job.
	cpuOpponent = "CPU"
)

var errAuroryTransient = crerr.New("aurory aggregator transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	// EventTag narrows history to one tournament event when set.
	EventTag string
	// Descending requests newest pages first, which lets pagination stop at
	// the first page that is entirely older than the watermark.
	Descending     bool
	PageDelay      time.Duration
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the aggregator match-history API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	eventTag       string
	descending     bool
	pageDelay      time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
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
	pageDelay := cfg.PageDelay
	if pageDelay < 0 {
		pageDelay = defaultPageDelay
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		eventTag:       strings.TrimSpace(cfg.EventTag),
		descending:     cfg.Descending,
		pageDelay:      pageDelay,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Matches returns a fresh, restartable iterator over the competitor's match
// history newer than since.
func (c *Client) Matches(competitor string, since time.Time) usecase.MatchIterator {
	return &matchIterator{
		client:     c,
		competitor: strings.TrimSpace(competitor),
		since:      since.UTC(),
		page:       1,
		totalPages: -1,
	}
}

func (c *Client) fetchPage(ctx context.Context, competitor string, since time.Time, page int) (matchPageEnvelope, error) {
	query := map[string]string{
		"competitor": competitor,
		"since":      since.UTC().Format(time.RFC3339),
		"page":       strconv.Itoa(page),
	}
	if c.eventTag != "" {
		query["event"] = c.eventTag
	}
	if c.descending {
		query["order_by"] = "created_at"
		query["direction"] = "desc"
	}

	var envelope matchPageEnvelope
	if err := c.doJSON(ctx, "/matches", query, &envelope); err != nil {
		return matchPageEnvelope{}, err
	}
	return envelope, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "aurory circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: match aggregator is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errAuroryTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode aggregator payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errAuroryTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errAuroryTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: aggregator status=%d body=%s", errAuroryTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("aggregator status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
