package apisports

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/sports-dw/internal/platform/document"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
	"github.com/riskibarqy/sports-dw/internal/platform/resilience"
	"github.com/riskibarqy/sports-dw/internal/usecase"
)

const (
	FootballBaseURL   = "https://v3.football.api-sports.io"
	BasketballBaseURL = "https://v1.basketball.api-sports.io"
	Formula1BaseURL   = "https://v1.formula-1.api-sports.io"

	apiKeyHeader     = "x-apisports-key"
	maxResponseBytes = 32 << 20
)

var errAPISportsTransient = crerr.New("api-sports transient failure")

// ErrProviderRejected marks responses whose envelope carries errors, such
// as an invalid key or an exhausted daily quota.
var ErrProviderRejected = crerr.New("api-sports rejected request")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURLs       map[usecase.Sport]string
	Key            string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

// Client reads api-sports.io endpoints and returns the raw documents of
// their response array.
type Client struct {
	httpClient *http.Client
	baseURLs   map[usecase.Sport]string
	key        string
	retry      resilience.RetryPolicy
	breaker    *resilience.Breaker
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURLs := map[usecase.Sport]string{
		usecase.SportSoccer:     FootballBaseURL,
		usecase.SportBasketball: BasketballBaseURL,
		usecase.SportFormula1:   Formula1BaseURL,
	}
	for sport, raw := range cfg.BaseURLs {
		if trimmed := strings.TrimRight(strings.TrimSpace(raw), "/"); trimmed != "" {
			baseURLs[sport] = trimmed
		}
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURLs:   baseURLs,
		key:        strings.TrimSpace(cfg.Key),
		retry: resilience.RetryPolicy{
			MaxRetries: max(cfg.MaxRetries, 0),
			Backoff:    backoff,
			Retryable:  isTransient,
		},
		breaker: resilience.NewBreaker(cfg.CircuitBreaker),
		logger:  logger,
	}
}

func (c *Client) FetchDocuments(ctx context.Context, sport usecase.Sport, endpoint string, params map[string]string) ([]document.Value, error) {
	baseURL, ok := c.baseURLs[sport]
	if !ok {
		return nil, crerr.Wrapf(usecase.ErrUnknownSport, "no api-sports host for %q", sport)
	}
	if c.key == "" {
		return nil, crerr.Mark(crerr.New("api-sports key is not configured"), usecase.ErrDependencyUnavailable)
	}

	fullURL := baseURL + "/" + strings.Trim(endpoint, "/")
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.retry.Do(ctx, c.breaker, func(ctx context.Context) error {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil {
			return reqErr
		}
		raw = body
		return nil
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "api-sports circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Mark(crerr.Wrap(err, "sport data provider is temporarily unavailable"), usecase.ErrDependencyUnavailable)
		}
		c.logger.WarnContext(ctx, "api-sports request failed", "url", fullURL, "error", err)
		return nil, err
	}

	return decodeEnvelope(raw)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(apiKeyHeader, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errAPISportsTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errAPISportsTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	statusErr := crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	if isRetryableStatus(resp.StatusCode) {
		return nil, crerr.Mark(statusErr, errAPISportsTransient)
	}
	return nil, statusErr
}

// decodeEnvelope extracts the response array. An envelope without one, or
// with a non-empty errors field, is an error; an empty array is not.
func decodeEnvelope(raw []byte) ([]document.Value, error) {
	envelope, err := document.Parse(raw)
	if err != nil {
		return nil, crerr.Wrap(err, "decode provider payload")
	}

	if problems := envelope.Get("errors"); problems.Len() > 0 {
		encoded, _ := problems.MarshalJSON()
		return nil, crerr.Mark(crerr.Newf("provider errors: %s", abbreviateBody(encoded)), ErrProviderRejected)
	}

	items, ok := envelope.Get("response").Items()
	if !ok {
		return nil, crerr.Newf("provider payload has no response array: %s", abbreviateBody(raw))
	}
	return items, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errAPISportsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

var _ usecase.DocumentProvider = (*Client)(nil)
