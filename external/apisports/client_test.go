package apisports

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/sports-dw/internal/platform/logging"
	"github.com/riskibarqy/sports-dw/internal/platform/resilience"
	"github.com/riskibarqy/sports-dw/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.BreakerConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURLs:       map[usecase.Sport]string{usecase.SportSoccer: server.URL + "/"},
		Key:            "secret-key",
		MaxRetries:     1,
		RetryBackoff:   time.Millisecond,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchDocuments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		assert.Equal(t, "secret-key", r.Header.Get("x-apisports-key"))
		_, _ = w.Write([]byte(`{"get":"fixtures","errors":[],"results":2,"response":[{"fixture":{"id":1}},{"fixture":{"id":2}}]}`))
	}, resilience.BreakerConfig{})

	docs, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "fixtures", map[string]string{"league": "39", "season": "2023"})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	matchID, ok := docs[1].Get("fixture", "id").Int()
	require.True(t, ok)
	assert.Equal(t, int64(2), matchID)
}

func TestClient_FetchDocumentsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[],"results":0,"response":[]}`))
	}, resilience.BreakerConfig{})

	docs, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "leagues", nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestClient_FetchDocumentsErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":{"token":"Error/Missing application key"},"response":[]}`))
	}, resilience.BreakerConfig{})

	_, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "leagues", nil)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrProviderRejected))
}

func TestClient_FetchDocumentsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"response":[{"id":1}]}`))
	}, resilience.BreakerConfig{})

	docs, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "teams", nil)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_FetchDocumentsDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}, resilience.BreakerConfig{})

	_, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "teams", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_FetchDocumentsCircuitOpens(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, resilience.BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Hour, HalfOpenMaxReq: 1})

	_, err := client.FetchDocuments(t.Context(), usecase.SportSoccer, "teams", nil)
	require.Error(t, err)

	_, err = client.FetchDocuments(t.Context(), usecase.SportSoccer, "teams", nil)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_FetchDocumentsRequiresKey(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := client.FetchDocuments(t.Context(), usecase.SportFormula1, "races", nil)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, usecase.ErrDependencyUnavailable))
}

func TestDecodeEnvelope_MissingResponse(t *testing.T) {
	_, err := decodeEnvelope([]byte(`{"message":"You are not subscribed to this API."}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response array")
}
