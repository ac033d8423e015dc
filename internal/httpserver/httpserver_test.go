package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recall-assistant/internal/chat"
	"recall-assistant/internal/model"
	"recall-assistant/internal/observability"
	"recall-assistant/pkg/log"
)

type stubChat struct{}

func (stubChat) Submit(ctx context.Context, sc model.Scope, input chat.SubmitInput) (<-chan model.Event, error) {
	ch := make(chan model.Event, 1)
	ch <- model.Event{Type: model.EventDone}
	close(ch)
	return ch, nil
}

func (stubChat) Reset(ctx context.Context, sc model.Scope) (chat.ResetOutput, error) {
	return chat.ResetOutput{}, nil
}

func newTestServer(t *testing.T, rl RateLimitConfig) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: model.EnvironmentDevelopment,
		ChatUseCase: stubChat{},
		Scope:       model.Scope{UserID: "install-1"},
		RateLimit:   rl,
		Metrics:     observability.NewMetrics("test"),
	})
	require.NoError(t, err)
	return srv
}

func do(srv *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_Validation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8080, Mode: gin.TestMode})
	assert.Error(t, err, "chat usecase is required")

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode, ChatUseCase: stubChat{}})
	assert.Error(t, err, "port is required")

	_, err = New(log.NewNop(), Config{Port: 8080, Mode: gin.TestMode, ChatUseCase: stubChat{}, RateLimit: RateLimitConfig{Enabled: true}})
	assert.Error(t, err, "rate limit without a budget")
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, RateLimitConfig{})

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := do(srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	assert.Contains(t, do(srv, http.MethodGet, "/ready", "").Body.String(), "install-1")

	do(srv, http.MethodPost, "/api/v1/chat", `{"query":"hi"}`)
	metrics := do(srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `route="/api/v1/chat"`)
}

func TestChatRateLimit(t *testing.T) {
	// 10 per minute gives a burst of one.
	srv := newTestServer(t, RateLimitConfig{Enabled: true, RequestsPerMin: 10})

	first := do(srv, http.MethodPost, "/api/v1/chat", `{"query":"hi"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(srv, http.MethodPost, "/api/v1/chat", `{"query":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// System routes are not limited.
	assert.Equal(t, http.StatusOK, do(srv, http.MethodGet, "/health", "").Code)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl, err := newRateLimiter(RateLimitConfig{RequestsPerMin: 10, MaxTracked: 2})
	require.NoError(t, err)

	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"))
}
