package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recall-assistant/internal/chat"
	"recall-assistant/internal/model"
	"recall-assistant/pkg/log"
)

type fakeUseCase struct {
	events    []model.Event
	submitErr error
	got       chat.SubmitInput
	scope     model.Scope
	cancelled bool
}

func (f *fakeUseCase) Submit(ctx context.Context, sc model.Scope, input chat.SubmitInput) (<-chan model.Event, error) {
	f.got = input
	f.scope = sc
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	ch := make(chan model.Event, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (f *fakeUseCase) Reset(ctx context.Context, sc model.Scope) (chat.ResetOutput, error) {
	return chat.ResetOutput{Cancelled: f.cancelled}, nil
}

func newRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc, model.Scope{UserID: "install-1"}))
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmit_StreamsEvents(t *testing.T) {
	uc := &fakeUseCase{events: []model.Event{
		{Type: model.EventDelta, Delta: "Hel"},
		{Type: model.EventDelta, Delta: "lo"},
		{Type: model.EventSources, Sources: []string{"https://a.example"}},
		{Type: model.EventDone},
	}}

	w := post(newRouter(uc), "/api/v1/chat", `{"query":"  hello there  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"), w.Header().Get("Content-Type"))
	assert.Equal(t, "hello there", uc.got.Query)
	assert.Equal(t, "install-1", uc.scope.UserID)

	body := w.Body.String()
	assert.Contains(t, body, "event:delta\ndata:{\"type\":\"delta\",\"delta\":\"Hel\"}")
	assert.Contains(t, body, "event:sources\ndata:{\"type\":\"sources\",\"sources\":[\"https://a.example\"]}")
	assert.Contains(t, body, "event:done")
	assert.Less(t, strings.Index(body, "Hel"), strings.Index(body, "event:done"))
}

func TestSubmit_BadRequest(t *testing.T) {
	r := newRouter(&fakeUseCase{})

	w := post(r, "/api/v1/chat", `{"query":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/api/v1/chat", `{"query":"`+strings.Repeat("a", chat.MaxQueryLength+1)+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "query is too long")
}

func TestSubmit_UseCaseError(t *testing.T) {
	tcs := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing user", err: chat.ErrMissingUser, code: http.StatusUnauthorized},
		{name: "unknown", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			w := post(newRouter(&fakeUseCase{submitErr: tc.err}), "/api/v1/chat", `{"query":"hi"}`)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestReset(t *testing.T) {
	w := post(newRouter(&fakeUseCase{cancelled: true}), "/api/v1/chat/reset", ``)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled":true`)
}
