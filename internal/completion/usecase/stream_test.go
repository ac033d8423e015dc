package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recall-assistant/internal/completion"
	"recall-assistant/internal/model"
	"recall-assistant/pkg/llmprovider"
	"recall-assistant/pkg/log"
)

type fakeStreamer struct {
	body    io.ReadCloser
	err     error
	lastReq *llmprovider.Request
}

func (f *fakeStreamer) StreamContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Stream, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Stream{Body: f.body, ProviderName: "fake", ModelName: "fake-1"}, nil
}

type fakeRecorder struct {
	mu    sync.Mutex
	err   error
	texts []string
	users []string
}

func (f *fakeRecorder) Remember(ctx context.Context, sc model.Scope, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.texts = append(f.texts, text)
	f.users = append(f.users, sc.UserID)
	return "id", nil
}

// erroringBody yields its data, then a transport error.
type erroringBody struct {
	r   io.Reader
	err error
}

func (b *erroringBody) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err == io.EOF {
		return n, b.err
	}
	return n, err
}

func (b *erroringBody) Close() error { return nil }

// blockingBody blocks reads until closed.
type blockingBody struct {
	once   sync.Once
	closed chan struct{}
}

func newBlockingBody() *blockingBody { return &blockingBody{closed: make(chan struct{})} }

func (b *blockingBody) Read(p []byte) (int, error) {
	<-b.closed
	return 0, errors.New("read on closed body")
}

func (b *blockingBody) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

func chunk(content string) string {
	return fmt.Sprintf("data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", content)
}

func collect(t *testing.T, ch <-chan model.Event) []model.Event {
	t.Helper()
	var events []model.Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatal("stream did not finish")
		}
	}
}

func input(onComplete func(string)) completion.StreamInput {
	return completion.StreamInput{
		Scope:      model.Scope{UserID: "user-1"},
		Turns:      []model.Turn{{Role: model.RoleSystem, Content: "sys"}, {Role: model.RoleUser, Content: "hi"}},
		Sources:    []string{"https://a.example", "https://b.example"},
		OnComplete: onComplete,
	}
}

func TestStream_CompletesAndPersists(t *testing.T) {
	deltas := []string{"Hel", "lo", ", ", "world", "!"}
	var sb strings.Builder
	for _, d := range deltas {
		sb.WriteString(chunk(d))
	}
	sb.WriteString("data: [DONE]\n\n")
	sb.WriteString(chunk("after sentinel"))

	streamer := &fakeStreamer{body: io.NopCloser(strings.NewReader(sb.String()))}
	recorder := &fakeRecorder{}
	var completed []string
	uc := New(log.NewNop(), streamer, recorder, completion.Config{Temperature: 0.9}, nil)

	events := collect(t, uc.Stream(context.Background(), input(func(text string) { completed = append(completed, text) })))

	require.Len(t, events, len(deltas)+2)
	for i, d := range deltas {
		assert.Equal(t, model.Event{Type: model.EventDelta, Delta: d}, events[i])
	}
	assert.Equal(t, model.EventSources, events[len(deltas)].Type)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, events[len(deltas)].Sources)
	assert.Equal(t, model.EventDone, events[len(deltas)+1].Type)

	assert.Equal(t, []string{"Hello, world!"}, recorder.texts)
	assert.Equal(t, []string{"user-1"}, recorder.users)
	assert.Equal(t, []string{"Hello, world!"}, completed)

	require.NotNil(t, streamer.lastReq)
	assert.Equal(t, 0.9, streamer.lastReq.Temperature)
	assert.Equal(t, completion.DefaultMaxTokens, streamer.lastReq.MaxTokens)
	assert.Equal(t, "system", streamer.lastReq.Messages[0].Role)
}

func TestStream_MalformedFramesSkipped(t *testing.T) {
	body := chunk("a") +
		"data: {not json\n\n" +
		": keep-alive comment\n\n" +
		"data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n" +
		chunk("b") +
		"data: [DONE]\n\n"
	recorder := &fakeRecorder{}
	uc := New(log.NewNop(), &fakeStreamer{body: io.NopCloser(strings.NewReader(body))}, recorder, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(nil)))

	require.Len(t, events, 4)
	assert.Equal(t, "a", events[0].Delta)
	assert.Equal(t, "b", events[1].Delta)
	assert.Equal(t, model.EventDone, events[3].Type)
	assert.Equal(t, []string{"ab"}, recorder.texts)
}

func TestStream_EOFWithoutSentinelCompletes(t *testing.T) {
	recorder := &fakeRecorder{}
	uc := New(log.NewNop(), &fakeStreamer{body: io.NopCloser(strings.NewReader(chunk("only")))}, recorder, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(nil)))
	require.Len(t, events, 3)
	assert.Equal(t, model.EventDone, events[2].Type)
	assert.Equal(t, []string{"only"}, recorder.texts)
}

func TestStream_TransportErrorEmitsFallback(t *testing.T) {
	body := &erroringBody{r: strings.NewReader(chunk("partial")), err: errors.New("connection reset")}
	recorder := &fakeRecorder{}
	called := false
	uc := New(log.NewNop(), &fakeStreamer{body: body}, recorder, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(func(string) { called = true })))

	require.NotEmpty(t, events)
	var errorEvents int
	for _, ev := range events {
		if ev.Type == model.EventError {
			errorEvents++
			assert.Equal(t, model.FallbackMessage, ev.Message)
		}
		assert.NotEqual(t, model.EventSources, ev.Type)
	}
	assert.Equal(t, 1, errorEvents)
	assert.Equal(t, model.EventDone, events[len(events)-1].Type)
	assert.Empty(t, recorder.texts)
	assert.False(t, called)
}

func TestStream_OpenFailureEmitsFallback(t *testing.T) {
	recorder := &fakeRecorder{}
	uc := New(log.NewNop(), &fakeStreamer{err: llmprovider.ErrAllProvidersFailed}, recorder, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(nil)))
	assert.Equal(t, []model.Event{
		{Type: model.EventError, Message: model.FallbackMessage},
		{Type: model.EventDone},
	}, events)
	assert.Empty(t, recorder.texts)
}

func TestStream_PersistFailureSkipsCompletion(t *testing.T) {
	body := chunk("answer") + "data: [DONE]\n\n"
	called := false
	uc := New(log.NewNop(), &fakeStreamer{body: io.NopCloser(strings.NewReader(body))},
		&fakeRecorder{err: errors.New("qdrant down")}, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(func(string) { called = true })))

	require.Len(t, events, 3)
	assert.Equal(t, model.EventDelta, events[0].Type)
	assert.Equal(t, model.EventError, events[1].Type)
	assert.Equal(t, model.EventDone, events[2].Type)
	assert.False(t, called)
}

func TestStream_CancelClosesTransport(t *testing.T) {
	body := newBlockingBody()
	recorder := &fakeRecorder{}
	uc := New(log.NewNop(), &fakeStreamer{body: body}, recorder, completion.Config{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ch := uc.Stream(ctx, input(nil))
	cancel()

	events := collect(t, ch)
	assert.Empty(t, events)
	select {
	case <-body.closed:
	default:
		t.Error("transport body was not closed")
	}
	assert.Empty(t, recorder.texts)
}

func TestStream_EmptyAnswerNotPersisted(t *testing.T) {
	recorder := &fakeRecorder{}
	called := false
	uc := New(log.NewNop(), &fakeStreamer{body: io.NopCloser(strings.NewReader("data: [DONE]\n\n"))}, recorder, completion.Config{}, nil)

	events := collect(t, uc.Stream(context.Background(), input(func(string) { called = true })))
	require.Len(t, events, 2)
	assert.Equal(t, model.EventSources, events[0].Type)
	assert.Empty(t, recorder.texts)
	assert.False(t, called)
}
