package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"recall-assistant/pkg/log"
	pkgQdrant "recall-assistant/pkg/qdrant"
)

type fakeQdrant struct {
	mu          sync.Mutex
	exists      bool
	getCalls    atomic.Int32
	created     atomic.Int32
	indexed     []string
	upserts     []pkgQdrant.Point
	lastSearch  map[string]interface{}
	searchReply string
}

func (f *fakeQdrant) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections/memory":
			f.getCalls.Add(1)
			if !f.exists {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"status":{"error":"Not found"}}`))
				return
			}
			w.Write([]byte(`{"result":{"status":"green","points_count":0}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/memory":
			f.created.Add(1)
			f.exists = true
			w.Write([]byte(`{"result":true}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/memory/index":
			var body pkgQdrant.PayloadIndexRequest
			json.NewDecoder(r.Body).Decode(&body)
			f.indexed = append(f.indexed, body.FieldName)
			w.Write([]byte(`{"result":{"status":"completed"}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/collections/memory/points":
			var body pkgQdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&body)
			f.upserts = append(f.upserts, body.Points...)
			w.Write([]byte(`{"result":{"status":"completed"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/collections/memory/points/search":
			json.NewDecoder(r.Body).Decode(&f.lastSearch)
			w.Write([]byte(f.searchReply))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestRepo(t *testing.T, f *fakeQdrant) (*implRepository, func()) {
	srv := httptest.NewServer(f.handler(t))
	repo := New(pkgQdrant.NewClient(srv.URL), Config{CollectionName: "memory", VectorSize: 3}, log.NewNop())
	return repo.(*implRepository), srv.Close
}

func TestWrite_InitializesOnceAndStoresPayload(t *testing.T) {
	f := &fakeQdrant{}
	repo, done := newTestRepo(t, f)
	defer done()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Write(context.Background(), []float32{0.1, 0.2, 0.3}, "answer", "user-1"); err != nil {
				t.Errorf("Write() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if f.getCalls.Load() != 1 || f.created.Load() != 1 {
		t.Errorf("init ran get=%d create=%d times, want once", f.getCalls.Load(), f.created.Load())
	}
	if strings.Join(f.indexed, ",") != "user,namespace" {
		t.Errorf("indexed fields = %v", f.indexed)
	}
	if len(f.upserts) != 5 {
		t.Fatalf("upserts = %d, want 5", len(f.upserts))
	}

	seen := map[interface{}]bool{}
	for _, p := range f.upserts {
		if seen[p.ID] {
			t.Errorf("duplicate id %v", p.ID)
		}
		seen[p.ID] = true
		if p.Payload["user"] != "user-1" || p.Payload["content"] != "answer" || p.Payload["namespace"] != "messages" {
			t.Errorf("payload = %v", p.Payload)
		}
	}
}

func TestWrite_InitFailureDegrades(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if strings.HasSuffix(r.URL.Path, "/points") {
			w.Write([]byte(`{"result":{}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := New(pkgQdrant.NewClient(srv.URL), Config{CollectionName: "memory", VectorSize: 3}, log.NewNop())
	if _, err := repo.Write(context.Background(), []float32{1, 2, 3}, "x", "u"); err != nil {
		t.Fatalf("Write() error = %v, want the write to be attempted", err)
	}
	if _, err := repo.Write(context.Background(), []float32{1, 2, 3}, "y", "u"); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	// one failed GET, then two upserts: init is not retried
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestQuery_FiltersByUserAndNamespace(t *testing.T) {
	f := &fakeQdrant{
		exists: true,
		searchReply: `{"result":[
			{"id":"a","score":0.92,"payload":{"user":"user-1","content":"first"},"vector":[0.1,0.2,0.3]},
			{"id":7,"score":0.80,"payload":{"user":"user-1"}}
		]}`,
	}
	repo, done := newTestRepo(t, f)
	defer done()

	matches, err := repo.Query(context.Background(), []float32{0.1, 0.2, 0.3}, "user-1", 3)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if f.created.Load() != 0 {
		t.Error("existing collection must not be recreated")
	}
	if f.lastSearch["limit"].(float64) != 3 || f.lastSearch["with_vector"] != true || f.lastSearch["with_payload"] != true {
		t.Errorf("search body = %v", f.lastSearch)
	}
	raw, _ := json.Marshal(f.lastSearch["filter"])
	for _, want := range []string{`"key":"namespace"`, `"value":"messages"`, `"key":"user"`, `"value":"user-1"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("filter %s missing %s", raw, want)
		}
	}

	if len(matches) != 2 || matches[0].ID != "a" || matches[1].ID != "7" {
		t.Fatalf("matches = %+v", matches)
	}
	if c, ok := matches[0].Content(); !ok || c != "first" {
		t.Errorf("matches[0].Content() = %q, %v", c, ok)
	}
	if _, ok := matches[1].Content(); ok {
		t.Error("matches[1] has no content field")
	}
	if len(matches[0].Vector) != 3 {
		t.Errorf("vector = %v", matches[0].Vector)
	}
}

func TestQuery_BackendErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"result":{}}`))
			return
		}
		if strings.HasSuffix(r.URL.Path, "/index") {
			w.Write([]byte(`{"result":{}}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	repo := New(pkgQdrant.NewClient(srv.URL), Config{CollectionName: "memory", VectorSize: 3}, log.NewNop())
	if _, err := repo.Query(context.Background(), []float32{1}, "u", 3); err == nil {
		t.Error("Query() error = nil, want backend error")
	}
}
