package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recall-assistant/internal/model"
	"recall-assistant/pkg/llmprovider"
	"recall-assistant/pkg/log"
)

type fakeGenerator struct {
	content string
	err     error
	calls   int
	lastReq *llmprovider.Request
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: f.content}, nil
}

func TestPlan(t *testing.T) {
	const query = "Who won the Super Bowl in 2020?"

	tests := []struct {
		name       string
		reply      string
		err        error
		wantSearch string // empty means AnswerDirectly(query)
	}{
		{name: "search", reply: `{"search": "Super Bowl 2020 winner"}`, wantSearch: "Super Bowl 2020 winner"},
		{name: "search in fence", reply: "```json\n{\"search\": \"Super Bowl 2020\"}\n```", wantSearch: "Super Bowl 2020"},
		{name: "leading and trailing chatter", reply: "Sure!\n{\"search\": \"sb 2020\"} hope that helps", wantSearch: "sb 2020"},
		{name: "text", reply: `{"text": "Who won the Super Bowl in 2020?"}`},
		{name: "text differs from query", reply: `{"text": "something else"}`},
		{name: "both fields", reply: `{"text": "x", "search": "y"}`},
		{name: "neither field", reply: `{"answer": "y"}`},
		{name: "empty search", reply: `{"search": "   "}`},
		{name: "null search", reply: `{"search": null}`},
		{name: "malformed", reply: `{"search": "unterminated`},
		{name: "not json", reply: `search for it`},
		{name: "empty reply", reply: ""},
		{name: "llm error", err: errors.New("boom")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{content: tc.reply, err: tc.err}
			p := New(gen, Config{}, log.NewNop(), nil)

			plan := p.Plan(context.Background(), query)

			phrase, isSearch := plan.Phrase()
			text, isText := plan.Text()
			if isSearch == isText {
				t.Fatalf("plan must be exactly one variant, got search=%v text=%v", isSearch, isText)
			}
			if tc.wantSearch != "" {
				if !isSearch || phrase != tc.wantSearch {
					t.Errorf("Plan() = search %q (%v), want search %q", phrase, isSearch, tc.wantSearch)
				}
				return
			}
			if !isText || text != query {
				t.Errorf("Plan() = text %q (%v), want AnswerDirectly(%q)", text, isText, query)
			}
		})
	}
}

func TestPlan_BlankQuerySkipsLLM(t *testing.T) {
	gen := &fakeGenerator{content: `{"search": "x"}`}
	p := New(gen, Config{}, log.NewNop(), nil)

	for _, q := range []string{"", "   \n"} {
		plan := p.Plan(context.Background(), q)
		if text, ok := plan.Text(); !ok || text != q {
			t.Errorf("Plan(%q) = %v, want AnswerDirectly", q, plan)
		}
	}
	if gen.calls != 0 {
		t.Errorf("LLM called %d times for blank queries", gen.calls)
	}
}

func TestPlan_RequestParameters(t *testing.T) {
	gen := &fakeGenerator{content: `{"text": "hi"}`}
	p := New(gen, Config{Temperature: 0}, log.NewNop(), nil)
	p.Plan(context.Background(), "hello there")

	req := gen.lastReq
	if req == nil {
		t.Fatal("no request sent")
	}
	if req.Temperature != 0 || req.MaxTokens != DefaultMaxTokens {
		t.Errorf("temperature=%v max_tokens=%d", req.Temperature, req.MaxTokens)
	}
	if len(req.Messages) != 1 || !strings.HasSuffix(req.Messages[0].Content, "User query: hello there\n") {
		t.Errorf("unexpected prompt: %+v", req.Messages)
	}
}

func TestDecodePlan_Kind(t *testing.T) {
	plan, reason := decodePlan(`{"search":"go generics"}`, "q")
	if reason != "" || plan.Kind() != model.PlanSearch {
		t.Fatalf("decodePlan() = %v, %q", plan, reason)
	}
}
