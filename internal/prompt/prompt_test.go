package prompt

import (
	"reflect"
	"strings"
	"testing"

	"recall-assistant/internal/model"
)

func user(s string) model.Turn      { return model.Turn{Role: model.RoleUser, Content: s} }
func assistant(s string) model.Turn { return model.Turn{Role: model.RoleAssistant, Content: s} }

func TestAssemble_NoSources(t *testing.T) {
	window := []model.Turn{user("hi"), assistant("hello"), user("what is go?")}
	matches := []model.Match{
		{ID: "1", Metadata: map[string]interface{}{"content": "Go is a language.", "user": "u"}},
		{ID: "2", Metadata: map[string]interface{}{"user": "u"}},
		{ID: "3", Metadata: map[string]interface{}{"content": 42}},
		{ID: "4", Metadata: map[string]interface{}{"content": "Second best."}},
	}

	got := Assemble("", matches, window, "what is go?", nil)
	want := []model.Turn{
		{Role: model.RoleSystem, Content: DefaultPreamble},
		assistant("Go is a language."),
		assistant("Second best."),
		user("hi"),
		assistant("hello"),
		user("what is go?"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Assemble() =\n%v\nwant\n%v", got, want)
	}
}

func TestAssemble_FinalTurnIsQueryVerbatim(t *testing.T) {
	got := Assemble("sys", nil, nil, "  spaced query  ", nil)
	last := got[len(got)-1]
	if last.Role != model.RoleUser || last.Content != "  spaced query  " {
		t.Errorf("final turn = %+v", last)
	}
	if got[0].Content != "sys" {
		t.Errorf("preamble = %q", got[0].Content)
	}
}

func TestAssemble_MatchesWithoutContentAreSkipped(t *testing.T) {
	matches := []model.Match{
		{ID: "1", Metadata: map[string]interface{}{"user": "u"}},
		{ID: "2", Metadata: nil},
		{ID: "3", Metadata: map[string]interface{}{"text": "x"}},
	}
	got := Assemble("", matches, []model.Turn{user("q")}, "q", nil)
	if len(got) != 2 {
		t.Errorf("Assemble() = %v, want system + query only", got)
	}
}

func TestAssemble_WithSources(t *testing.T) {
	sources := []model.Source{
		{URL: "https://a.example", Text: "alpha text"},
		{URL: "https://b.example", Text: "beta text"},
	}
	got := Assemble("", nil, []model.Turn{user("prev"), assistant("ans"), user("who won?")}, "who won?", sources)

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4: %v", len(got), got)
	}
	last := got[3]
	if last.Role != model.RoleUser {
		t.Fatalf("final role = %s", last.Role)
	}
	for _, want := range []string{
		"User query: who won?",
		"Cite sources as [1] or [2] or [3] after each sentence",
		"Correct: [2][3], Incorrect: [1, 2]",
		"Source [1]:\nalpha text\n\nSource [2]:\nbeta text",
	} {
		if !strings.Contains(last.Content, want) {
			t.Errorf("citation prompt missing %q:\n%s", want, last.Content)
		}
	}
	if got[1].Content != "prev" || got[2].Content != "ans" {
		t.Errorf("history not preserved: %v", got)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	matches := []model.Match{{ID: "1", Metadata: map[string]interface{}{"content": "m"}}}
	window := []model.Turn{user("a"), assistant("b"), user("c")}
	sources := []model.Source{{URL: "u", Text: "t"}}

	first := Assemble("", matches, window, "c", sources)
	for i := 0; i < 10; i++ {
		if got := Assemble("", matches, window, "c", sources); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
	if window[2].Content != "c" {
		t.Error("Assemble mutated its input")
	}
}

func TestSourceURLs(t *testing.T) {
	got := SourceURLs([]model.Source{{URL: "a"}, {URL: "b"}, {URL: "a"}})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SourceURLs() = %v", got)
	}
	if got := SourceURLs(nil); len(got) != 0 {
		t.Errorf("SourceURLs(nil) = %v", got)
	}
}
