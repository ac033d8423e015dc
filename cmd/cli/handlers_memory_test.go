package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"recall-assistant/internal/memory"
	"recall-assistant/internal/model"
)

type fakeMemory struct {
	stored []string
	fail   map[string]bool
}

func (f *fakeMemory) Remember(ctx context.Context, sc model.Scope, text string) (string, error) {
	if f.fail[text] {
		return "", memory.ErrMemoryUnavailable
	}
	f.stored = append(f.stored, text)
	return "id", nil
}

func (f *fakeMemory) Recall(ctx context.Context, sc model.Scope, text string) ([]model.Match, error) {
	return nil, errors.New("not used")
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("first line\r\ncontinues here\n\n\n  second  \n\n")
	assert.Equal(t, []string{"first line continues here", "second"}, got)
	assert.Empty(t, splitParagraphs(" \n\n "))
}

func TestImportParagraphs(t *testing.T) {
	mem := &fakeMemory{fail: map[string]bool{"bad": true}}
	var out bytes.Buffer

	stored, failed := importParagraphs(context.Background(), mem, model.Scope{UserID: "u"}, []string{"a", "bad", "c"}, &out)

	assert.Equal(t, 2, stored)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a", "c"}, mem.stored)
	assert.Contains(t, out.String(), "[2] failed")
}

func TestPrintMatches(t *testing.T) {
	var out bytes.Buffer
	printMatches(&out, nil)
	assert.Equal(t, "No memories found.\n", out.String())

	out.Reset()
	printMatches(&out, []model.Match{
		{Score: 0.91234, Metadata: map[string]interface{}{"content": "likes hiking"}},
		{Score: 0.5, Metadata: map[string]interface{}{}},
	})
	assert.Equal(t, "0.912  likes hiking\n0.500  (no content)\n", out.String())
}
