package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, r io.Reader) []Frame {
	t.Helper()
	reader := NewReader(r)
	var frames []Frame
	for {
		f, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return frames
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		frames = append(frames, f)
	}
}

func TestReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantData []string
		wantDone []bool
	}{
		{
			name:     "openai stream",
			input:    "data: {\"a\":1}\n\ndata: {\"a\":2}\n\ndata: [DONE]\n\n",
			wantData: []string{`{"a":1}`, `{"a":2}`, "[DONE]"},
			wantDone: []bool{false, false, true},
		},
		{
			name:     "crlf delimiters",
			input:    "data: one\r\n\r\ndata: two\r\n\r\n",
			wantData: []string{"one", "two"},
			wantDone: []bool{false, false},
		},
		{
			name:     "multiline data and comments",
			input:    ": keep-alive\n\nevent: delta\ndata: a\ndata: b\n\n",
			wantData: []string{"", "a\nb"},
			wantDone: []bool{false, false},
		},
		{
			name:     "trailing frame without delimiter",
			input:    "data: x\n\ndata: y",
			wantData: []string{"x", "y"},
			wantDone: []bool{false, false},
		},
		{
			name:     "extra blank lines ignored",
			input:    "\n\n\n\ndata: x\n\n\n\n",
			wantData: []string{"x"},
			wantDone: []bool{false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frames := readAll(t, strings.NewReader(tc.input))
			if len(frames) != len(tc.wantData) {
				t.Fatalf("got %d frames, want %d: %+v", len(frames), len(tc.wantData), frames)
			}
			for i, f := range frames {
				if f.Data != tc.wantData[i] {
					t.Errorf("frame %d data = %q, want %q", i, f.Data, tc.wantData[i])
				}
				if f.IsDone() != tc.wantDone[i] {
					t.Errorf("frame %d IsDone = %v, want %v", i, f.IsDone(), tc.wantDone[i])
				}
			}
		})
	}
}

func TestReader_EventName(t *testing.T) {
	frames := readAll(t, strings.NewReader("event: sources\ndata: []\n\n"))
	if len(frames) != 1 || frames[0].Event != "sources" || !frames[0].HasData {
		t.Fatalf("unexpected frames: %+v", frames)
	}
}

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "data: first\n\n"), nil
	}
	return 0, errors.New("connection reset")
}

func TestReader_TransportError(t *testing.T) {
	reader := NewReader(&failingReader{})

	f, err := reader.Next()
	if err != nil || f.Data != "first" {
		t.Fatalf("expected first frame, got %+v, %v", f, err)
	}

	_, err = reader.Next()
	if err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
