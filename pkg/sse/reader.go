package sse

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// DoneSentinel terminates OpenAI-style completion streams.
const DoneSentinel = "[DONE]"

const maxFrameSize = 4 * 1024 * 1024

// Frame is one blank-line delimited server-sent event.
type Frame struct {
	Event   string
	Data    string
	HasData bool
	Raw     string
}

// IsDone reports whether the frame carries the end-of-stream sentinel.
func (f Frame) IsDone() bool {
	return f.HasData && strings.TrimSpace(f.Data) == DoneSentinel
}

// Reader splits a byte stream into Frames.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r. The caller keeps ownership of r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	scanner.Split(splitFrames)
	return &Reader{scanner: scanner}
}

// Next returns the next non-empty frame, or io.EOF once the stream ends cleanly.
// Any other error comes from the underlying transport.
func (r *Reader) Next() (Frame, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		return parseFrame(raw), nil
	}
	if err := r.scanner.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

func parseFrame(raw string) Frame {
	f := Frame{Raw: raw}
	var data []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case line == "" || strings.HasPrefix(line, ":"):
			continue
		case strings.HasPrefix(line, "data:"):
			f.HasData = true
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case strings.HasPrefix(line, "event:"):
			f.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		}
	}
	f.Data = strings.Join(data, "\n")
	return f
}

// splitFrames is a bufio.SplitFunc yielding chunks separated by a blank line.
func splitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i, n := blankLine(data); i >= 0 {
		return i + n, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func blankLine(data []byte) (int, int) {
	lf := bytes.Index(data, []byte("\n\n"))
	crlf := bytes.Index(data, []byte("\r\n\r\n"))
	switch {
	case lf < 0:
		return crlf, 4
	case crlf < 0 || lf < crlf:
		return lf, 2
	default:
		return crlf, 4
	}
}
