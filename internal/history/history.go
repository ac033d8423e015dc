// Package history keeps the bounded, ordered turn log of the running conversation.
package history

import (
	"strings"
	"sync"

	"recall-assistant/internal/model"
)

const (
	DefaultCap    = 6
	DefaultTrim   = 4
	DefaultWindow = 4
)

// Config bounds the store.
// Once an append pushes the length past Cap, the Trim oldest turns are dropped
// (more if needed to get back under Cap).
type Config struct {
	Cap    int
	Trim   int
	Window int
}

// Store is an append-only turn log owned by one conversation pipeline.
type Store struct {
	mu     sync.RWMutex
	turns  []model.Turn
	cap    int
	trim   int
	window int
}

// New creates an empty store. Zero values fall back to the defaults.
func New(cfg Config) *Store {
	if cfg.Cap <= 0 {
		cfg.Cap = DefaultCap
	}
	if cfg.Trim <= 0 {
		cfg.Trim = DefaultTrim
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	return &Store{
		turns:  make([]model.Turn, 0, cfg.Cap+1),
		cap:    cfg.Cap,
		trim:   cfg.Trim,
		window: cfg.Window,
	}
}

// Append adds a turn at the end of the log.
func (s *Store) Append(turn model.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
	if len(s.turns) <= s.cap {
		return
	}

	drop := s.trim
	if over := len(s.turns) - s.cap; over > drop {
		drop = over
	}
	if drop > len(s.turns) {
		drop = len(s.turns)
	}
	kept := make([]model.Turn, len(s.turns)-drop, s.cap+1)
	copy(kept, s.turns[drop:])
	s.turns = kept
}

// Turns returns a copy of every stored turn, oldest first.
func (s *Store) Turns() []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Window returns the most recent turns used for prompting, oldest first.
func (s *Store) Window() []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.turns) - s.window
	if start < 0 {
		start = 0
	}
	out := make([]model.Turn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out
}

// UserText joins the content of every stored user turn with blank lines.
func (s *Store) UserText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := make([]string, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Role == model.RoleUser {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Len returns the number of stored turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
