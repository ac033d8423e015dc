package completion

import "errors"

var (
	ErrOpenStream = errors.New("completion: could not open stream")
	ErrTransport  = errors.New("completion: stream transport failed")
	ErrPersist    = errors.New("completion: could not persist answer")
)
