package chat

import "errors"

var (
	ErrQueryTooLong = errors.New("query too long")
	ErrMissingUser  = errors.New("missing user identity")
)
