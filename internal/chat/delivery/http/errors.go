package http

import (
	"errors"
	"net/http"

	"recall-assistant/internal/chat"
	pkgErrors "recall-assistant/pkg/errors"
)

var errQueryTooLong = pkgErrors.NewHTTPError(http.StatusBadRequest, "query is too long")

// mapError translates chat errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrQueryTooLong):
		return errQueryTooLong
	case errors.Is(err, chat.ErrMissingUser):
		return pkgErrors.NewHTTPError(http.StatusUnauthorized, "installation identity is not configured")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
