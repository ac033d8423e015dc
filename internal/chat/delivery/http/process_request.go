package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "recall-assistant/pkg/errors"
)

func (h *handler) processSubmitReq(c *gin.Context) (submitReq, error) {
	ctx := c.Request.Context()

	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "internal.chat.delivery.http.processSubmitReq: ShouldBindJSON: %v", err)
		return req, pkgErrors.ErrBadRequest
	}

	if err := req.validate(); err != nil {
		return req, err
	}

	return req, nil
}
