package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recall-assistant/pkg/response"
)

// Submit godoc
// @Summary     Ask a question
// @Description Runs one conversation turn and streams it as server-sent events.
// @Description Events: delta (answer text), sources (cited URLs), error, reset, done.
// @Tags        Chat
// @Accept      json
// @Produce     text/event-stream
// @Param       body body submitReq true "User query"
// @Success     200  {object} model.Event "Event stream"
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat [POST]
func (h *handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSubmitReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	events, err := h.uc.Submit(ctx, h.scope, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Submit: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	// The channel closes once the turn ends or the client goes away.
	for ev := range events {
		c.SSEvent(string(ev.Type), ev)
		c.Writer.Flush()
	}
}

// Reset godoc
// @Summary     Reset the conversation turn
// @Description Cancels the turn in flight. History is kept.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Success     200 {object} resetResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/reset [POST]
func (h *handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Reset(ctx, h.scope)
	if err != nil {
		h.l.Errorf(ctx, "uc.Reset: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newResetResp(output))
}
