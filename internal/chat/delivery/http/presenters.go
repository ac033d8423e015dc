package http

import (
	"strings"

	"recall-assistant/internal/chat"
)

// --- Request DTOs ---

type submitReq struct {
	Query string `json:"query"`
}

func (r submitReq) validate() error {
	if len([]rune(r.Query)) > chat.MaxQueryLength {
		return errQueryTooLong
	}
	return nil
}

func (r submitReq) toInput() chat.SubmitInput {
	return chat.SubmitInput{Query: strings.TrimSpace(r.Query)}
}

// --- Response DTOs ---

type resetResp struct {
	Cancelled bool `json:"cancelled"`
}

func (h *handler) newResetResp(o chat.ResetOutput) resetResp {
	return resetResp{Cancelled: o.Cancelled}
}
