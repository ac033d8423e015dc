package http

import (
	"recall-assistant/internal/chat"
	"recall-assistant/internal/model"
	"recall-assistant/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    chat.UseCase
	scope model.Scope
}

// New creates the chat HTTP handler. Every request runs under sc, the installation identity.
func New(l log.Logger, uc chat.UseCase, sc model.Scope) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		scope: sc,
	}
}
