package handler

import (
	"context"

	"github.com/msgboard/msgboard/backend/internal/service"
	"github.com/msgboard/msgboard/shared/config"
)

// HealthChecker reports whether the board store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	thread service.ThreadService
	reply  service.ReplyService
	health HealthChecker
	cfg    *config.Config
}

func New(thread service.ThreadService, reply service.ReplyService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{thread: thread, reply: reply, health: health, cfg: cfg}
}
