package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"quadro-backend/internal/notification"
	"quadro-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	pool    *notification.WorkerPool
	webpush *webpush.Options
	topIdle int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, pool *notification.WorkerPool, webpushOptions *webpush.Options, topIdle int) *Handler {
	return &Handler{
		store:   s,
		pool:    pool,
		webpush: webpushOptions,
		topIdle: topIdle,
	}
}
