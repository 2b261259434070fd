package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"gym-occupancy-backend/config"
	"gym-occupancy-backend/internal/notification"
	"gym-occupancy-backend/internal/notify"
	"gym-occupancy-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	hub     *notify.Hub
	pool    *notification.WorkerPool
	webpush *webpush.Options
	cfg     *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, hub *notify.Hub, pool *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.Config) *Handler {
	return &Handler{
		store:   s,
		hub:     hub,
		pool:    pool,
		webpush: webpushOptions,
		cfg:     cfg,
	}
}
