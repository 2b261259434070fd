package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"gym-occupancy-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	cfg := h.cfg
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	auth := mw.Auth(cfg.Auth.JWTSecret)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Read paths, open to anyone with the link.
		api.GET("/gyms/:gym_id", h.GetGym)
		api.GET("/gyms/:gym_id/occupancy", h.GetOccupancy)
		api.GET("/gyms/:gym_id/occupancy/stream", h.StreamOccupancy)
		api.GET("/gyms/:gym_id/history", h.GetHistory)
		api.GET("/gyms/stream", h.StreamAllOccupancy)

		// Gym list is served from cache except for the per-member view,
		// which depends on the caller.
		api.GET("/gyms", skipCacheForMine(caching), mw.AuthOptional(cfg.Auth.JWTSecret), h.ListGyms)

		// Mutations require an authenticated member.
		api.POST("/gyms", auth, h.CreateGym)
		api.PATCH("/gyms/:gym_id/capacity", auth, h.UpdateCapacity)
		api.POST("/gyms/:gym_id/scan", auth, h.Scan)

		// Push subscription management.
		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}

func skipCacheForMine(caching gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("mine") == "true" {
			c.Next()
			return
		}
		caching(c)
	}
}
