package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOccupancy handles GET /api/gyms/{gym_id}/occupancy. A missing gym
// reads as empty so observers never error on a stale link.
func (h *Handler) GetOccupancy(c *gin.Context) {
	count, err := h.store.GetOccupancy(c.Request.Context(), c.Param("gym_id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// StreamOccupancy handles GET /api/gyms/{gym_id}/occupancy/stream as a
// server-sent event stream: one snapshot on connect, then the new count
// after every committed event until the client disconnects.
func (h *Handler) StreamOccupancy(c *gin.Context) {
	gymID := c.Param("gym_id")

	counts, cancel := h.hub.Subscribe(gymID)
	defer cancel()

	snapshot, err := h.store.GetOccupancy(c.Request.Context(), gymID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, please retry"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("count", snapshot)
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case count, ok := <-counts:
			if !ok {
				return false
			}
			c.SSEvent("count", count)
			return true
		}
	})
}

type occupancyUpdate struct {
	GymID string `json:"gymId"`
	Count int    `json:"count"`
}

// StreamAllOccupancy handles GET /api/gyms/stream for directory views
// like the map: every committed event anywhere produces one update.
func (h *Handler) StreamAllOccupancy(c *gin.Context) {
	updates, cancel := h.hub.SubscribeAll()
	defer cancel()

	c.Header("Cache-Control", "no-cache")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("occupancy", occupancyUpdate{GymID: update.GymID, Count: update.Count})
			return true
		}
	})
}
