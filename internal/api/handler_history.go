package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HistoryEntryResponse is one accepted event in the history listing.
type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	GymID     string    `json:"gymId"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// GetHistory handles GET /api/gyms/{gym_id}/history. Entries come back
// newest first; limit defaults to the configured history window.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := h.cfg.Occupancy.HistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events, err := h.store.ListHistory(c.Request.Context(), c.Param("gym_id"), limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, please retry"})
		return
	}

	entries := make([]HistoryEntryResponse, 0, len(events))
	for _, ev := range events {
		entries = append(entries, HistoryEntryResponse{
			ID:        ev.ID,
			GymID:     ev.GymID,
			UserID:    ev.UserID,
			Type:      string(ev.Type),
			Timestamp: ev.Timestamp,
		})
	}
	c.JSON(http.StatusOK, entries)
}
