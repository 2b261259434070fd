package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gym-occupancy-backend/internal/metrics"
	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/mw"
	"gym-occupancy-backend/internal/occupancy"
	"gym-occupancy-backend/internal/store"
)

type scanRequest struct {
	Type model.EventType `json:"type" binding:"required"`
	// LastScanAt is the client-held cooldown marker for this gym. The
	// advisory guard runs only when the client supplies it.
	LastScanAt *time.Time `json:"last_scan_at"`
}

type scanResponse struct {
	EventID      string    `json:"eventId"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	CurrentCount int       `json:"currentCount"`
	Capacity     int       `json:"capacity"`
}

// Scan handles POST /api/gyms/{gym_id}/scan. It applies the advisory
// cooldown, runs the occupancy transaction and maps each rejection to an
// actionable message, since duplicates and full gyms are expected states
// rather than failures.
func (h *Handler) Scan(c *gin.Context) {
	gymID := c.Param("gym_id")
	actor := mw.ActorID(c)

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be IN or OUT"})
		return
	}

	if req.LastScanAt != nil &&
		!occupancy.CanScanAgain(*req.LastScanAt, time.Now(), h.cfg.Occupancy.Cooldown) {
		metrics.ScansTotal.WithLabelValues(string(req.Type), "cooldown").Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "you are scanning too quickly; please wait a couple of minutes and try again",
		})
		return
	}

	gym, event, err := h.store.RecordEvent(c.Request.Context(), gymID, req.Type, actor)
	if err != nil {
		h.renderScanError(c, req.Type, err)
		return
	}

	metrics.ScansTotal.WithLabelValues(string(req.Type), "accepted").Inc()
	h.hub.Publish(gym.ID, gym.CurrentCount)

	// A full gym just freed a spot: tell the members waiting for one.
	if req.Type == model.EventOut && gym.Capacity > 0 && gym.CurrentCount == gym.Capacity-1 {
		h.pool.Dispatch(gym.ID)
	}

	c.JSON(http.StatusOK, scanResponse{
		EventID:      event.ID,
		Type:         string(event.Type),
		Timestamp:    event.Timestamp,
		CurrentCount: gym.CurrentCount,
		Capacity:     gym.Capacity,
	})
}

func (h *Handler) renderScanError(c *gin.Context, eventType model.EventType, err error) {
	switch {
	case errors.Is(err, occupancy.ErrGymNotFound):
		metrics.ScansTotal.WithLabelValues(string(eventType), "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, occupancy.ErrDuplicateEntry), errors.Is(err, occupancy.ErrDuplicateExit):
		metrics.ScansTotal.WithLabelValues(string(eventType), "duplicate").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, occupancy.ErrCapacityExceeded):
		metrics.ScansTotal.WithLabelValues(string(eventType), "capacity").Inc()
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrUnavailable):
		metrics.ScansTotal.WithLabelValues(string(eventType), "error").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, please retry"})
	default:
		metrics.ScansTotal.WithLabelValues(string(eventType), "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
	}
}
