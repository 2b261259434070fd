package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/mw"
	"gym-occupancy-backend/internal/occupancy"
	"gym-occupancy-backend/internal/store"
)

// GymSummary is the list/map representation of a gym.
type GymSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	CurrentCount int      `json:"currentCount"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Level        string   `json:"level"`
}

func summarize(gym model.Gym) GymSummary {
	return GymSummary{
		ID:           gym.ID,
		Name:         gym.Name,
		Capacity:     gym.Capacity,
		CurrentCount: gym.CurrentCount,
		Lat:          gym.Lat,
		Lng:          gym.Lng,
		Level:        occupancy.Level(gym.CurrentCount, gym.Capacity),
	}
}

type createGymRequest struct {
	Name     string   `json:"name" binding:"required"`
	Capacity *int     `json:"capacity"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// CreateGym handles POST /api/gyms. The authenticated member becomes the
// owner; a new gym starts empty.
func (h *Handler) CreateGym(c *gin.Context) {
	var req createGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capacity := h.cfg.Occupancy.DefaultCapacity
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must not be negative"})
			return
		}
		capacity = *req.Capacity
	}

	gym := model.Gym{
		Name:     req.Name,
		OwnerID:  mw.ActorID(c),
		Capacity: capacity,
		Lat:      req.Lat,
		Lng:      req.Lng,
	}
	if err := h.store.CreateGym(c.Request.Context(), &gym); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create gym"})
		return
	}

	c.JSON(http.StatusCreated, summarize(gym))
}

// GetGym handles GET /api/gyms/{gym_id}.
func (h *Handler) GetGym(c *gin.Context) {
	gym, err := h.store.GetGym(c.Request.Context(), c.Param("gym_id"))
	if err != nil {
		if errors.Is(err, occupancy.ErrGymNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve gym"})
		}
		return
	}
	c.JSON(http.StatusOK, summarize(*gym))
}

// ListGyms handles GET /api/gyms. ?with_location=true keeps only gyms
// that can be placed on the map; ?mine=true keeps gyms whose all-time
// roster contains the caller.
func (h *Handler) ListGyms(c *gin.Context) {
	filter := store.GymFilter{
		WithLocation: c.Query("with_location") == "true",
	}
	if c.Query("mine") == "true" {
		actor := mw.ActorID(c)
		if actor == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}
		filter.MemberID = actor
	}

	gyms, err := h.store.ListGyms(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve gyms"})
		return
	}

	summaries := make([]GymSummary, 0, len(gyms))
	for _, gym := range gyms {
		summaries = append(summaries, summarize(gym))
	}
	c.JSON(http.StatusOK, summaries)
}

type updateCapacityRequest struct {
	Capacity *int `json:"capacity" binding:"required"`
}

// UpdateCapacity handles PATCH /api/gyms/{gym_id}/capacity, owner only.
func (h *Handler) UpdateCapacity(c *gin.Context) {
	gymID := c.Param("gym_id")

	var req updateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must not be negative"})
		return
	}

	gym, err := h.store.GetGym(c.Request.Context(), gymID)
	if err != nil {
		if errors.Is(err, occupancy.ErrGymNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve gym"})
		}
		return
	}
	if gym.OwnerID != mw.ActorID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the gym owner can change its capacity"})
		return
	}

	if err := h.store.UpdateCapacity(c.Request.Context(), gymID, *req.Capacity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update capacity"})
		return
	}
	c.Status(http.StatusNoContent)
}
