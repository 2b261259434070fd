package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gym-occupancy-backend/internal/model"
	"gym-occupancy-backend/internal/occupancy"
)

// ErrUnavailable wraps storage failures that are not business-rule
// rejections. Callers may retry these at their own discretion; the store
// never retries on its own.
var ErrUnavailable = errors.New("storage unavailable")

// GymFilter narrows ListGyms results.
type GymFilter struct {
	// WithLocation keeps only gyms that carry map coordinates.
	WithLocation bool
	// MemberID keeps only gyms whose all-time roster contains this member.
	MemberID string
}

// Store defines the interface for all database operations.
type Store interface {
	// RecordEvent applies one IN/OUT scan to a gym as a single atomic
	// transaction and returns the updated gym and the appended event.
	RecordEvent(ctx context.Context, gymID string, eventType model.EventType, userID string) (*model.Gym, *model.GymEvent, error)

	// ListHistory returns up to limit accepted events for a gym, newest
	// first.
	ListHistory(ctx context.Context, gymID string, limit int) ([]model.GymEvent, error)

	// GetOccupancy returns the live count for a gym, 0 when the record is
	// absent.
	GetOccupancy(ctx context.Context, gymID string) (int, error)

	GetGym(ctx context.Context, gymID string) (*model.Gym, error)
	ListGyms(ctx context.Context, filter GymFilter) ([]model.Gym, error)
	CreateGym(ctx context.Context, gym *model.Gym) error
	UpdateCapacity(ctx context.Context, gymID string, capacity int) error

	// DB exposes the underlying handle for the subscription endpoints and
	// the notification worker.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RecordEvent is the authoritative occupancy transition. It reads the gym
// row under a write lock, applies the state machine, enforces capacity and
// writes back the new active set, the derived count and one history row.
// All writes commit together or not at all, so concurrent scans on the
// same gym are linearized by the database: the second of two simultaneous
// INs for one member observes the first's effect and is rejected.
func (s *gormStore) RecordEvent(ctx context.Context, gymID string, eventType model.EventType, userID string) (*model.Gym, *model.GymEvent, error) {
	if !eventType.Valid() {
		return nil, nil, fmt.Errorf("unknown event type %q", eventType)
	}

	var gym model.Gym
	var event model.GymEvent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&gym, "id = ?", gymID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return occupancy.ErrGymNotFound
			}
			return err
		}

		active := []string(gym.ActiveMemberIDs)

		switch eventType {
		case model.EventIn:
			if occupancy.Contains(active, userID) {
				return occupancy.ErrDuplicateEntry
			}
			newActive := occupancy.ApplyEvent(active, model.EventIn, userID)
			if gym.Capacity > 0 && len(newActive) > gym.Capacity {
				return occupancy.ErrCapacityExceeded
			}
			gym.ActiveMemberIDs = newActive
			gym.CurrentCount = len(newActive)
			if !occupancy.Contains(gym.MemberIDs, userID) {
				gym.MemberIDs = append(gym.MemberIDs, userID)
			}

		case model.EventOut:
			if !occupancy.Contains(active, userID) {
				return occupancy.ErrDuplicateExit
			}
			newActive := occupancy.ApplyEvent(active, model.EventOut, userID)
			gym.ActiveMemberIDs = newActive
			gym.CurrentCount = max(0, len(newActive))
		}

		if err := tx.Save(&gym).Error; err != nil {
			return fmt.Errorf("failed to update gym %s: %w", gymID, err)
		}

		event = model.GymEvent{
			ID:        uuid.NewString(),
			GymID:     gymID,
			UserID:    userID,
			Type:      eventType,
			Timestamp: time.Now().UTC(),
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to append event for gym %s: %w", gymID, err)
		}

		return nil
	})
	if err != nil {
		if occupancy.IsRejection(err) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &gym, &event, nil
}

// lockForUpdate adds a row lock on dialects that support it. SQLite has no
// FOR UPDATE syntax and serializes writing transactions anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (s *gormStore) ListHistory(ctx context.Context, gymID string, limit int) ([]model.GymEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var events []model.GymEvent
	err := s.db.WithContext(ctx).
		Where("gym_id = ?", gymID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return events, nil
}

func (s *gormStore) GetOccupancy(ctx context.Context, gymID string) (int, error) {
	var gym model.Gym
	err := s.db.WithContext(ctx).Select("current_count").First(&gym, "id = ?", gymID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Observers tolerate a missing record and report an empty gym.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return gym.CurrentCount, nil
}

func (s *gormStore) GetGym(ctx context.Context, gymID string) (*model.Gym, error) {
	var gym model.Gym
	err := s.db.WithContext(ctx).First(&gym, "id = ?", gymID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, occupancy.ErrGymNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &gym, nil
}

func (s *gormStore) ListGyms(ctx context.Context, filter GymFilter) ([]model.Gym, error) {
	var gyms []model.Gym
	if err := s.db.WithContext(ctx).Order("name").Find(&gyms).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Roster membership lives in a JSON column, so both filters are
	// applied in memory after the scan.
	filtered := make([]model.Gym, 0, len(gyms))
	for _, gym := range gyms {
		if filter.WithLocation && !gym.HasLocation() {
			continue
		}
		if filter.MemberID != "" && !occupancy.Contains(gym.MemberIDs, filter.MemberID) {
			continue
		}
		filtered = append(filtered, gym)
	}
	return filtered, nil
}

func (s *gormStore) CreateGym(ctx context.Context, gym *model.Gym) error {
	if gym.ID == "" {
		gym.ID = uuid.NewString()
	}
	if gym.ActiveMemberIDs == nil {
		gym.ActiveMemberIDs = model.StringList{}
	}
	if gym.MemberIDs == nil {
		gym.MemberIDs = model.StringList{}
	}
	gym.CurrentCount = 0

	if err := s.db.WithContext(ctx).Create(gym).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *gormStore) UpdateCapacity(ctx context.Context, gymID string, capacity int) error {
	res := s.db.WithContext(ctx).
		Model(&model.Gym{}).
		Where("id = ?", gymID).
		Update("capacity", capacity)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return occupancy.ErrGymNotFound
	}
	return nil
}
