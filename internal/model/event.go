package model

import "time"

// EventType is the direction of a scan.
type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// Valid reports whether t is a recognized event type.
func (t EventType) Valid() bool {
	return t == EventIn || t == EventOut
}

// GymEvent is one accepted check-in or check-out. Rows are append-only:
// created exactly once inside the same transaction that mutates the gym
// record, never updated or deleted.
type GymEvent struct {
	ID        string    `gorm:"primaryKey;size:36"`
	GymID     string    `gorm:"size:36;not null;index:idx_gym_events_gym_time"`
	UserID    string    `gorm:"size:64;not null"`
	Type      EventType `gorm:"size:8;not null"`
	Timestamp time.Time `gorm:"not null;index:idx_gym_events_gym_time"`
}
