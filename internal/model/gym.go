package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a list of member identifiers as a JSON-encoded text
// column, so the whole set is read and written as part of the gym row and
// stays inside the row's transaction boundary.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported StringList source type %T", src)
	}
}

// Gym represents a tracked physical site. ActiveMemberIDs is the
// authoritative membership state; CurrentCount is recomputed from it on
// every committed event and must never be maintained independently.
type Gym struct {
	ID              string     `gorm:"primaryKey;size:36"`
	Name            string     `gorm:"size:256;not null"`
	OwnerID         string     `gorm:"size:64;index;not null"`
	Capacity        int        `gorm:"not null;default:0"` // 0 means unlimited
	CurrentCount    int        `gorm:"not null;default:0"`
	ActiveMemberIDs StringList `gorm:"type:text"`
	MemberIDs       StringList `gorm:"type:text"` // all-time roster, union only
	Lat             *float64
	Lng             *float64
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// HasLocation reports whether the gym carries map coordinates.
func (g *Gym) HasLocation() bool {
	return g.Lat != nil && g.Lng != nil
}
