package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gym-occupancy-backend/internal/model"
)

func TestApplyEvent(t *testing.T) {
	testCases := []struct {
		name      string
		active    []string
		eventType model.EventType
		userID    string
		expected  []string
	}{
		{
			name:      "IN adds a new member to an empty set",
			active:    []string{},
			eventType: model.EventIn,
			userID:    "u1",
			expected:  []string{"u1"},
		},
		{
			name:      "IN is a no-op for a member already inside",
			active:    []string{"u1"},
			eventType: model.EventIn,
			userID:    "u1",
			expected:  []string{"u1"},
		},
		{
			name:      "OUT removes a member who is inside",
			active:    []string{"u1", "u2"},
			eventType: model.EventOut,
			userID:    "u1",
			expected:  []string{"u2"},
		},
		{
			name:      "OUT is a no-op for a member already outside",
			active:    []string{"u2"},
			eventType: model.EventOut,
			userID:    "u1",
			expected:  []string{"u2"},
		},
		{
			name:      "IN preserves insertion order",
			active:    []string{"u1", "u2"},
			eventType: model.EventIn,
			userID:    "u3",
			expected:  []string{"u1", "u2", "u3"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ApplyEvent(tc.active, tc.eventType, tc.userID)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestApplyEventIsIdempotentForIN(t *testing.T) {
	once := ApplyEvent([]string{"u1"}, model.EventIn, "u2")
	twice := ApplyEvent(once, model.EventIn, "u2")
	assert.Equal(t, once, twice)
}

func TestApplyEventOutInvertsIn(t *testing.T) {
	initial := []string{"u1", "u2"}
	entered := ApplyEvent(initial, model.EventIn, "u3")
	left := ApplyEvent(entered, model.EventOut, "u3")
	assert.Equal(t, initial, left)
}

func TestApplyEventDoesNotMutateInput(t *testing.T) {
	active := []string{"u1", "u2"}

	ApplyEvent(active, model.EventIn, "u3")
	assert.Equal(t, []string{"u1", "u2"}, active)

	ApplyEvent(active, model.EventOut, "u1")
	assert.Equal(t, []string{"u1", "u2"}, active)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"u1", "u2"}, "u2"))
	assert.False(t, Contains([]string{"u1", "u2"}, "u3"))
	assert.False(t, Contains(nil, "u1"))
}

func TestLevel(t *testing.T) {
	testCases := []struct {
		name     string
		count    int
		capacity int
		expected string
	}{
		{"no capacity reads gray", 10, 0, "gray"},
		{"negative capacity reads gray", 10, -1, "gray"},
		{"empty gym is green", 0, 10, "green"},
		{"thirty percent is still green", 3, 10, "green"},
		{"sixty percent is yellow", 6, 10, "yellow"},
		{"eighty percent is orange", 8, 10, "orange"},
		{"above eighty percent is red", 9, 10, "red"},
		{"full gym is red", 10, 10, "red"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Level(tc.count, tc.capacity))
		})
	}
}
