// Package occupancy contains the pure check-in/check-out logic: the
// membership state machine, the advisory rescan cooldown and the shared
// rejection errors. Nothing here touches the database; the transactional
// wrapper lives in internal/store.
package occupancy

import "gym-occupancy-backend/internal/model"

// ApplyEvent computes the new active-member set for a gym. IN on a member
// already inside and OUT on a member already outside are no-ops at this
// level; the transaction executor is responsible for rejecting them. The
// input slice is never mutated and insertion order is preserved.
func ApplyEvent(active []string, eventType model.EventType, userID string) []string {
	switch eventType {
	case model.EventIn:
		if Contains(active, userID) {
			return clone(active)
		}
		next := make([]string, 0, len(active)+1)
		next = append(next, active...)
		return append(next, userID)
	case model.EventOut:
		if !Contains(active, userID) {
			return clone(active)
		}
		next := make([]string, 0, len(active)-1)
		for _, id := range active {
			if id != userID {
				next = append(next, id)
			}
		}
		return next
	default:
		return clone(active)
	}
}

// Contains reports whether id is present in set.
func Contains(set []string, id string) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}

func clone(set []string) []string {
	next := make([]string, len(set))
	copy(next, set)
	return next
}

// Level maps a count/capacity pair to the crowding color shown on the map.
func Level(count, capacity int) string {
	if capacity <= 0 {
		return "gray"
	}

	ratio := float64(count) / float64(capacity)
	switch {
	case ratio <= 0.3:
		return "green"
	case ratio <= 0.6:
		return "yellow"
	case ratio <= 0.8:
		return "orange"
	default:
		return "red"
	}
}
