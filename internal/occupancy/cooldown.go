package occupancy

import "time"

// DefaultCooldown is the minimum pause between two scans by the same
// member at the same gym.
const DefaultCooldown = 2 * time.Minute

// CanScanAgain reports whether a member who last scanned at lastScanAt may
// scan again at now. A zero lastScanAt means the member has never scanned.
//
// The guard is advisory friction against accidental rapid rescans of the
// same tag. It runs on caller-supplied state and must never be relied on
// to prevent double counting; that guarantee comes from the transaction
// in internal/store.
func CanScanAgain(lastScanAt, now time.Time, cooldown time.Duration) bool {
	if lastScanAt.IsZero() {
		return true
	}
	return now.Sub(lastScanAt) >= cooldown
}
