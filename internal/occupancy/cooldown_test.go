package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanScanAgain(t *testing.T) {
	base := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	cooldown := 2 * time.Minute

	t.Run("first scan is always allowed", func(t *testing.T) {
		assert.True(t, CanScanAgain(time.Time{}, base, cooldown))
	})

	t.Run("rescan inside the window is blocked", func(t *testing.T) {
		assert.False(t, CanScanAgain(base, base.Add(time.Minute), cooldown))
	})

	t.Run("one millisecond before the window ends is still blocked", func(t *testing.T) {
		assert.False(t, CanScanAgain(base, base.Add(cooldown-time.Millisecond), cooldown))
	})

	t.Run("exactly at the window boundary is allowed", func(t *testing.T) {
		assert.True(t, CanScanAgain(base, base.Add(cooldown), cooldown))
	})

	t.Run("after the window is allowed", func(t *testing.T) {
		assert.True(t, CanScanAgain(base, base.Add(3*time.Minute), cooldown))
	})
}
