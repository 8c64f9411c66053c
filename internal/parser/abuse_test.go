package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestAbuseMonitorLocksAtThreshold(t *testing.T) {
	clock := newFakeClock()
	m := NewAbuseMonitor(3, time.Minute)
	m.clock = clock.Now

	m.Count("bob")
	m.Count("bob")
	assert.False(t, m.IsLocked("bob"))
	m.Count("bob")
	assert.True(t, m.IsLocked("bob"))
	// The count entry is gone once locked.
	assert.NotContains(t, m.counts, "bob")
}

func TestAbuseMonitorWindowReset(t *testing.T) {
	clock := newFakeClock()
	m := NewAbuseMonitor(3, time.Minute)
	m.clock = clock.Now

	m.Count("bob")
	m.Count("bob")
	clock.Advance(time.Minute)
	// The old window expired, so these two are counted from scratch.
	m.Count("bob")
	m.Count("bob")
	assert.False(t, m.IsLocked("bob"))
	m.Count("bob")
	assert.True(t, m.IsLocked("bob"))
}

func TestAbuseMonitorUnlock(t *testing.T) {
	var locked, unlocked []string
	clock := newFakeClock()
	m := NewAbuseMonitor(1, time.Minute)
	m.clock = clock.Now
	m.OnLock = func(user, reason string) { locked = append(locked, user) }
	m.OnUnlock = func(user string) { unlocked = append(unlocked, user) }

	m.Count("bob")
	assert.True(t, m.IsLocked("bob"))
	assert.Equal(t, []string{"bob"}, locked)

	// Time alone never unlocks.
	clock.Advance(24 * time.Hour)
	assert.True(t, m.IsLocked("bob"))

	m.Unlock("bob")
	assert.False(t, m.IsLocked("bob"))
	assert.Equal(t, []string{"bob"}, unlocked)

	// Unlocking an unlocked user does not fire the callback again.
	m.Unlock("bob")
	assert.Equal(t, []string{"bob"}, unlocked)
}

func TestAbuseMonitorUsersAreIndependent(t *testing.T) {
	clock := newFakeClock()
	m := NewAbuseMonitor(2, time.Minute)
	m.clock = clock.Now

	m.Count("bob")
	m.Count("alice")
	assert.False(t, m.IsLocked("bob"))
	assert.False(t, m.IsLocked("alice"))
	m.Count("bob")
	assert.True(t, m.IsLocked("bob"))
	assert.False(t, m.IsLocked("alice"))
}

func TestAntiSpamThrottle(t *testing.T) {
	clock := newFakeClock()
	th := NewAntiSpamThrottle(1500 * time.Millisecond)
	th.clock = clock.Now

	assert.False(t, th.Check("bob"))
	th.Mark("bob")
	assert.True(t, th.Check("bob"))
	assert.False(t, th.Check("alice"))

	clock.Advance(time.Second)
	assert.True(t, th.Check("bob"))
	clock.Advance(time.Second)
	assert.False(t, th.Check("bob"))
	// The stale entry was pruned, not just ignored.
	assert.NotContains(t, th.last, "bob")
}
