package parser

import "time"

// AbuseMonitor tracks per-user command counts over a sliding window and
// locks users that cross the threshold. Locked users stay locked until
// an explicit Unlock. All pruning happens lazily on access; there is no
// background timer.
type AbuseMonitor struct {
	threshold int
	window    time.Duration

	counts map[string]*abuseEntry
	locked map[string]bool

	// OnLock and OnUnlock fire on state transitions. Optional.
	OnLock   func(user, reason string)
	OnUnlock func(user string)

	clock func() time.Time
}

type abuseEntry struct {
	count int
	start time.Time
}

func NewAbuseMonitor(threshold int, window time.Duration) *AbuseMonitor {
	return &AbuseMonitor{
		threshold: threshold,
		window:    window,
		counts:    make(map[string]*abuseEntry),
		locked:    make(map[string]bool),
		clock:     time.Now,
	}
}

// Count registers one command for user. When the count inside the
// current window reaches the threshold the user transitions to locked.
func (m *AbuseMonitor) Count(user string) {
	now := m.clock()
	m.prune(now)

	e := m.counts[user]
	if e == nil || now.Sub(e.start) >= m.window {
		e = &abuseEntry{start: now}
		m.counts[user] = e
	}

	e.count++
	if e.count >= m.threshold && !m.locked[user] {
		m.locked[user] = true
		delete(m.counts, user)
		if m.OnLock != nil {
			m.OnLock(user, "too many commands")
		}
	}
}

// IsLocked is a pure read of the lock flag.
func (m *AbuseMonitor) IsLocked(user string) bool {
	return m.locked[user]
}

// Unlock clears the lock flag. Unlocking is an administrative action;
// the dispatcher never unlocks on its own.
func (m *AbuseMonitor) Unlock(user string) {
	if !m.locked[user] {
		return
	}
	delete(m.locked, user)
	if m.OnUnlock != nil {
		m.OnUnlock(user)
	}
}

func (m *AbuseMonitor) prune(now time.Time) {
	for user, e := range m.counts {
		if now.Sub(e.start) >= m.window {
			delete(m.counts, user)
		}
	}
}
