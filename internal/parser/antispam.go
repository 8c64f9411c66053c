package parser

import "time"

// AntiSpamThrottle enforces a single-slot cooldown per user: one
// non-public command per interval. Whether a command counts as public
// is the dispatcher's call; this type only keeps timestamps.
type AntiSpamThrottle struct {
	interval time.Duration
	last     map[string]time.Time
	clock    func() time.Time
}

func NewAntiSpamThrottle(interval time.Duration) *AntiSpamThrottle {
	return &AntiSpamThrottle{
		interval: interval,
		last:     make(map[string]time.Time),
		clock:    time.Now,
	}
}

// Check reports whether user is currently throttled. Stale entries are
// purged on the way.
func (t *AntiSpamThrottle) Check(user string) bool {
	now := t.clock()
	for u, ts := range t.last {
		if now.Sub(ts) >= t.interval {
			delete(t.last, u)
		}
	}
	_, throttled := t.last[user]
	return throttled
}

// Mark records a command for user at the current time.
func (t *AntiSpamThrottle) Mark(user string) {
	t.last[user] = t.clock()
}
