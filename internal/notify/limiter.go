package notify

import (
	"context"
	"time"
)

// Limiter paces successive sends to the delivery channel.
type Limiter interface {
	Wait(ctx context.Context)
}

// IntervalLimiter enforces a fixed pause between sends. Telegram
// tolerates roughly 30 messages/sec to distinct chats; the default
// 100ms gap stays well under that.
type IntervalLimiter struct {
	delay time.Duration
}

// NewIntervalLimiter returns a limiter that waits d between sends.
func NewIntervalLimiter(d time.Duration) *IntervalLimiter {
	return &IntervalLimiter{delay: d}
}

// Wait blocks for the configured delay or until ctx is cancelled.
func (l *IntervalLimiter) Wait(ctx context.Context) {
	if l.delay <= 0 {
		return
	}
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
