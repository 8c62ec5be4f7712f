package timer

import (
	"context"
	"log/slog"
	"time"

	"elevsim/src/config"
)

type TimerAction int

const (
	Faster TimerAction = iota
	Slower
)

// Timer sends on tick every period until ctx is done. Ticks the receiver is not ready for are dropped. Faster halves and Slower doubles the period,
// bounded by config.MinTickInterval and config.MaxTickInterval. The latest period is reported on changed,
// replacing an unread older one when changed is buffered.
func Timer(ctx context.Context, period time.Duration, tick chan<- struct{}, action <-chan TimerAction, changed chan time.Duration) {
	t := time.NewTimer(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-action:
			period = Adjust(period, a)
			resetTimer(t, period)
			slog.Debug("Tick period changed", "period", period)
			report(changed, period)
		case <-t.C:
			t.Reset(period)
			select {
			case tick <- struct{}{}:
			default:
			}
		}
	}
}

// Adjust returns the period after applying a.
func Adjust(period time.Duration, a TimerAction) time.Duration {
	switch a {
	case Faster:
		period /= 2
	case Slower:
		period *= 2
	}
	return min(max(period, config.MinTickInterval), config.MaxTickInterval)
}

func report(changed chan time.Duration, period time.Duration) {
	for {
		select {
		case changed <- period:
			return
		default:
		}
		select {
		case <-changed:
		default:
			return
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, period time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(period)
}
