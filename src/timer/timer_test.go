package timer

import (
	"context"
	"testing"
	"time"

	"elevsim/src/config"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name   string
		period time.Duration
		action TimerAction
		want   time.Duration
	}{
		{"faster halves", 100 * time.Millisecond, Faster, 50 * time.Millisecond},
		{"slower doubles", 100 * time.Millisecond, Slower, 200 * time.Millisecond},
		{"faster bounded", config.MinTickInterval, Faster, config.MinTickInterval},
		{"slower bounded", config.MaxTickInterval, Slower, config.MaxTickInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjust(tt.period, tt.action); got != tt.want {
				t.Errorf("Adjust(%v, %v) = %v, want %v", tt.period, tt.action, got, tt.want)
			}
		})
	}
}

func TestTimerTicksAndChangesPeriod(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := make(chan struct{}, 1)
	action := make(chan TimerAction)
	changed := make(chan time.Duration, 1)
	go Timer(ctx, 20*time.Millisecond, tick, action, changed)

	for range 3 {
		select {
		case <-tick:
		case <-time.After(time.Second):
			t.Fatal("no tick")
		}
	}

	action <- Slower
	select {
	case period := <-changed:
		if period != 40*time.Millisecond {
			t.Errorf("period = %v, want 40ms", period)
		}
	case <-time.After(time.Second):
		t.Fatal("period change not reported")
	}
}

func TestTimerReportsLatestPeriod(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	action := make(chan TimerAction)
	changed := make(chan time.Duration, 1)
	go Timer(ctx, 200*time.Millisecond, make(chan struct{}, 1), action, changed)

	action <- Slower
	action <- Slower
	deadline := time.After(time.Second)
	for {
		select {
		case period := <-changed:
			if period == 800*time.Millisecond {
				return
			}
			if period != 400*time.Millisecond {
				t.Fatalf("period = %v, want 800ms", period)
			}
		case <-deadline:
			t.Fatal("second period change lost")
		}
	}
}
