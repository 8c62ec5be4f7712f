// Package sim runs the outer simulation loop: input, people, dispatch and rendering, once per tick.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"elevsim/src/config"
	"elevsim/src/dispatcher"
	"elevsim/src/logging"
	"elevsim/src/passenger"
	"elevsim/src/timer"
	"elevsim/src/types"
	"elevsim/src/utils"
)

type Simulation struct {
	cfg    config.Config
	disp   *dispatcher.Dispatcher
	source *passenger.Source
	rec    logging.Recorder

	tick   uint64
	paused bool
	period time.Duration
}

func New(cfg config.Config, rec logging.Recorder) *Simulation {
	return &Simulation{
		cfg:    cfg,
		disp:   dispatcher.New(cfg.NumCars, rec),
		source: passenger.New(cfg.NumFloors, cfg.SpawnChance, cfg.Seed, rec),
		rec:    rec,
		period: cfg.TickInterval,
	}
}

func (s *Simulation) Dispatcher() *dispatcher.Dispatcher {
	return s.disp
}

func (s *Simulation) Source() *passenger.Source {
	return s.source
}

func (s *Simulation) Paused() bool {
	return s.paused
}

func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// Step runs one outer tick. Nothing happens while paused.
func (s *Simulation) Step() {
	if s.paused {
		return
	}
	s.tick++
	s.source.MaybeSpawn()
	s.source.Step(s.disp)
	s.disp.Update()
}

// Handle applies one input event and reports whether the simulation should keep running.
// Speed changes are sent on actions.
func (s *Simulation) Handle(event types.InputEvent, actions chan<- timer.TimerAction) bool {
	switch event.Type {
	case types.Quit:
		slog.Info("Quit requested", "tick", s.tick)
		return false
	case types.PauseToggle:
		s.paused = !s.paused
		s.disp.SetPaused(s.paused)
		slog.Info("Pause toggled", "paused", s.paused)
	case types.SpeedUp:
		actions <- timer.Faster
	case types.SlowDown:
		actions <- timer.Slower
	case types.Reset:
		s.disp.Reset()
		s.source.Reset()
		slog.Info("Simulation reset", "tick", s.tick)
	case types.ManualToggle:
		s.source.SetManual(!s.source.Manual())
		slog.Info("Manual mode toggled", "manual", s.source.Manual())
	case types.Spawn:
		if _, err := s.source.Spawn(event.Origin, event.Destination); err != nil {
			s.rec.Record(fmt.Sprintf("spawn rejected: %v", err))
		}
	}
	return true
}

func (s *Simulation) Frame() utils.Frame {
	waiting := 0
	waitingAt := make([]int, s.cfg.NumFloors)
	for _, p := range s.source.Persons() {
		if p.State == passenger.Waiting {
			waiting++
			waitingAt[p.Floor]++
		}
	}
	return utils.Frame{
		Tick:      s.tick,
		Period:    s.period,
		Paused:    s.paused,
		Manual:    s.source.Manual(),
		Cars:      s.disp.Snapshots(),
		Pending:   len(s.disp.Requests()),
		Waiting:   waiting,
		Spawned:   s.source.Spawned(),
		Delivered: s.source.Delivered(),
		WaitingAt: waitingAt,
	}
}

// Run starts the cars and drives the outer loop until ctx is done or a Quit event arrives.
// Each tick drains events, steps the simulation and hands a frame to render.
func (s *Simulation) Run(ctx context.Context, events <-chan types.InputEvent, render func(utils.Frame)) {
	wg := &sync.WaitGroup{}
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.disp.Start(ctx, wg, s.cfg.CarTickInterval)

	tick := make(chan struct{}, 1)
	actions := make(chan timer.TimerAction, 1)
	changed := make(chan time.Duration, 1)
	period := s.period
	wg.Add(1)
	go func() {
		defer wg.Done()
		timer.Timer(ctx, period, tick, actions, changed)
	}()

	slog.Info("Simulation started", "cars", s.disp.NumCars(), "floors", s.cfg.NumFloors, "period", s.period)
	for {
		select {
		case <-ctx.Done():
			return
		case period := <-changed:
			s.period = period
		case <-tick:
			if !s.drain(events, actions) {
				return
			}
			s.Step()
			render(s.Frame())
		}
	}
}

func (s *Simulation) drain(events <-chan types.InputEvent, actions chan<- timer.TimerAction) bool {
	for {
		select {
		case event := <-events:
			if !s.Handle(event, actions) {
				return false
			}
		default:
			return true
		}
	}
}
