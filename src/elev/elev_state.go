package elev

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tiendc/go-deepcopy"

	"elevsim/src/config"
	"elevsim/src/logging"
	"elevsim/src/types"
)

// Car owns one CarState behind its lock and advances it on its own ticker.
type Car struct {
	id     int
	mu     sync.Mutex
	state  CarState
	paused atomic.Bool
	rec    logging.Recorder
}

func NewCar(id int, rec logging.Recorder) *Car {
	return &Car{
		id:    id,
		state: initialState(),
		rec:   rec,
	}
}

func (c *Car) ID() int {
	return c.id
}

// Start runs the ticking goroutine until ctx is cancelled. Ticks are skipped while paused.
func (c *Car) Start(ctx context.Context, wg *sync.WaitGroup, interval time.Duration) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.paused.Load() {
					continue
				}
				c.Tick()
			}
		}
	}()
}

// Tick advances the state machine by one step.
func (c *Car) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.state.State
	c.state.step()
	if c.state.State != before {
		c.rec.Record(fmt.Sprintf("car %d: %v -> %v at floor %d", c.id, before, c.state.State, c.state.Floor))
	}
}

// AddRequest makes the car visit floor and nudges it to leave if it is not already at its destination.
func (c *Car) AddRequest(floor int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.addRequest(floor) {
		c.rec.Record(fmt.Sprintf("car %d: request floor %d", c.id, floor))
	}
	c.state.pickNearestDestination()

	if c.state.Floor == c.state.Destination {
		return
	}
	switch c.state.State {
	case types.Waiting:
		c.state.State = types.Closing
		c.state.WaitTimer = config.DwellTicks
	case types.Opening:
		c.state.WaitTimer = config.DwellTicks
	case types.Closing:
		c.state.WaitTimer = 0
	case types.Driving:
	}
}

// AddPassenger boards one passenger. It returns false without side effects when the car is full
// or still in its entry cooldown.
func (c *Car) AddPassenger() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.PassengerCount >= config.MaxCapacity || c.state.EntryCooldown > 0 {
		return false
	}
	c.state.EntryCooldown = config.EntryCooldownTicks
	c.state.PassengerCount++
	switch c.state.State {
	case types.Waiting:
		c.state.WaitTimer = config.DwellTicks
	case types.Closing:
		c.state.State = types.Opening
	}
	c.rec.Record(fmt.Sprintf("car %d: passenger boarded at floor %d (%d aboard)", c.id, c.state.Floor, c.state.PassengerCount))
	return true
}

func (c *Car) RemovePassenger() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.PassengerCount > 0 {
		c.state.PassengerCount--
	}
	if c.state.State == types.Waiting {
		c.state.WaitTimer = config.DwellTicks
	}
	c.rec.Record(fmt.Sprintf("car %d: passenger left at floor %d (%d aboard)", c.id, c.state.Floor, c.state.PassengerCount))
}

// Reset overwrites the whole state with the initial idle state.
func (c *Car) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = initialState()
	c.rec.Record(fmt.Sprintf("car %d: reset", c.id))
}

func (c *Car) SetPaused(paused bool) {
	c.paused.Store(paused)
}

func (c *Car) Paused() bool {
	return c.paused.Load()
}

func (c *Car) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.status(c.id)
}

// Snapshot returns a deep copy of the state that readers may keep.
func (c *Car) Snapshot() CarState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := CarState{}
	if err := deepcopy.Copy(&snapshot, &c.state); err != nil {
		panic(err)
	}
	return snapshot
}
