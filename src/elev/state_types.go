// State types are kept apart from the Car so the state machine can be stepped and tested without locking.
package elev

import (
	"elevsim/src/config"
	"elevsim/src/types"
)

// CarState is the mutable state of one car. It is only ever mutated through step and the Car operations.
type CarState struct {
	Floor          int
	Destination    int
	Requests       []int // insertion ordered, no duplicates
	FloorProgress  float64
	Direction      types.Direction
	State          types.State
	DoorProgress   float64
	PassengerCount int
	WaitTimer      int
	EntryCooldown  int
}

// initialState is an idle car at floor 0 with its door fully open.
func initialState() CarState {
	return CarState{
		Floor:        0,
		Destination:  0,
		Requests:     []int{},
		Direction:    types.Up,
		State:        types.Waiting,
		DoorProgress: 1,
	}
}

// Status is the part of a CarState the dispatcher and passengers decide on.
type Status struct {
	ID             int
	Floor          int
	Destination    int
	Direction      types.Direction
	State          types.State
	PassengerCount int
	Idle           bool
}

func (s *CarState) status(id int) Status {
	return Status{
		ID:             id,
		Floor:          s.Floor,
		Destination:    s.Destination,
		Direction:      s.Direction,
		State:          s.State,
		PassengerCount: s.PassengerCount,
		Idle:           len(s.Requests) == 0 && s.State == types.Waiting,
	}
}

// BoardingAt reports whether the car is stopped at floor with doors not closed for transit.
func (s Status) BoardingAt(floor int) bool {
	return s.Floor == floor && s.State.BoardingCapable()
}

func (s Status) Full() bool {
	return s.PassengerCount >= config.MaxCapacity
}
