// Contains the per-tick state machine of a single car.
package elev

import (
	"math"

	"elevsim/src/config"
	"elevsim/src/types"
)

// step advances the state by one internal tick.
func (s *CarState) step() {
	if s.EntryCooldown > 0 {
		s.EntryCooldown--
	}

	switch s.State {
	case types.Driving:
		s.drive()
	case types.Opening:
		s.DoorProgress = advance(s.DoorProgress, config.ProgressStep)
		if s.DoorProgress >= 1 {
			s.DoorProgress = 1
			s.State = types.Waiting
			s.WaitTimer = config.DwellTicks
		}
	case types.Closing:
		// Strictly greater than capacity: a car holding exactly MaxCapacity still departs.
		if s.PassengerCount > config.MaxCapacity {
			s.State = types.Opening
			return
		}
		s.DoorProgress = advance(s.DoorProgress, -config.ProgressStep)
		if s.DoorProgress <= 0 {
			s.DoorProgress = 0
			s.State = types.Driving
		}
	case types.Waiting:
		s.wait()
	}
}

func (s *CarState) drive() {
	if s.FloorProgress == 0 && s.hasRequest(s.Floor) {
		s.removeRequest(s.Floor)
		if len(s.Requests) > 0 {
			s.pickNearestDestination()
		} else {
			s.Destination = s.Floor
		}
		s.State = types.Opening
		return
	}

	if s.Floor == s.Destination && s.FloorProgress == 0 {
		s.State = types.Opening
		return
	}

	// Between floors the direction is kept until the next floor is reached.
	if s.FloorProgress == 0 {
		s.Direction = types.DirectionTo(s.Floor, s.Destination)
	}
	s.FloorProgress = advance(s.FloorProgress, config.ProgressStep)
	if s.FloorProgress >= 1 {
		s.FloorProgress = 0
		if s.Direction == types.Up {
			s.Floor++
		} else {
			s.Floor--
		}
	}
}

func (s *CarState) wait() {
	if s.PassengerCount > config.MaxCapacity {
		return
	}
	if s.Destination == s.Floor && len(s.Requests) > 0 {
		s.pickNearestDestination()
	}
	if s.WaitTimer > 0 {
		s.WaitTimer--
	}
	if s.WaitTimer == 0 && (s.Floor != s.Destination || len(s.Requests) > 0) {
		s.State = types.Closing
	}
}

// advance adds delta to a progress value and snaps it to a 1e-6 grid, so that
// 1/ProgressStep steps add up to exactly 1.
func advance(progress, delta float64) float64 {
	return math.Round((progress+delta)*1e6) / 1e6
}
