package dispatcher

import (
	"elevsim/src/elev"
	"elevsim/src/types"
)

// candidateDistance reports how far car is from floor and whether it may take the request at all.
//   - an idle car is eligible in any direction
//   - a driving car is eligible only if it is heading towards floor
//   - any other car is not eligible
func candidateDistance(car elev.Status, floor int) (int, bool) {
	distance := abs(car.Floor - floor)
	if car.Idle {
		return distance, true
	}
	if car.State != types.Driving {
		return 0, false
	}
	switch car.Direction {
	case types.Up:
		return distance, car.Floor < floor
	case types.Down:
		return distance, car.Floor > floor
	}
	return 0, false
}

// findAssignee picks the car for a request at floor, or Unassigned.
// A car already boarding at the floor wins outright; otherwise the nearest eligible car, first in roster order on ties.
func findAssignee(cars []elev.Status, floor int) int {
	assignee := Unassigned
	minDistance := 0
	for idx, car := range cars {
		if car.Full() {
			continue
		}
		if car.BoardingAt(floor) {
			return idx
		}
		distance, ok := candidateDistance(car, floor)
		if ok && (assignee == Unassigned || distance < minDistance) {
			assignee = idx
			minDistance = distance
		}
	}
	return assignee
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
