package elev

import "slices"

func (s *CarState) hasRequest(floor int) bool {
	return slices.Contains(s.Requests, floor)
}

// addRequest reports whether floor was newly added.
func (s *CarState) addRequest(floor int) bool {
	if s.hasRequest(floor) {
		return false
	}
	s.Requests = append(s.Requests, floor)
	return true
}

func (s *CarState) removeRequest(floor int) {
	s.Requests = slices.DeleteFunc(s.Requests, func(f int) bool { return f == floor })
}

// pickNearestDestination points Destination at the closest requested floor. The first closest in request order wins.
func (s *CarState) pickNearestDestination() {
	if len(s.Requests) == 0 {
		return
	}
	best := s.Requests[0]
	for _, floor := range s.Requests[1:] {
		if abs(floor-s.Floor) < abs(best-s.Floor) {
			best = floor
		}
	}
	s.Destination = best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
