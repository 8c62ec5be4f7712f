package dispatcher

import "elevsim/src/types"

const Unassigned = -1

// PickupRequest is a hall call waiting for a car. AssignedCar is a roster index or Unassigned.
type PickupRequest struct {
	Floor       int
	Dir         types.Direction
	AssignedCar int
}

func (r PickupRequest) Assigned() bool {
	return r.AssignedCar != Unassigned
}
