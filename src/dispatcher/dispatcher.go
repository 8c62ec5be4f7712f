package dispatcher

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"elevsim/src/elev"
	"elevsim/src/logging"
	"elevsim/src/types"
)

// Dispatcher owns a fixed roster of cars and the pending pickup requests.
// Requests are only touched from the goroutine driving the outer loop.
type Dispatcher struct {
	cars     []*elev.Car
	requests []PickupRequest
	rec      logging.Recorder
}

func New(numCars int, rec logging.Recorder) *Dispatcher {
	cars := make([]*elev.Car, numCars)
	for i := range cars {
		cars[i] = elev.NewCar(i, rec)
	}
	return &Dispatcher{cars: cars, rec: rec}
}

// Start launches the ticking goroutine of every car.
func (d *Dispatcher) Start(ctx context.Context, wg *sync.WaitGroup, interval time.Duration) {
	for _, car := range d.cars {
		car.Start(ctx, wg, interval)
	}
}

func (d *Dispatcher) Car(idx int) *elev.Car {
	return d.cars[idx]
}

func (d *Dispatcher) Cars() []*elev.Car {
	return d.cars
}

func (d *Dispatcher) NumCars() int {
	return len(d.cars)
}

// Requests returns a copy of the pending requests in list order.
func (d *Dispatcher) Requests() []PickupRequest {
	return slices.Clone(d.requests)
}

// RequestElevator adds a pickup request unless one for the same floor and direction is pending.
func (d *Dispatcher) RequestElevator(floor int, dir types.Direction) {
	if slices.ContainsFunc(d.requests, func(r PickupRequest) bool {
		return r.Floor == floor && r.Dir == dir
	}) {
		return
	}
	d.requests = append(d.requests, PickupRequest{Floor: floor, Dir: dir, AssignedCar: Unassigned})
	d.rec.Record(fmt.Sprintf("request floor %d %v", floor, dir))
}

// Update runs one dispatch pass over every pending request:
//   - drops assignments to cars that filled up elsewhere
//   - assigns unassigned requests and sends the car there
//   - retires requests whose car is boarding at the floor with room left
func (d *Dispatcher) Update() {
	var handled []int

	for i := range d.requests {
		req := &d.requests[i]

		if req.Assigned() {
			car := d.cars[req.AssignedCar].Status()
			if car.Full() && !car.BoardingAt(req.Floor) {
				d.rec.Record(fmt.Sprintf("car %d full, releasing floor %d %v", req.AssignedCar, req.Floor, req.Dir))
				req.AssignedCar = Unassigned
			}
		}

		if !req.Assigned() {
			if assignee := findAssignee(d.statuses(), req.Floor); assignee != Unassigned {
				req.AssignedCar = assignee
				d.cars[assignee].AddRequest(req.Floor)
				d.rec.Record(fmt.Sprintf("assigned floor %d %v to car %d", req.Floor, req.Dir, assignee))
			}
		}

		if req.Assigned() {
			car := d.cars[req.AssignedCar].Status()
			if car.BoardingAt(req.Floor) && !car.Full() {
				handled = append(handled, i)
			}
		}
	}

	for _, i := range slices.Backward(handled) {
		d.rec.Record(fmt.Sprintf("served floor %d %v", d.requests[i].Floor, d.requests[i].Dir))
		d.requests = slices.Delete(d.requests, i, i+1)
	}
}

// Reset resets every car and drops all pending requests.
func (d *Dispatcher) Reset() {
	for _, car := range d.cars {
		car.Reset()
	}
	d.requests = nil
}

func (d *Dispatcher) SetPaused(paused bool) {
	for _, car := range d.cars {
		car.SetPaused(paused)
	}
}

// Snapshots returns a deep copy of every car state in roster order.
func (d *Dispatcher) Snapshots() []elev.CarState {
	snapshots := make([]elev.CarState, len(d.cars))
	for i, car := range d.cars {
		snapshots[i] = car.Snapshot()
	}
	return snapshots
}

func (d *Dispatcher) statuses() []elev.Status {
	statuses := make([]elev.Status, len(d.cars))
	for i, car := range d.cars {
		statuses[i] = car.Status()
	}
	return statuses
}
