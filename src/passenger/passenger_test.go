package passenger

import (
	"errors"
	"testing"

	"elevsim/src/dispatcher"
	"elevsim/src/logging"
	"elevsim/src/types"
)

const testFloors = 4

func newTestSource(spawnChance float64) *Source {
	return New(testFloors, spawnChance, 1, logging.Discard())
}

// run drives the outer loop and the cars until want people have been delivered.
func run(t *testing.T, s *Source, d *dispatcher.Dispatcher, want int) {
	t.Helper()
	for i := 0; s.Delivered() < want; i++ {
		if i > 5000 {
			t.Fatalf("delivered %d of %d, still waiting: %+v, requests: %+v", s.Delivered(), want, s.Persons(), d.Requests())
		}
		s.Step(d)
		d.Update()
		for _, car := range d.Cars() {
			for range 5 {
				car.Tick()
			}
		}
	}
}

func TestSpawnRejectsInvalidTrips(t *testing.T) {
	tests := []struct {
		name        string
		origin      int
		destination int
	}{
		{"same floor", 1, 1},
		{"below ground", -1, 2},
		{"above roof", 0, testFloors},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSource(0)
			if _, err := s.Spawn(tt.origin, tt.destination); !errors.Is(err, ErrInvalidTrip) {
				t.Errorf("Spawn(%d, %d) error = %v, want ErrInvalidTrip", tt.origin, tt.destination, err)
			}
			if len(s.Persons()) != 0 {
				t.Error("invalid trip added a person")
			}
		})
	}
}

func TestSpawn(t *testing.T) {
	s := newTestSource(0)
	p, err := s.Spawn(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.ID) != idLength || p.State != Waiting || p.Car != dispatcher.Unassigned {
		t.Errorf("unexpected person %+v", p)
	}
	if p.Direction() != types.Down {
		t.Errorf("direction = %v, want Down", p.Direction())
	}
	if s.Spawned() != 1 {
		t.Errorf("spawned = %d", s.Spawned())
	}
}

func TestMaybeSpawn(t *testing.T) {
	s := newTestSource(1)
	for range 100 {
		s.MaybeSpawn()
	}
	if got := len(s.Persons()); got != 100 {
		t.Fatalf("spawned %d people, want 100", got)
	}
	for _, p := range s.Persons() {
		if p.Floor == p.Destination || p.Floor < 0 || p.Floor >= testFloors || p.Destination < 0 || p.Destination >= testFloors {
			t.Errorf("invalid random trip %+v", p)
		}
	}

	s.Reset()
	s.SetManual(true)
	s.MaybeSpawn()
	if got := len(s.Persons()); got != 0 {
		t.Errorf("manual mode spawned %d people", got)
	}

	s = newTestSource(0)
	s.MaybeSpawn()
	if got := len(s.Persons()); got != 0 {
		t.Errorf("zero chance spawned %d people", got)
	}
}

func TestBoardsCarAtFloorWithoutCalling(t *testing.T) {
	s := newTestSource(0)
	d := dispatcher.New(3, logging.Discard())
	s.Spawn(0, 2)
	s.Step(d)

	p := s.Persons()[0]
	if p.State != Riding || p.Car != 0 {
		t.Fatalf("person not riding car 0: %+v", p)
	}
	if len(d.Requests()) != 0 {
		t.Errorf("pickup requested although a car was boarding: %+v", d.Requests())
	}
	if got := d.Car(0).Status().PassengerCount; got != 1 {
		t.Errorf("passenger count = %d", got)
	}
}

func TestWaitingPersonCallsCar(t *testing.T) {
	s := newTestSource(0)
	d := dispatcher.New(3, logging.Discard())
	s.Spawn(3, 0)
	s.Step(d)

	requests := d.Requests()
	if len(requests) != 1 || requests[0].Floor != 3 || requests[0].Dir != types.Down {
		t.Errorf("requests = %+v", requests)
	}
}

func TestTripsAreServed(t *testing.T) {
	s := newTestSource(0)
	d := dispatcher.New(3, logging.Discard())
	s.Spawn(0, 3)
	s.Spawn(2, 0)
	s.Spawn(3, 1)

	run(t, s, d, 3)

	if len(s.Persons()) != 0 {
		t.Errorf("people left over: %+v", s.Persons())
	}
	for _, car := range d.Cars() {
		if got := car.Status().PassengerCount; got != 0 {
			t.Errorf("car %d still carries %d", car.ID(), got)
		}
	}
}
