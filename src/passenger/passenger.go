package passenger

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/xyproto/randomstring"

	"elevsim/src/dispatcher"
	"elevsim/src/logging"
	"elevsim/src/types"
)

const idLength = 6

var ErrInvalidTrip = errors.New("invalid trip")

type PersonState int

const (
	Waiting PersonState = iota
	Riding
)

// Person waits at Floor for a car, rides it and leaves at Destination.
type Person struct {
	ID          string
	Floor       int
	Destination int
	State       PersonState
	Car         int
}

func (p Person) Direction() types.Direction {
	return types.DirectionTo(p.Floor, p.Destination)
}

// Source generates people and moves them in and out of cars. It is driven from the outer loop only.
type Source struct {
	numFloors   int
	spawnChance float64
	rng         *rand.Rand
	rec         logging.Recorder

	persons   []*Person
	manual    bool
	spawned   int
	delivered int
}

func New(numFloors int, spawnChance float64, seed int64, rec logging.Recorder) *Source {
	return &Source{
		numFloors:   numFloors,
		spawnChance: spawnChance,
		rng:         rand.New(rand.NewSource(seed)),
		rec:         rec,
	}
}

// Spawn adds a person waiting at origin who wants to go to destination.
func (s *Source) Spawn(origin, destination int) (Person, error) {
	if origin < 0 || origin >= s.numFloors || destination < 0 || destination >= s.numFloors {
		return Person{}, fmt.Errorf("%w: floors %d -> %d outside 0..%d", ErrInvalidTrip, origin, destination, s.numFloors-1)
	}
	if origin == destination {
		return Person{}, fmt.Errorf("%w: origin and destination are both %d", ErrInvalidTrip, origin)
	}

	p := &Person{
		ID:          randomstring.EnglishFrequencyString(idLength),
		Floor:       origin,
		Destination: destination,
		State:       Waiting,
		Car:         dispatcher.Unassigned,
	}
	s.persons = append(s.persons, p)
	s.spawned++
	s.rec.Record(fmt.Sprintf("person %s waiting at floor %d for floor %d", p.ID, origin, destination))
	return *p, nil
}

// MaybeSpawn spawns a random person with the configured chance. Nothing is spawned in manual mode.
func (s *Source) MaybeSpawn() {
	if s.manual || s.rng.Float64() >= s.spawnChance {
		return
	}
	origin := s.rng.Intn(s.numFloors)
	destination := s.rng.Intn(s.numFloors - 1)
	if destination >= origin {
		destination++
	}
	if _, err := s.Spawn(origin, destination); err != nil {
		s.rec.Record(err.Error())
	}
}

// Step lets every person react to the cars: waiting people call and board, riders leave at their floor.
func (s *Source) Step(d *dispatcher.Dispatcher) {
	remaining := s.persons[:0]
	for _, p := range s.persons {
		switch p.State {
		case Waiting:
			s.tryBoard(p, d)
		case Riding:
			if s.tryLeave(p, d) {
				s.delivered++
				continue
			}
		}
		remaining = append(remaining, p)
	}
	clear(s.persons[len(remaining):])
	s.persons = remaining
}

// tryBoard enters the first car boarding at the person's floor, and calls a car if none takes them.
func (s *Source) tryBoard(p *Person, d *dispatcher.Dispatcher) {
	for _, car := range d.Cars() {
		if !car.Status().BoardingAt(p.Floor) {
			continue
		}
		if car.AddPassenger() {
			p.State = Riding
			p.Car = car.ID()
			car.AddRequest(p.Destination)
			s.rec.Record(fmt.Sprintf("person %s entered car %d at floor %d", p.ID, p.Car, p.Floor))
			return
		}
	}
	d.RequestElevator(p.Floor, p.Direction())
}

func (s *Source) tryLeave(p *Person, d *dispatcher.Dispatcher) bool {
	car := d.Car(p.Car)
	if !car.Status().BoardingAt(p.Destination) {
		return false
	}
	car.RemovePassenger()
	s.rec.Record(fmt.Sprintf("person %s left car %d at floor %d", p.ID, p.Car, p.Destination))
	return true
}

func (s *Source) SetManual(manual bool) {
	s.manual = manual
}

func (s *Source) Manual() bool {
	return s.manual
}

// Reset drops everybody. Counters are kept.
func (s *Source) Reset() {
	s.persons = nil
}

// Persons returns copies of everybody currently waiting or riding.
func (s *Source) Persons() []Person {
	persons := make([]Person, len(s.persons))
	for i, p := range s.persons {
		persons[i] = *p
	}
	return persons
}

func (s *Source) Spawned() int {
	return s.spawned
}

func (s *Source) Delivered() int {
	return s.delivered
}
