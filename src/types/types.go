package types

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "Down"
	}
	return "Up"
}

// DirectionTo returns the travel direction from one floor towards another. Equal floors resolve to Down.
func DirectionTo(from, to int) Direction {
	if to > from {
		return Up
	}
	return Down
}

// State is the motion/door state of a car.
type State int

const (
	Driving State = iota
	Opening
	Waiting
	Closing
)

func (s State) String() string {
	return [...]string{"Driving", "Opening", "Waiting", "Closing"}[s]
}

// BoardingCapable reports whether passengers may enter or leave in this state.
func (s State) BoardingCapable() bool {
	return s == Waiting || s == Opening || s == Closing
}

type InputType int

const (
	Quit InputType = iota
	PauseToggle
	SpeedUp
	SlowDown
	Reset
	ManualToggle
	Spawn
)

// InputEvent is a discrete presentation event. Origin and Destination are only set for Spawn.
type InputEvent struct {
	Type        InputType
	Origin      int
	Destination int
}
