package utils

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"elevsim/src/config"
	"elevsim/src/elev"
	"elevsim/src/types"
)

// Frame is everything the status views show for one outer tick.
type Frame struct {
	Tick      uint64
	Period    time.Duration
	Paused    bool
	Manual    bool
	Cars      []elev.CarState
	Pending   int
	Waiting   int
	Spawned   int
	Delivered int
	// WaitingAt counts waiting people per floor, indexed by floor.
	WaitingAt []int
}

// PrintStatus rewrites the current terminal line with one entry per car.
func PrintStatus(w io.Writer, frame Frame) {
	var b strings.Builder
	fmt.Fprintf(&b, "\rTick %d", frame.Tick)
	if frame.Paused {
		b.WriteString(" [paused]")
	}
	if frame.Manual {
		b.WriteString(" [manual]")
	}
	for i, car := range frame.Cars {
		fmt.Fprintf(&b, " | car %d: %s", i, FormatCar(car))
	}
	fmt.Fprintf(&b, " | calls %d waiting %d spawned %d delivered %d   ", frame.Pending, frame.Waiting, frame.Spawned, frame.Delivered)
	fmt.Fprint(w, b.String())
}

const clearScreen = "\033[H\033[2J"

// PrintBuilding redraws the terminal with one row per floor, top floor first, and one shaft per car.
// A car is drawn on the floor nearest to its position: [n] at rest, ^n or vn while driving, n being its load.
func PrintBuilding(w io.Writer, frame Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "Tick %d  period %v", frame.Tick, frame.Period)
	if frame.Paused {
		b.WriteString("  [paused]")
	}
	if frame.Manual {
		b.WriteString("  [manual]")
	}
	b.WriteString("\r\n")

	for floor := len(frame.WaitingAt) - 1; floor >= 0; floor-- {
		fmt.Fprintf(&b, "F%d |", floor)
		for _, car := range frame.Cars {
			cell := ""
			if CarRow(car) == floor {
				cell = carCell(car)
			}
			fmt.Fprintf(&b, " %-3s |", cell)
		}
		if n := frame.WaitingAt[floor]; n > 0 {
			fmt.Fprintf(&b, " %d waiting", n)
		}
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "calls %d  spawned %d  delivered %d\r\n", frame.Pending, frame.Spawned, frame.Delivered)
	fmt.Fprint(w, b.String())
}

// CarRow returns the floor nearest to the car's position.
func CarRow(car elev.CarState) int {
	position := float64(car.Floor)
	if car.State == types.Driving {
		if car.Direction == types.Up {
			position += car.FloorProgress
		} else {
			position -= car.FloorProgress
		}
	}
	return int(math.Round(position))
}

func carCell(car elev.CarState) string {
	if car.State != types.Driving {
		return fmt.Sprintf("[%d]", car.PassengerCount)
	}
	if car.Direction == types.Up {
		return fmt.Sprintf("^%d", car.PassengerCount)
	}
	return fmt.Sprintf("v%d", car.PassengerCount)
}

// FormatCar renders e.g. "F2 Driving Up 1/2 -> 3".
func FormatCar(car elev.CarState) string {
	position := fmt.Sprintf("F%d", car.Floor)
	if car.FloorProgress > 0 {
		position = fmt.Sprintf("F%d+%.2f", car.Floor, car.FloorProgress)
	}
	s := fmt.Sprintf("%s %v", position, car.State)
	if car.State == types.Driving {
		s += " " + car.Direction.String()
	}
	return fmt.Sprintf("%s %d/%d -> %d", s, car.PassengerCount, config.MaxCapacity, car.Destination)
}
