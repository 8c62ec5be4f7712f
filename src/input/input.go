package input

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eiannone/keyboard"

	"elevsim/src/types"
)

const noOrigin = -1

// Reader turns key presses into input events. A spawn is typed as two digits: origin then destination.
type Reader struct {
	origin int
}

func NewReader() *Reader {
	return &Reader{origin: noOrigin}
}

// Translate maps one key press to an event. ok is false when the key means nothing yet.
func (r *Reader) Translate(char rune, key keyboard.Key) (event types.InputEvent, ok bool) {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return types.InputEvent{Type: types.Quit}, true
	case keyboard.KeySpace:
		return types.InputEvent{Type: types.PauseToggle}, true
	}

	if char >= '0' && char <= '9' {
		floor := int(char - '0')
		if r.origin == noOrigin {
			r.origin = floor
			return types.InputEvent{}, false
		}
		event = types.InputEvent{Type: types.Spawn, Origin: r.origin, Destination: floor}
		r.origin = noOrigin
		return event, true
	}
	r.origin = noOrigin

	switch char {
	case 'q', 'Q':
		return types.InputEvent{Type: types.Quit}, true
	case 'p', 'P':
		return types.InputEvent{Type: types.PauseToggle}, true
	case '+', '=':
		return types.InputEvent{Type: types.SpeedUp}, true
	case '-':
		return types.InputEvent{Type: types.SlowDown}, true
	case 'r', 'R':
		return types.InputEvent{Type: types.Reset}, true
	case 'm', 'M':
		return types.InputEvent{Type: types.ManualToggle}, true
	}
	return types.InputEvent{}, false
}

// Terminal hooks, replaced in tests.
var (
	openKeys      = keyboard.GetKeys
	closeKeyboard = keyboard.Close
)

// Listen puts the terminal in raw mode and forwards translated key presses on events until ctx is done.
// The returned func restores the terminal and must be called exactly once.
func Listen(ctx context.Context, events chan<- types.InputEvent) (func(), error) {
	keys, err := openKeys(10)
	if err != nil {
		return nil, fmt.Errorf("open keyboard: %w", err)
	}
	go forward(ctx, keys, events)
	return func() {
		if err := closeKeyboard(); err != nil {
			slog.Error("Keyboard close failed", "err", err)
		}
	}, nil
}

func forward(ctx context.Context, keys <-chan keyboard.KeyEvent, events chan<- types.InputEvent) {
	reader := NewReader()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-keys:
			if !ok {
				return
			}
			if ev.Err != nil {
				slog.Error("Keyboard read failed", "err", ev.Err)
				continue
			}
			event, ok := reader.Translate(ev.Rune, ev.Key)
			if !ok {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
