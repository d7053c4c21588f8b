// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/blockgl/internal/engine/camera"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input polls SDL once per frame and keeps held keys and mouse motion.
type Input struct {
	events []Event
	keys   []uint8

	mouseDX, mouseDY int32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the app should quit, which
// includes pressing Escape.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY = 0, 0
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			case sdl.KEYUP:
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += e.XRel
			i.mouseDY += e.YRel
		}
	}

	// Valid until the next PollEvent; SDL owns the slice.
	i.keys = sdl.GetKeyboardState()
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// MouseDelta returns the relative mouse motion accumulated this frame.
func (i *Input) MouseDelta() (dx, dy int32) {
	return i.mouseDX, i.mouseDY
}

// Controls maps WASD, Space, Left Shift and Left Ctrl plus mouse motion
// to camera controls.
func (i *Input) Controls() camera.Controls {
	return camera.Controls{
		Forward:  i.IsKeyHeld(sdl.SCANCODE_W),
		Backward: i.IsKeyHeld(sdl.SCANCODE_S),
		Left:     i.IsKeyHeld(sdl.SCANCODE_A),
		Right:    i.IsKeyHeld(sdl.SCANCODE_D),
		Up:       i.IsKeyHeld(sdl.SCANCODE_SPACE),
		Down:     i.IsKeyHeld(sdl.SCANCODE_LSHIFT),
		Boost:    i.IsKeyHeld(sdl.SCANCODE_LCTRL),
		MouseDX:  float32(i.mouseDX),
		MouseDY:  float32(i.mouseDY),
	}
}
