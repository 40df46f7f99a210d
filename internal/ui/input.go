package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavetactics/internal/game"
)

// InputSampler turns mouse events into the per-tick game.Input. The
// confirm signal is edge-triggered: it is reported on the first sample
// after the primary button goes down and not again until it is released.
type InputSampler struct {
	camera *Camera

	x, y    int
	inView  bool
	down    bool
	pending bool
}

// NewInputSampler creates a sampler converting cells through camera.
func NewInputSampler(camera *Camera) *InputSampler {
	return &InputSampler{camera: camera}
}

// HandleMouse records the pointer position and button state.
func (s *InputSampler) HandleMouse(ev *tcell.EventMouse) {
	s.x, s.y = ev.Position()
	s.inView = true
	down := ev.Buttons()&tcell.Button1 != 0
	if down && !s.down {
		s.pending = true
	}
	s.down = down
}

// Sample returns the input for one tick and consumes a pending confirm.
func (s *InputSampler) Sample() game.Input {
	in := game.Input{Confirm: s.pending}
	s.pending = false
	if s.inView {
		in.Pointer, in.PointerValid = s.camera.ToTile(s.x, s.y)
	}
	return in
}
