package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/cavetactics/internal/game"
)

// frameInterval paces rendering; simulation ticks are gated by the clock.
const frameInterval = 16 * time.Millisecond

// Loop runs the terminal front end for a game.
type Loop struct {
	screen   *Screen
	renderer *Renderer
	sampler  *InputSampler
	game     *game.Game
	clock    *game.Clock
	logger   *zap.Logger
}

// NewLoop wires a screen to g, ticking it every clock step.
func NewLoop(screen *Screen, g *game.Game, clock *game.Clock, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	camera := &Camera{}
	return &Loop{
		screen:   screen,
		renderer: NewRenderer(screen, camera),
		sampler:  NewInputSampler(camera),
		game:     g,
		clock:    clock,
		logger:   logger,
	}
}

// Run polls events, advances the simulation in fixed ticks and redraws
// until the player quits or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := l.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	l.renderer.Render(l.game)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok || !l.handleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			steps := l.clock.Advance(now.Sub(last))
			last = now
			for i := 0; i < steps; i++ {
				if err := l.game.Tick(ctx, l.sampler.Sample()); err != nil {
					l.logger.Warn("tick", zap.Stringer("state", l.game.State()), zap.Error(err))
				}
			}
			l.renderer.Render(l.game)
		}
	}
}

// handleEvent processes a single input event. It returns false to quit.
func (l *Loop) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			}
		}
	case *tcell.EventMouse:
		l.sampler.HandleMouse(ev)
	case *tcell.EventResize:
		l.screen.Sync()
	}
	return true
}
