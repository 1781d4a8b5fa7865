package engine

import (
	"context"
	"time"
)

// DefaultFrameRate is the presenter refresh rate
const DefaultFrameRate = 60

// Loop drives a game from a controller to a presenter on a fixed ticker
type Loop struct {
	Game       *Game
	Controller Controller
	Presenter  Presenter

	// Rate is the tick interval. Zero means DefaultFrameRate.
	Rate time.Duration
	// MaxFrames stops the loop after that many updates. Zero runs until ctx is done.
	MaxFrames int
	// OnFrame is called with each snapshot after it was presented
	OnFrame func(state *GameState)
}

// Run ticks until ctx is cancelled or MaxFrames is reached. The elapsed wall
// time between ticks becomes the frame's time step.
func (l *Loop) Run(ctx context.Context) error {
	rate := l.Rate
	if rate <= 0 {
		rate = time.Second / DefaultFrameRate
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	last := time.Now()
	for frames := 0; l.MaxFrames == 0 || frames < l.MaxFrames; frames++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			l.Step(dt)
		}
	}
	return nil
}

// Step runs a single frame with the given time step
func (l *Loop) Step(dt float64) {
	in := l.Controller.NextInput(dt)
	in.Dt = dt
	l.Game.Update(in)

	state := l.Game.Snapshot()
	l.Presenter.Present(state)
	if l.OnFrame != nil {
		l.OnFrame(state)
	}
}
