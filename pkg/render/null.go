package render

import (
	"context"

	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

// NullPresenter is an engine.Presenter that only logs. Used for headless runs.
type NullPresenter struct {
	logger *logging.Logger
	status engine.GameStatus
}

// NewNullPresenter creates a NullPresenter with structured logging.
func NewNullPresenter(logger *logging.Logger) *NullPresenter {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &NullPresenter{logger: logger}
}

// Present implements engine.Presenter.
func (p *NullPresenter) Present(state *engine.GameState) {
	ctx := context.Background()
	if state == nil {
		p.logger.Debug(ctx, "Present called with nil state")
		return
	}

	if state.Status != p.status {
		p.logger.Info(ctx, "game status changed",
			"tick", state.Tick,
			"status", state.Status.String(),
		)
		p.status = state.Status
	}

	p.logger.Debug(ctx, "Present called",
		"tick", state.Tick,
		"health", state.Player.Health,
		"hostile", state.Counts.Hostile,
		"friendly", state.Counts.Friendly,
		"vehicles", state.Counts.Vehicles,
		"crates", state.Counts.Crates,
		"projectiles", len(state.Bullets)+len(state.Bombs)+len(state.Missiles),
	)
}
