// cmd/battleforce/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"

	"github.com/IndieDev99/battleforce/pkg/audio"
	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/logging"
	"github.com/IndieDev99/battleforce/pkg/render"
	engorender "github.com/IndieDev99/battleforce/pkg/render/engo"
	"github.com/IndieDev99/battleforce/pkg/validation"
)

// idleController stands the player still. Used by the null presenter.
type idleController struct{}

func (idleController) NextInput(dt float64) engine.Input {
	return engine.Input{}
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON configuration file")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	renderer := flag.String("renderer", "terminal", "Presenter: 'terminal', 'engo' or 'null'")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	mute := flag.Bool("mute", false, "Disable sound")
	frames := flag.Int("frames", 0, "Stop after this many frames, 0 runs until quit (terminal and null only)")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	logger, closeLog, err := openLogger(*logPath, *renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	ctx := context.Background()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	gameConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if err := validation.ValidateConfig(gameConfig); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}
	if *mute {
		gameConfig.Audio.Enabled = false
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	game := engine.NewGame(gameConfig, engine.WithLogger(logger), engine.WithSeed(*seed))
	logger.Info(ctx, "Game created",
		"renderer", *renderer,
		"seed", *seed,
	)

	onFrame, closeAudio := startAudio(ctx, logger, game, gameConfig.Audio)
	defer closeAudio()

	switch *renderer {
	case "engo":
		runEngo(logger, game, gameConfig.Display, onFrame)
	case "null":
		err = runLoop(game, idleController{}, render.NewNullPresenter(logger), *frames, onFrame, nil)
	case "terminal":
		err = runTerminal(game, gameConfig.Display, *frames, onFrame)
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Simulation stopped with an error", err)
		os.Exit(1)
	}

	state := game.Snapshot()
	logger.Info(ctx, "Simulation stopped",
		"tick", state.Tick,
		"status", state.Status.String(),
		"hostile", state.Counts.Hostile,
		"friendly", state.Counts.Friendly,
		"vehicles", state.Counts.Vehicles,
	)
}

// openLogger picks the log destination. The terminal presenter owns the
// screen, so without -log its logs are dropped.
func openLogger(path, renderer string) (*logging.Logger, func(), error) {
	if path == "" {
		if renderer == "terminal" {
			return logging.NewLoggerTo(io.Discard), func() {}, nil
		}
		return logging.NewLogger(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLoggerTo(f), func() { f.Close() }, nil
}

// startAudio wires sound cues to the game's event bus. The returned frame
// hook keeps the listener on the player. Sound is optional: a missing device
// only logs a warning.
func startAudio(ctx context.Context, logger *logging.Logger, game *engine.Game, cfg config.AudioConfig) (func(*engine.GameState), func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}

	player := audio.NewPlayer(cfg, audio.WithPlayerLogger(logger))
	if err := player.Init(); err != nil {
		logger.Warn(ctx, "Audio initialization failed, continuing without sound", "error", err.Error())
		return nil, func() {}
	}
	player.Attach(game.EventBus)

	onFrame := func(state *engine.GameState) {
		player.SetListener(state.Player.Position, state.Player.Right)
	}
	return onFrame, player.Close
}

// runLoop drives the game on a ticker until a signal, done or the frame limit
func runLoop(game *engine.Game, controller engine.Controller, presenter engine.Presenter, frames int, onFrame func(*engine.GameState), done <-chan struct{}) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if done != nil {
		go func() {
			select {
			case <-done:
				stop()
			case <-ctx.Done():
			}
		}()
	}

	loop := &engine.Loop{
		Game:       game,
		Controller: controller,
		Presenter:  presenter,
		MaxFrames:  frames,
		OnFrame:    onFrame,
	}
	return loop.Run(ctx)
}

// runTerminal takes over the terminal until the user quits
func runTerminal(game *engine.Game, display config.DisplayConfig, frames int, onFrame func(*engine.GameState)) error {
	presenter, err := render.NewTerminalPresenter(display.TerminalScale)
	if err != nil {
		return err
	}
	defer presenter.Close()

	keyboard := render.NewKeyboard()
	go keyboard.Listen(context.Background(), presenter.Screen())

	return runLoop(game, keyboard, presenter, frames, onFrame, keyboard.Done())
}

// runEngo opens a window and blocks until it closes
func runEngo(logger *logging.Logger, game *engine.Game, display config.DisplayConfig, onFrame func(*engine.GameState)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Signal received, closing window")
		engo.Exit()
	}()

	scene := engorender.NewGameScene(game, display, onFrame)
	engo.Run(engorender.RunOptions(display), scene)
}
