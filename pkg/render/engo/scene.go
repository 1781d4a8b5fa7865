// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

// Asset name the embedded HUD font is registered under
const hudFontURL = "goregular.ttf"

// stepSystem advances the simulation once per engo frame
type stepSystem struct {
	loop  *engine.Loop
	input *InputSystem
	exit  func()
}

// Priority runs the simulation before anything is drawn
func (s *stepSystem) Priority() int { return 100 }

func (s *stepSystem) Remove(basic ecs.BasicEntity) {}

func (s *stepSystem) Update(dt float32) {
	if s.input.QuitRequested() {
		s.exit()
		return
	}
	s.loop.Step(float64(dt))
}

// GameScene runs the simulation inside an engo window
type GameScene struct {
	game    *engine.Game
	display config.DisplayConfig
	onFrame func(*engine.GameState)
	logger  *logging.Logger

	// Rendering components
	assets    *AssetManager
	presenter *Presenter
	camera    *CameraSystem
	input     *InputSystem
	hud       *HUDSystem
	loop      *engine.Loop
}

// NewGameScene creates a scene for game. onFrame, if set, sees every snapshot.
func NewGameScene(game *engine.Game, display config.DisplayConfig, onFrame func(*engine.GameState)) *GameScene {
	return &GameScene{
		game:    game,
		display: display,
		onFrame: onFrame,
		logger:  logging.NewLogger(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload registers the embedded HUD font (required by Engo)
func (scene *GameScene) Preload() {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(goregular.TTF)); err != nil {
		scene.logger.Error(context.Background(), "failed to load HUD font", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.RGBA{24, 28, 24, 255})

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	SetupInputBindings()

	scene.assets = NewAssetManager()
	if err := scene.assets.LoadAssets(); err != nil {
		panic("Failed to initialize renderer: " + err.Error())
	}

	scene.hud = NewHUDSystem()
	font := &common.Font{URL: hudFontURL, FG: color.White, Size: 18}
	if err := font.CreatePreloaded(); err != nil {
		scene.logger.Error(context.Background(), "HUD text disabled", err)
	} else {
		scene.hud.SetFont(font)
	}

	scene.setupSystems(world, renderSystem, NewInputSystem())
	scene.camera.SetViewport(engo.WindowWidth(), engo.WindowHeight())
	scene.hud.SetViewport(engo.WindowWidth(), engo.WindowHeight())
}

// setupSystems wires the simulation loop to the drawing systems
func (scene *GameScene) setupSystems(world *ecs.World, sink spriteSink, input *InputSystem) {
	if scene.assets == nil {
		scene.assets = NewAssetManager()
	}
	if scene.hud == nil {
		scene.hud = NewHUDSystem()
	}
	scene.hud.attach(sink)

	scene.input = input
	scene.camera = NewCameraSystem(scene.display.PixelsPerUnit)
	scene.camera.buttons = input.buttons
	scene.presenter = NewPresenter(sink, scene.assets, scene.camera, scene.hud)
	scene.loop = &engine.Loop{
		Game:       scene.game,
		Controller: scene.input,
		Presenter:  scene.presenter,
		OnFrame:    scene.onFrame,
	}

	world.AddSystem(&stepSystem{loop: scene.loop, input: input, exit: engo.Exit})
	world.AddSystem(scene.camera)
	world.AddSystem(scene.presenter)
	world.AddSystem(scene.hud)
}

// Exit is called when the window closes (required by Engo)
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "window closed", "tick", scene.game.Snapshot().Tick)
}

// RunOptions returns the engo window settings for display
func RunOptions(display config.DisplayConfig) engo.RunOptions {
	return engo.RunOptions{
		Title:      "Battleforce",
		Width:      display.WindowWidth,
		Height:     display.WindowHeight,
		Fullscreen: display.Fullscreen,
		VSync:      true,
	}
}
