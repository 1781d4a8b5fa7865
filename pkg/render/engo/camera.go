// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/render"
)

// CameraSystem follows the player over the top-down map
type CameraSystem struct {
	buttons buttons

	// Target to follow
	target    mgl64.Vec3
	targetSet bool

	// Camera properties
	zoom          float32
	minZoom       float32
	maxZoom       float32
	pixelsPerUnit float64
	viewport      engo.Point

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos mgl64.Vec3
}

// NewCameraSystem creates a camera drawing pixelsPerUnit pixels per world
// unit at 1x zoom
func NewCameraSystem(pixelsPerUnit float64) *CameraSystem {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &CameraSystem{
		buttons:       engoButtons{},
		zoom:          1.0,
		minZoom:       0.25,
		maxZoom:       4.0,
		pixelsPerUnit: pixelsPerUnit,
		followSpeed:   8.0,
		smoothing:     true,
	}
}

// Priority runs the camera after the simulation step and before sprites are placed
func (cs *CameraSystem) Priority() int { return 50 }

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update updates the camera position and zoom
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := cs.buttons.Scroll(); scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if cs.buttons.Down("zoomIn") {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if cs.buttons.Down("zoomOut") {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if cs.buttons.JustPressed("resetZoom") {
		cs.SetZoom(1.0)
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := min(float64(cs.followSpeed*dt), 1)
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Mul(step))
}

// SetTarget sets the position for the camera to follow
func (cs *CameraSystem) SetTarget(target mgl64.Vec3) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true

	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetViewport sets the window size in pixels
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.viewport = engo.Point{X: width, Y: height}
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	return max(cs.minZoom, min(cs.maxZoom, zoom))
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() mgl64.Vec3 {
	return cs.currentPos
}

// Scale returns pixels per world unit at the current zoom
func (cs *CameraSystem) Scale() float64 {
	return cs.pixelsPerUnit * float64(cs.zoom)
}

func (cs *CameraSystem) view() render.View {
	return render.View{Center: cs.currentPos, Scale: 1 / cs.Scale()}
}

// WorldToScreen converts a world position to window pixels
func (cs *CameraSystem) WorldToScreen(pos mgl64.Vec3) engo.Point {
	x, y := cs.view().Project(pos)
	return engo.Point{
		X: cs.viewport.X/2 + float32(x),
		Y: cs.viewport.Y/2 + float32(y),
	}
}

// ScreenToWorld converts window pixels to a ground position
func (cs *CameraSystem) ScreenToWorld(p engo.Point) mgl64.Vec3 {
	return cs.view().Unproject(float64(p.X-cs.viewport.X/2), float64(p.Y-cs.viewport.Y/2))
}
