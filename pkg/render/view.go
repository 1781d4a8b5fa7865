// Package render contains the presenters that show simulation snapshots:
// a logging null presenter and a tcell terminal map. The engo window
// presenter lives in the engo subpackage.
package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/engine"
)

// View maps the ground plane onto a top-down 2D surface centered on a point.
// Screen up is world +Z and screen right is world -X, which is the player's
// right hand at zero yaw.
type View struct {
	Center mgl64.Vec3
	// Scale is world units per screen unit
	Scale float64
}

// Project returns the offset of pos from the view center in screen units,
// with y growing downwards
func (v View) Project(pos mgl64.Vec3) (x, y float64) {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	return -(pos.X() - v.Center.X()) / scale, -(pos.Z() - v.Center.Z()) / scale
}

// Unproject is the inverse of Project on the ground plane
func (v View) Unproject(x, y float64) mgl64.Vec3 {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	return mgl64.Vec3{v.Center.X() - x*scale, 0, v.Center.Z() - y*scale}
}

// HUDLines returns the status lines shown over the map
func HUDLines(state *engine.GameState) []string {
	target := "None"
	if state.Jet.LockedTarget >= 0 {
		target = fmt.Sprintf("Tank %d", state.Jet.LockedTarget)
	}
	return []string{
		fmt.Sprintf("Health: %.0f", state.Player.Health),
		fmt.Sprintf("Enemies: %d", state.Counts.Hostile),
		fmt.Sprintf("Friendlies: %d", state.Counts.Friendly),
		fmt.Sprintf("Tanks: %d", state.Counts.Vehicles),
		"Jet Target: " + target,
	}
}

// GameOverLines returns the banner shown once the player is down
func GameOverLines() []string {
	return []string{"GAME OVER", "Press ENTER to Restart"}
}
