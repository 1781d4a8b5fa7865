package engine

import "github.com/IndieDev99/battleforce/pkg/validation"

// Move is the requested walking direction in the player's frame.
// Both axes are in [-1, 1].
type Move struct {
	Forward float64
	Strafe  float64
}

// Input is everything a controller supplies for one frame
type Input struct {
	Dt        float64
	Move      Move
	Run       bool
	Jump      bool
	LookYaw   float64
	LookPitch float64
	Fire      bool
	Restart   bool
}

// Controller produces the input for the next frame
type Controller interface {
	NextInput(dt float64) Input
}

// sanitizeInput clamps everything a controller could get wrong
func sanitizeInput(in Input) Input {
	in.Dt = validation.SanitizeFrameTime(in.Dt)
	in.Move.Forward = validation.SanitizeAxis(in.Move.Forward)
	in.Move.Strafe = validation.SanitizeAxis(in.Move.Strafe)
	in.LookYaw = validation.SanitizeLook(in.LookYaw)
	in.LookPitch = validation.SanitizeLook(in.LookPitch)
	return in
}
