// pkg/physics/integrate_test.go
package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestApplyGravityAndAdvance(t *testing.T) {
	v := ApplyGravity(mgl64.Vec3{1, 0, 0}, 20, 0.5)
	assert.InDelta(t, -10.0, v.Y(), 1e-9)
	assert.InDelta(t, 1.0, v.X(), 1e-9)

	p := Advance(mgl64.Vec3{0, 10, 0}, v, 0.5)
	assert.InDelta(t, 0.5, p.X(), 1e-9)
	assert.InDelta(t, 5.0, p.Y(), 1e-9)
}

func TestDamp(t *testing.T) {
	v := Damp(mgl64.Vec3{10, -4, 2}, 0.9)
	assert.InDelta(t, 9.0, v.X(), 1e-9)
	assert.InDelta(t, -3.6, v.Y(), 1e-9)
	assert.InDelta(t, 1.8, v.Z(), 1e-9)

	assert.Equal(t, mgl64.Vec3{}, Damp(mgl64.Vec3{1, 2, 3}, 0))
}

func TestZeroTimeStepIsIdentity(t *testing.T) {
	p := mgl64.Vec3{3, 4, 5}
	v := mgl64.Vec3{-1, 2, 7}
	assert.Equal(t, p, Advance(p, ApplyGravity(v, 20, 0), 0))

	q := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0})
	assert.Equal(t, q, IntegrateOrientation(q, mgl64.Vec3{4, 1, 0}, 0))

	body := RigidBody{
		Position:        mgl64.Vec3{2, 0.5, 2},
		Velocity:        mgl64.Vec3{1, 0, 1},
		Orientation:     q,
		AngularVelocity: mgl64.Vec3{0, 3, 0},
	}
	StepCrate(&body, 0.5, 20, 0)
	assert.Equal(t, mgl64.Vec3{2, 0.5, 2}, body.Position)
	assert.Equal(t, q, body.Orientation)
}

func TestClampToGround(t *testing.T) {
	tests := []struct {
		name      string
		position  mgl64.Vec3
		velocity  mgl64.Vec3
		clamped   bool
		expectedY float64
		expectedV float64
	}{
		{
			name:      "below_rest_height",
			position:  mgl64.Vec3{0, 0.2, 0},
			velocity:  mgl64.Vec3{1, -3, 0},
			clamped:   true,
			expectedY: 1,
			expectedV: 0,
		},
		{
			name:      "above_rest_height",
			position:  mgl64.Vec3{0, 4, 0},
			velocity:  mgl64.Vec3{1, -3, 0},
			clamped:   false,
			expectedY: 4,
			expectedV: -3,
		},
		{
			name:      "exactly_at_rest_height",
			position:  mgl64.Vec3{0, 1, 0},
			velocity:  mgl64.Vec3{0, 0, 0},
			clamped:   false,
			expectedY: 1,
			expectedV: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, v := tt.position, tt.velocity
			got := ClampToGround(&p, &v, 1)
			assert.Equal(t, tt.clamped, got)
			assert.InDelta(t, tt.expectedY, p.Y(), 1e-9)
			assert.InDelta(t, tt.expectedV, v.Y(), 1e-9)
			assert.InDelta(t, tt.velocity.X(), v.X(), 1e-9)
		})
	}
}

func TestIntegrateOrientation(t *testing.T) {
	q := mgl64.QuatIdent()
	w := mgl64.Vec3{0, 2, 0}

	for range 100 {
		q = IntegrateOrientation(q, w, 0.01)
	}

	assert.InDelta(t, 1.0, q.Len(), 1e-9)
	expected := mgl64.QuatRotate(2, mgl64.Vec3{0, 1, 0})
	assert.True(t, q.ApproxEqualThreshold(expected, 1e-6), "got %v expected %v", q, expected)

	// Slow spin below the threshold leaves orientation alone
	slow := IntegrateOrientation(mgl64.QuatIdent(), mgl64.Vec3{0.001, 0, 0}, 1)
	assert.Equal(t, mgl64.QuatIdent(), slow)
}

func TestStepCrate_BouncesWhenAirborne(t *testing.T) {
	body := RigidBody{
		Position:        mgl64.Vec3{0, 0.6, 0},
		Velocity:        mgl64.Vec3{0, -10, 0},
		Orientation:     mgl64.QuatIdent(),
		AngularVelocity: mgl64.Vec3{1, 0, 0},
	}

	StepCrate(&body, 0.5, 20, 0.1)

	assert.InDelta(t, 0.5, body.Position.Y(), 1e-9)
	// (-10 - 2) * -0.5 = 6, then linear damping 0.9
	assert.InDelta(t, 6*CrateLinearDamping, body.Velocity.Y(), 1e-9)
	assert.InDelta(t, CrateAngularDamping*CrateSpinLoss, body.AngularVelocity.X(), 1e-9)
}

func TestStepCrate_StopsWhenResting(t *testing.T) {
	body := RigidBody{
		Position:    mgl64.Vec3{0, 0.5, 0},
		Velocity:    mgl64.Vec3{2, 0, 0},
		Orientation: mgl64.QuatIdent(),
	}

	StepCrate(&body, 0.5, 20, 0.1)

	assert.InDelta(t, 0.5, body.Position.Y(), 1e-9)
	assert.InDelta(t, 0.0, body.Velocity.Y(), 1e-9)
	assert.InDelta(t, 0.2, body.Position.X(), 1e-9)
	assert.InDelta(t, 1.8, body.Velocity.X(), 1e-9)
}

func TestStepCrate_FallsFreely(t *testing.T) {
	body := RigidBody{
		Position:    mgl64.Vec3{0, 5, 0},
		Orientation: mgl64.QuatIdent(),
	}

	StepCrate(&body, 0.5, 20, 0.1)

	// v = -2, p = 5 - 0.2
	assert.InDelta(t, 4.8, body.Position.Y(), 1e-9)
	assert.InDelta(t, -2*CrateLinearDamping, body.Velocity.Y(), 1e-9)
}
