package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particleview/pkg/vmath"
)

func TestSetMass(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(2))
	assert.InDelta(t, 0.5, p.InverseMass, 1e-6)
	assert.InDelta(t, 2, p.Mass(), 1e-6)
	assert.True(t, p.HasFiniteMass())

	assert.ErrorIs(t, p.SetMass(0), ErrNonPositiveMass)
	assert.ErrorIs(t, p.SetMass(-1), ErrNonPositiveMass)
}

func TestInfiniteMass(t *testing.T) {
	var p Particle
	p.SetInfiniteMass()
	assert.False(t, p.HasFiniteMass())

	// An immovable particle must not move no matter the forces.
	p.Velocity = vmath.V3(1, 0, 0)
	p.AddForce(vmath.V3(1000, 1000, 1000))
	p.Integrate(1)
	assert.Equal(t, vmath.Vec3{}, p.Position)
}

func TestIntegratePosition(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(1))
	p.Damping = 1
	p.Velocity = vmath.V3(2, 0, 0)

	p.Integrate(0.5)
	assert.InDelta(t, 1, p.Position.X, 1e-6)
}

func TestIntegrateAcceleration(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(1))
	p.Damping = 1
	p.Acceleration = vmath.V3(0, -10, 0)

	p.Integrate(0.1)
	assert.InDelta(t, -1, p.Velocity.Y, 1e-5)
}

func TestIntegrateForceAccumulator(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(2))
	p.Damping = 1

	// F = 10 on m = 2 gives a = 5; over 1s velocity reaches 5.
	p.AddForce(vmath.V3(10, 0, 0))
	p.Integrate(1)
	assert.InDelta(t, 5, p.Velocity.X, 1e-5)

	// The accumulator clears after the step: no residual force.
	p.Integrate(1)
	assert.InDelta(t, 5, p.Velocity.X, 1e-5)
}

func TestIntegrateDamping(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(1))
	p.Damping = 0.5
	p.Velocity = vmath.V3(8, 0, 0)

	// damping^dt with dt = 1 halves the velocity.
	p.Integrate(1)
	assert.InDelta(t, 4, p.Velocity.X, 1e-5)
}

func TestIntegrateSkipsBadTimestep(t *testing.T) {
	var p Particle
	require.NoError(t, p.SetMass(1))
	p.Velocity = vmath.V3(1, 0, 0)

	p.Integrate(0)
	p.Integrate(-1)
	assert.Equal(t, vmath.Vec3{}, p.Position)
}
