// Package physics implements a point-mass particle simulation: particles
// integrated with semi-implicit Euler, composable force generators, and a
// ballistic demo built on top of them.
package physics

import (
	"errors"

	"github.com/chewxy/math32"

	"particleview/pkg/vmath"
)

// ErrNonPositiveMass is returned by SetMass for a mass that is zero or
// negative. Immovable objects are expressed with SetInfiniteMass instead.
var ErrNonPositiveMass = errors.New("physics: mass must be positive")

// Particle is a point mass. It holds no orientation: the simplest object
// that can be simulated with forces and integration.
type Particle struct {
	Position     vmath.Vec3
	Velocity     vmath.Vec3
	Acceleration vmath.Vec3

	// Damping removes a proportion of velocity each second. A value of
	// 0.99 loses 1% of velocity per second; 1.0 means no damping. It is
	// applied as damping^dt so the result is frame-rate independent, and
	// it keeps numerical integration error from adding energy over time.
	Damping vmath.Real

	// InverseMass is stored instead of mass so that infinite mass
	// (immovable) is representable as zero, and so integration multiplies
	// rather than divides.
	InverseMass vmath.Real

	forceAccum vmath.Vec3
}

// SetMass sets the particle's mass. Mass must be positive; use
// SetInfiniteMass for immovable particles.
func (p *Particle) SetMass(mass vmath.Real) error {
	if mass <= 0 {
		return ErrNonPositiveMass
	}
	p.InverseMass = 1 / mass
	return nil
}

// SetInfiniteMass makes the particle immovable: forces and integration
// leave it untouched.
func (p *Particle) SetInfiniteMass() {
	p.InverseMass = 0
}

// Mass returns the particle's mass. Infinite-mass particles report the
// largest representable float32.
func (p *Particle) Mass() vmath.Real {
	if p.InverseMass == 0 {
		return math32.MaxFloat32
	}
	return 1 / p.InverseMass
}

// HasFiniteMass reports whether the particle responds to forces.
func (p *Particle) HasFiniteMass() bool {
	return p.InverseMass > 0
}

// AddForce accumulates a force to be applied at the next integration step.
func (p *Particle) AddForce(f vmath.Vec3) {
	p.forceAccum = p.forceAccum.Add(f)
}

// ClearAccumulator zeroes the accumulated force. Integrate calls this
// automatically at the end of each step.
func (p *Particle) ClearAccumulator() {
	p.forceAccum.Clear()
}

// Integrate advances the particle by dt seconds using semi-implicit Euler.
// Particles with infinite mass, and non-positive timesteps, are skipped.
func (p *Particle) Integrate(dt vmath.Real) {
	if p.InverseMass <= 0 || dt <= 0 {
		return
	}

	// Update position from the current velocity.
	p.Position.AddScaled(p.Velocity, dt)

	// Acceleration from the base value plus accumulated forces.
	acc := p.Acceleration
	acc.AddScaled(p.forceAccum, p.InverseMass)

	// Update velocity, then impose drag.
	p.Velocity.AddScaled(acc, dt)
	p.Velocity = p.Velocity.Scale(vmath.Pow(p.Damping, dt))

	p.ClearAccumulator()
}
