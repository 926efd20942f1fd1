package physics

import "particleview/pkg/vmath"

// ForceGenerator computes and applies a force to a particle. Generators
// are registered with a ForceRegistry and called once per particle per
// simulation step.
type ForceGenerator interface {
	// UpdateForce applies this generator's force to p. dt is the frame
	// duration in seconds, for generators whose force is time-dependent.
	UpdateForce(p *Particle, dt vmath.Real)
}

// Gravity applies a constant acceleration scaled by particle mass.
type Gravity struct {
	// Acceleration due to gravity, e.g. (0, -9.81, 0).
	Acceleration vmath.Vec3
}

// NewGravity returns a gravity generator with the given acceleration.
func NewGravity(acc vmath.Vec3) *Gravity {
	return &Gravity{Acceleration: acc}
}

// UpdateForce applies F = m * g. Infinite-mass particles are skipped.
func (g *Gravity) UpdateForce(p *Particle, _ vmath.Real) {
	if !p.HasFiniteMass() {
		return
	}
	p.AddForce(g.Acceleration.Scale(p.Mass()))
}

// Drag opposes motion with both a linear and a quadratic velocity term:
//
//	F = -v_hat * (k1*|v| + k2*|v|^2)
//
// k1 models laminar drag, k2 turbulent drag.
type Drag struct {
	K1 vmath.Real
	K2 vmath.Real
}

// NewDrag returns a drag generator with the given coefficients.
func NewDrag(k1, k2 vmath.Real) *Drag {
	return &Drag{K1: k1, K2: k2}
}

// UpdateForce applies the drag force opposing the particle's velocity.
func (d *Drag) UpdateForce(p *Particle, _ vmath.Real) {
	force := p.Velocity
	speed := force.Magnitude()
	if speed <= 0 {
		return
	}

	coeff := d.K1*speed + d.K2*speed*speed

	force.Normalize()
	p.AddForce(force.Scale(-coeff))
}

// Spring connects a particle to another particle with a Hooke's-law
// spring. Only the particle it is registered for feels the force; register
// a mirrored Spring on the other particle for a two-way spring.
type Spring struct {
	Other          *Particle
	SpringConstant vmath.Real
	RestLength     vmath.Real
}

// UpdateForce applies the spring force along the line between the two
// particles.
func (s *Spring) UpdateForce(p *Particle, _ vmath.Real) {
	force := p.Position.Sub(s.Other.Position)

	magnitude := force.Magnitude()
	if magnitude <= 0 {
		return
	}
	magnitude = (magnitude - s.RestLength) * s.SpringConstant

	force.Normalize()
	p.AddForce(force.Scale(-magnitude))
}

// AnchoredSpring connects a particle to a fixed point in space.
type AnchoredSpring struct {
	Anchor         vmath.Vec3
	SpringConstant vmath.Real
	RestLength     vmath.Real
}

// UpdateForce applies the spring force toward (or away from) the anchor.
func (s *AnchoredSpring) UpdateForce(p *Particle, _ vmath.Real) {
	force := p.Position.Sub(s.Anchor)

	magnitude := force.Magnitude()
	if magnitude <= 0 {
		return
	}
	magnitude = (s.RestLength - magnitude) * s.SpringConstant

	force.Normalize()
	p.AddForce(force.Scale(magnitude))
}

// Bungee is a spring that only pulls: it applies no force while shorter
// than its rest length.
type Bungee struct {
	Other          *Particle
	SpringConstant vmath.Real
	RestLength     vmath.Real
}

// UpdateForce applies the pull when the bungee is extended.
func (b *Bungee) UpdateForce(p *Particle, _ vmath.Real) {
	force := p.Position.Sub(b.Other.Position)

	magnitude := force.Magnitude()
	if magnitude <= b.RestLength {
		return
	}
	magnitude = (b.RestLength - magnitude) * b.SpringConstant

	force.Normalize()
	p.AddForce(force.Scale(magnitude))
}

// Buoyancy applies an upward force for a liquid plane parallel to XZ.
// The force is zero above the surface, proportional to the submerged
// fraction near it, and liquidDensity*volume when fully submerged.
type Buoyancy struct {
	// MaxDepth is the submersion depth at which buoyancy reaches its
	// maximum, typically half the object's height.
	MaxDepth vmath.Real
	// Volume of the object in cubic meters.
	Volume vmath.Real
	// WaterHeight is the Y coordinate of the liquid surface.
	WaterHeight vmath.Real
	// LiquidDensity in kg/m^3. Water is 1000.
	LiquidDensity vmath.Real
}

// UpdateForce applies the buoyancy force for the particle's current depth.
func (b *Buoyancy) UpdateForce(p *Particle, _ vmath.Real) {
	depth := p.Position.Y

	// Out of the water.
	if depth >= b.WaterHeight+b.MaxDepth {
		return
	}

	var force vmath.Vec3
	if depth <= b.WaterHeight-b.MaxDepth {
		// Fully submerged.
		force.Y = b.LiquidDensity * b.Volume
	} else {
		// Partly submerged: linear in the submerged fraction.
		force.Y = b.LiquidDensity * b.Volume *
			(b.WaterHeight + b.MaxDepth - depth) / (2 * b.MaxDepth)
	}
	p.AddForce(force)
}
