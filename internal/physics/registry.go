package physics

import "particleview/pkg/vmath"

// registration links one particle to one force generator.
type registration struct {
	particle  *Particle
	generator ForceGenerator
}

// ForceRegistry holds which force generators apply to which particles.
// The same generator may be registered against many particles and vice
// versa. The zero value is ready to use.
type ForceRegistry struct {
	registrations []registration
}

// Add registers that fg applies to p.
func (r *ForceRegistry) Add(p *Particle, fg ForceGenerator) {
	r.registrations = append(r.registrations, registration{particle: p, generator: fg})
}

// Remove drops the registration pairing p with fg, if present. Other
// registrations involving either are unaffected.
func (r *ForceRegistry) Remove(p *Particle, fg ForceGenerator) {
	for i, reg := range r.registrations {
		if reg.particle == p && reg.generator == fg {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

// Clear removes all registrations. The particles and generators
// themselves are untouched.
func (r *ForceRegistry) Clear() {
	r.registrations = r.registrations[:0]
}

// Len returns the number of registrations.
func (r *ForceRegistry) Len() int {
	return len(r.registrations)
}

// UpdateForces asks every registered generator to apply its force.
// Call once per frame before integrating.
func (r *ForceRegistry) UpdateForces(dt vmath.Real) {
	for _, reg := range r.registrations {
		reg.generator.UpdateForce(reg.particle, dt)
	}
}
