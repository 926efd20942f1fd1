// Package trajectory predicts constant-acceleration projectile paths in
// closed form. The simulation itself integrates numerically; these
// helpers exist for trajectory previews, headless tooling, and sanity
// checks against the integrator.
package trajectory

import (
	"github.com/chewxy/math32"

	"particleview/pkg/vmath"
)

// PositionAt returns the position at time t for a projectile launched
// from p0 with velocity v0 under constant acceleration a:
//
//	p(t) = p0 + v0*t + a*t^2/2
func PositionAt(p0, v0, a vmath.Vec3, t vmath.Real) vmath.Vec3 {
	p := p0
	p.AddScaled(v0, t)
	p.AddScaled(a, t*t/2)
	return p
}

// TimeOfFlight returns the positive time at which a projectile launched
// at height y0 with vertical velocity vy and vertical acceleration ay
// crosses the given floor height. ok is false when the projectile never
// reaches the floor (e.g. accelerating upward, or no real root).
func TimeOfFlight(y0, vy, ay, floor vmath.Real) (t vmath.Real, ok bool) {
	h := y0 - floor

	if ay == 0 {
		// Linear motion: needs a downward velocity to ever land.
		if vy >= 0 {
			return 0, false
		}
		return -h / vy, true
	}

	// Solve ay/2*t^2 + vy*t + h = 0 for the largest positive root.
	disc := vy*vy - 2*ay*h
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math32.Sqrt(disc)
	t1 := (-vy + sqrtDisc) / ay
	t2 := (-vy - sqrtDisc) / ay
	t = math32.Max(t1, t2)
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// Apex returns the time and position of the highest point of a
// trajectory. For a non-negative vertical acceleration there is no apex
// and ok is false.
func Apex(p0, v0, a vmath.Vec3) (t vmath.Real, pos vmath.Vec3, ok bool) {
	if a.Y >= 0 {
		return 0, vmath.Vec3{}, false
	}
	t = -v0.Y / a.Y
	if t < 0 {
		t = 0
	}
	return t, PositionAt(p0, v0, a, t), true
}

// GroundRange returns the horizontal distance from the launch point to
// the impact point at the given floor height. ok is false when the
// projectile never lands.
func GroundRange(p0, v0, a vmath.Vec3, floor vmath.Real) (dist vmath.Real, ok bool) {
	t, ok := TimeOfFlight(p0.Y, v0.Y, a.Y, floor)
	if !ok {
		return 0, false
	}
	impact := PositionAt(p0, v0, a, t)
	dx := impact.X - p0.X
	dz := impact.Z - p0.Z
	return math32.Sqrt(dx*dx + dz*dz), true
}

// Sample returns steps+1 evenly spaced points along the trajectory from
// launch to the given end time, inclusive.
func Sample(p0, v0, a vmath.Vec3, end vmath.Real, steps int) []vmath.Vec3 {
	if steps < 1 {
		steps = 1
	}
	pts := make([]vmath.Vec3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := end * vmath.Real(i) / vmath.Real(steps)
		pts = append(pts, PositionAt(p0, v0, a, t))
	}
	return pts
}
