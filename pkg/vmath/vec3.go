package vmath

import "github.com/chewxy/math32"

// Vec3 is a three-component float32 vector.
type Vec3 struct {
	X, Y, Z Real
}

// V3 constructs a Vec3.
func V3(x, y, z Real) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Magnitude returns the Euclidean length of the vector.
func (v Vec3) Magnitude() Real {
	return math32.Sqrt(v.MagnitudeSquared())
}

// MagnitudeSquared returns the squared Euclidean length of the vector.
// Cheaper than Magnitude when only comparing lengths.
func (v Vec3) MagnitudeSquared() Real {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns a unit vector with the same direction. The zero
// vector cannot be normalized; it is returned unchanged so callers never
// see NaN components.
func (v Vec3) Normalized() Vec3 {
	magSq := v.MagnitudeSquared()
	if magSq <= Epsilon {
		return Vec3{}
	}
	inv := 1 / math32.Sqrt(magSq)
	return v.Scale(inv)
}

// Normalize scales the vector in place to unit length, or clears it if it
// is (near) zero.
func (v *Vec3) Normalize() {
	*v = v.Normalized()
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// AddScaled adds u*s to v in place. Equivalent to *v = v.Add(u.Scale(s)).
func (v *Vec3) AddScaled(u Vec3, s Real) {
	v.X += u.X * s
	v.Y += u.Y * s
	v.Z += u.Z * s
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) Real {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product v x u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// ComponentProduct returns the component-wise product of v and u.
func (v Vec3) ComponentProduct(u Vec3) Vec3 {
	return Vec3{v.X * u.X, v.Y * u.Y, v.Z * u.Z}
}

// Clear zeroes all components.
func (v *Vec3) Clear() { *v = Vec3{} }

// Invert flips the sign of all components.
func (v *Vec3) Invert() {
	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
}
