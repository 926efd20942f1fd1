package vmath

import "github.com/chewxy/math32"

// Vec2 is a two-component float32 vector.
type Vec2 struct {
	X, Y Real
}

// V2 constructs a Vec2.
func V2(x, y Real) Vec2 { return Vec2{X: x, Y: y} }

// Magnitude returns the Euclidean length of the vector.
//
// When only comparing lengths, prefer MagnitudeSquared to avoid the
// square root.
func (v Vec2) Magnitude() Real {
	return math32.Sqrt(v.MagnitudeSquared())
}

// MagnitudeSquared returns the squared Euclidean length of the vector.
func (v Vec2) MagnitudeSquared() Real {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns a unit vector with the same direction. The zero
// vector cannot be normalized; it is returned unchanged so callers never
// see NaN components.
func (v Vec2) Normalized() Vec2 {
	magSq := v.MagnitudeSquared()
	if magSq <= Epsilon {
		return Vec2{}
	}
	inv := 1 / math32.Sqrt(magSq)
	return v.Scale(inv)
}

// Normalize scales the vector in place to unit length, or clears it if it
// is (near) zero.
func (v *Vec2) Normalize() {
	*v = v.Normalized()
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v.X + u.X, v.Y + u.Y} }

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v.X - u.X, v.Y - u.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s Real) Vec2 { return Vec2{v.X * s, v.Y * s} }

// AddScaled adds u*s to v in place.
func (v *Vec2) AddScaled(u Vec2, s Real) {
	v.X += u.X * s
	v.Y += u.Y * s
}

// Dot returns the dot product of v and u.
func (v Vec2) Dot(u Vec2) Real {
	return v.X*u.X + v.Y*u.Y
}

// ComponentProduct returns the component-wise product of v and u.
func (v Vec2) ComponentProduct(u Vec2) Vec2 {
	return Vec2{v.X * u.X, v.Y * u.Y}
}

// Clear zeroes all components.
func (v *Vec2) Clear() { *v = Vec2{} }

// Invert flips the sign of all components.
func (v *Vec2) Invert() {
	v.X = -v.X
	v.Y = -v.Y
}
