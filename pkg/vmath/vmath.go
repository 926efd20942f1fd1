// Package vmath provides the float32 vector and matrix math used by the
// simulation and the renderer.
//
// All types use 32-bit floats (Real) so values can be handed to the GPU
// without conversion.
package vmath

import (
	"errors"

	"github.com/chewxy/math32"
)

// Real is the scalar type used throughout the simulation. Single precision
// matches what the GPU consumes.
type Real = float32

// Epsilon is the squared-magnitude threshold below which a vector is
// treated as zero for normalization purposes.
const Epsilon Real = 1e-9

// ErrParallelVectors is returned by OrthonormalBasis when the two input
// vectors are parallel (or one of them is zero) and no basis exists.
var ErrParallelVectors = errors.New("vmath: cannot build orthonormal basis from parallel vectors")

// OrthonormalBasis constructs a right-handed orthonormal basis from two
// non-parallel vectors. The x axis is a normalized, the z axis is
// perpendicular to both inputs and the y axis completes the set.
func OrthonormalBasis(a, b Vec3) (x, y, z Vec3, err error) {
	x = a.Normalized()
	z = x.Cross(b)
	if z.MagnitudeSquared() <= Epsilon {
		return Vec3{}, Vec3{}, Vec3{}, ErrParallelVectors
	}
	z.Normalize()
	y = z.Cross(x)
	return x, y, z, nil
}

// Sqrt returns the square root of v.
func Sqrt(v Real) Real { return math32.Sqrt(v) }

// Pow returns base raised to exp.
func Pow(base, exp Real) Real { return math32.Pow(base, exp) }
