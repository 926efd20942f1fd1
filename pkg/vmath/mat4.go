package vmath

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix stored in column-major order, the layout
// WGSL expects for mat4x4<f32>. Element (row, col) lives at m[col*4+row].
type Mat4 [16]Real

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a matrix translating by t.
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// Scaling returns a matrix scaling each axis by s.
func Scaling(s Vec3) Mat4 {
	m := Identity()
	m[0] = s.X
	m[5] = s.Y
	m[10] = s.Z
	return m
}

// RotationY returns a matrix rotating by angle radians around the Y axis.
func RotationY(angle Real) Mat4 {
	s, c := math32.Sincos(angle)
	m := Identity()
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}

// Mul returns the matrix product m * n, applying n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum Real
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulPoint transforms p as a position (w = 1) and returns the result after
// the perspective divide.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		inv := 1 / w
		return Vec3{x * inv, y * inv, z * inv}
	}
	return Vec3{x, y, z}
}

// Transposed returns the transpose of m.
func (m Mat4) Transposed() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Perspective returns a right-handed perspective projection with a [0, 1]
// clip-space depth range (the WebGPU convention; OpenGL-style matrices
// would place near at -1 and clip half the depth precision away).
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far Real) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = near * far / (near - far)
	return m
}

// LookAt returns a right-handed view matrix for a camera at eye looking
// toward center with the given up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)

	var m Mat4
	m[0] = s.X
	m[1] = u.X
	m[2] = -f.X
	m[4] = s.Y
	m[5] = u.Y
	m[6] = -f.Y
	m[8] = s.Z
	m[9] = u.Z
	m[10] = -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	m[15] = 1
	return m
}

// Cols returns the four columns of m as vec4s, the layout used to feed a
// model matrix through instance vertex attributes four locations wide.
func (m Mat4) Cols() [4][4]Real {
	return [4][4]Real{
		{m[0], m[1], m[2], m[3]},
		{m[4], m[5], m[6], m[7]},
		{m[8], m[9], m[10], m[11]},
		{m[12], m[13], m[14], m[15]},
	}
}
