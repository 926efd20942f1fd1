package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMul(t *testing.T) {
	m := Translation(V3(1, 2, 3))
	assert.Equal(t, m, Identity().Mul(m))
	assert.Equal(t, m, m.Mul(Identity()))
}

func TestTranslationMulPoint(t *testing.T) {
	m := Translation(V3(1, 2, 3))
	got := m.MulPoint(V3(10, 20, 30))
	assert.Equal(t, V3(11, 22, 33), got)
}

func TestMulOrder(t *testing.T) {
	// Translate then scale: the scale applies to the translated point.
	s := Scaling(V3(2, 2, 2))
	tr := Translation(V3(1, 0, 0))
	got := s.Mul(tr).MulPoint(V3(0, 0, 0))
	assert.Equal(t, V3(2, 0, 0), got)
}

func TestRotationY(t *testing.T) {
	m := RotationY(math.Pi / 2)
	got := m.MulPoint(V3(1, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, -1, got.Z, 1e-6)
}

func TestTransposed(t *testing.T) {
	m := Translation(V3(1, 2, 3))
	tt := m.Transposed().Transposed()
	assert.Equal(t, m, tt)
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := Real(0.1), Real(100)
	p := Perspective(math.Pi/4, 16.0/9.0, near, far)

	// WebGPU clip space: near plane maps to depth 0, far plane to depth 1.
	nearPt := p.MulPoint(V3(0, 0, -near))
	farPt := p.MulPoint(V3(0, 0, -far))
	assert.InDelta(t, 0, nearPt.Z, 1e-5)
	assert.InDelta(t, 1, farPt.Z, 1e-4)
}

func TestLookAt(t *testing.T) {
	// Camera at +Z looking at the origin: the origin lands on the view
	// axis, in front of the camera.
	v := LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))
	got := v.MulPoint(V3(0, 0, 0))
	assert.InDelta(t, 0, got.X, 1e-6)
	assert.InDelta(t, 0, got.Y, 1e-6)
	assert.InDelta(t, -5, got.Z, 1e-6)

	// The eye itself maps to the view-space origin.
	eye := v.MulPoint(V3(0, 0, 5))
	assert.InDelta(t, 0, eye.Magnitude(), 1e-6)
}

func TestCols(t *testing.T) {
	m := Translation(V3(7, 8, 9))
	cols := m.Cols()
	assert.Equal(t, [4]Real{1, 0, 0, 0}, cols[0])
	assert.Equal(t, [4]Real{7, 8, 9, 1}, cols[3])
}
