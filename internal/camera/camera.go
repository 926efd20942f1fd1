// Package camera provides the perspective orbit camera whose
// view-projection matrix feeds the renderer's camera uniform.
package camera

import (
	"github.com/chewxy/math32"

	"particleview/pkg/vmath"
)

const (
	MinDistance vmath.Real = 2
	MaxDistance vmath.Real = 120

	// Pitch limits keep the camera off the poles where the up vector
	// would flip.
	minPitch vmath.Real = -1.45
	maxPitch vmath.Real = 1.45
)

// Camera orbits a target point at a distance. Yaw and pitch are in
// radians; yaw 0 looks down the +X axis.
type Camera struct {
	Target   vmath.Vec3
	Distance vmath.Real
	Yaw      vmath.Real
	Pitch    vmath.Real

	// Projection parameters.
	Fov  vmath.Real
	Near vmath.Real
	Far  vmath.Real

	// Viewport dimensions, for the aspect ratio.
	ViewportWidth  int
	ViewportHeight int

	// Movement speeds.
	OrbitSpeed vmath.Real
	PanSpeed   vmath.Real
	ZoomSpeed  vmath.Real

	// Drag state.
	isDragging bool
	lastDragX  float64
	lastDragY  float64
}

// NewCamera creates a camera orbiting target from the given distance.
func NewCamera(target vmath.Vec3, distance vmath.Real, width, height int) *Camera {
	return &Camera{
		Target:         target,
		Distance:       clamp(distance, MinDistance, MaxDistance),
		Yaw:            math32.Pi / 2,
		Pitch:          0.35,
		Fov:            math32.Pi / 4,
		Near:           0.1,
		Far:            500,
		ViewportWidth:  width,
		ViewportHeight: height,
		OrbitSpeed:     0.005,
		PanSpeed:       0.02,
		ZoomSpeed:      1.5,
	}
}

// SetViewport updates the viewport dimensions.
func (c *Camera) SetViewport(width, height int) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// Eye returns the camera position in world space, derived from the
// target, distance, yaw and pitch.
func (c *Camera) Eye() vmath.Vec3 {
	cosPitch := math32.Cos(c.Pitch)
	offset := vmath.V3(
		math32.Cos(c.Yaw)*cosPitch,
		math32.Sin(c.Pitch),
		math32.Sin(c.Yaw)*cosPitch,
	).Scale(c.Distance)
	return c.Target.Add(offset)
}

// View returns the view matrix.
func (c *Camera) View() vmath.Mat4 {
	return vmath.LookAt(c.Eye(), c.Target, vmath.V3(0, 1, 0))
}

// Projection returns the perspective projection matrix for the current
// viewport.
func (c *Camera) Projection() vmath.Mat4 {
	aspect := vmath.Real(1)
	if c.ViewportHeight > 0 {
		aspect = vmath.Real(c.ViewportWidth) / vmath.Real(c.ViewportHeight)
	}
	return vmath.Perspective(c.Fov, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view, the matrix the shaders
// consume as the camera uniform.
func (c *Camera) ViewProjection() vmath.Mat4 {
	return c.Projection().Mul(c.View())
}

// Orbit rotates the camera around the target by the given pixel delta.
func (c *Camera) Orbit(deltaX, deltaY float64) {
	c.Yaw += vmath.Real(deltaX) * c.OrbitSpeed
	c.Pitch += vmath.Real(deltaY) * c.OrbitSpeed
	c.Pitch = clamp(c.Pitch, minPitch, maxPitch)
}

// Pan slides the target in the horizontal plane by the given pixel
// delta, scaled so panning feels constant regardless of zoom.
func (c *Camera) Pan(deltaX, deltaY float64) {
	// Right and view-forward directions projected onto the ground plane.
	right := vmath.V3(-math32.Sin(c.Yaw), 0, math32.Cos(c.Yaw))
	forward := vmath.V3(-math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw))

	scale := c.PanSpeed * c.Distance / 10
	c.Target.AddScaled(right, -vmath.Real(deltaX)*scale)
	c.Target.AddScaled(forward, -vmath.Real(deltaY)*scale)
}

// Zoom moves the camera toward (positive delta) or away from the
// target, clamped to the distance limits.
func (c *Camera) Zoom(delta float64) {
	c.Distance -= vmath.Real(delta) * c.ZoomSpeed
	c.Distance = clamp(c.Distance, MinDistance, MaxDistance)
}

// StartDrag begins a drag operation.
func (c *Camera) StartDrag(x, y float64) {
	c.isDragging = true
	c.lastDragX = x
	c.lastDragY = y
}

// Drag continues a drag operation, orbiting by the cursor delta.
func (c *Camera) Drag(x, y float64) {
	if !c.isDragging {
		return
	}
	c.Orbit(x-c.lastDragX, y-c.lastDragY)
	c.lastDragX = x
	c.lastDragY = y
}

// EndDrag ends a drag operation.
func (c *Camera) EndDrag() {
	c.isDragging = false
}

// IsDragging returns whether a drag is in progress.
func (c *Camera) IsDragging() bool {
	return c.isDragging
}

func clamp(v, lo, hi vmath.Real) vmath.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
