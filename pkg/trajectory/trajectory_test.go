package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particleview/pkg/vmath"
)

func TestPositionAt(t *testing.T) {
	p0 := vmath.V3(0, 10, 0)
	v0 := vmath.V3(1, 0, 2)
	a := vmath.V3(0, -10, 0)

	got := PositionAt(p0, v0, a, 1)
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 5, got.Y, 1e-5) // 10 - 10/2
	assert.InDelta(t, 2, got.Z, 1e-5)
}

func TestTimeOfFlight(t *testing.T) {
	// Dropped from 20m under g = -10: lands after 2s.
	tof, ok := TimeOfFlight(20, 0, -10, 0)
	require.True(t, ok)
	assert.InDelta(t, 2, tof, 1e-4)

	// Thrown up at 10 m/s from the floor: back down after 2s.
	tof, ok = TimeOfFlight(0, 10, -10, 0)
	require.True(t, ok)
	assert.InDelta(t, 2, tof, 1e-4)
}

func TestTimeOfFlightNeverLands(t *testing.T) {
	// Upward acceleration from the floor going up: never returns.
	_, ok := TimeOfFlight(0, 5, 1, 0)
	assert.False(t, ok)

	// No acceleration, no downward velocity.
	_, ok = TimeOfFlight(10, 0, 0, 0)
	assert.False(t, ok)
}

func TestTimeOfFlightLinear(t *testing.T) {
	// Laser-style: constant velocity straight down.
	tof, ok := TimeOfFlight(10, -5, 0, 0)
	require.True(t, ok)
	assert.InDelta(t, 2, tof, 1e-5)
}

func TestApex(t *testing.T) {
	p0 := vmath.V3(0, 0, 0)
	v0 := vmath.V3(0, 10, 10)
	a := vmath.V3(0, -10, 0)

	at, pos, ok := Apex(p0, v0, a)
	require.True(t, ok)
	assert.InDelta(t, 1, at, 1e-5)
	assert.InDelta(t, 5, pos.Y, 1e-4)

	_, _, ok = Apex(p0, v0, vmath.V3(0, 1, 0))
	assert.False(t, ok)
}

func TestGroundRange(t *testing.T) {
	// 45-degree-style launch: up 10, forward 10, g = -10.
	p0 := vmath.V3(0, 0, 0)
	v0 := vmath.V3(0, 10, 10)
	a := vmath.V3(0, -10, 0)

	dist, ok := GroundRange(p0, v0, a, 0)
	require.True(t, ok)
	assert.InDelta(t, 20, dist, 1e-3)
}

func TestSample(t *testing.T) {
	pts := Sample(vmath.V3(0, 0, 0), vmath.V3(0, 0, 1), vmath.Vec3{}, 10, 5)
	require.Len(t, pts, 6)
	assert.Equal(t, vmath.Vec3{}, pts[0])
	assert.InDelta(t, 10, pts[5].Z, 1e-5)
}
