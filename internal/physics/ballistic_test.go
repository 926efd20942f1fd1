package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particleview/pkg/vmath"
)

func TestFirePresets(t *testing.T) {
	for _, shot := range []ShotType{ShotPistol, ShotArtillery, ShotFireball, ShotLaser} {
		var round AmmoRound
		round.Fire(shot, time.Now())

		assert.Equal(t, shot, round.Type)
		assert.Equal(t, MuzzlePosition, round.Particle.Position, shot.String())
		assert.True(t, round.Particle.HasFiniteMass(), shot.String())
		assert.Greater(t, round.Particle.Damping, vmath.Real(0), shot.String())
	}
}

func TestFireUnknownTypeIsNoop(t *testing.T) {
	var round AmmoRound
	round.Fire(ShotUnused, time.Now())
	assert.Equal(t, ShotUnused, round.Type)
}

func TestBallisticUpdateMovesRounds(t *testing.T) {
	sim := NewBallistic(4)
	sim.Fire(ShotPistol)

	live := sim.Live()
	require.Len(t, live, 1)
	start := live[0].Particle.Position

	sim.Update(0.1)
	live = sim.Live()
	require.Len(t, live, 1)

	// The pistol round travels along +Z.
	assert.Greater(t, live[0].Particle.Position.Z, start.Z)
}

func TestBallisticRecyclesBelowGround(t *testing.T) {
	sim := NewBallistic(2)
	sim.Fire(ShotPistol)

	live := sim.Live()
	require.Len(t, live, 1)
	live[0].Particle.Position.Y = -1

	sim.Update(0.001)
	assert.Empty(t, sim.Live())
}

func TestBallisticReusesOldestSlot(t *testing.T) {
	sim := NewBallistic(2)
	sim.Fire(ShotPistol)
	time.Sleep(time.Millisecond)
	sim.Fire(ShotPistol)
	time.Sleep(time.Millisecond)

	// The pool is full: the third shot recycles the oldest round.
	sim.Fire(ShotLaser)

	live := sim.Live()
	require.Len(t, live, 2)
	types := []ShotType{live[0].Type, live[1].Type}
	assert.Contains(t, types, ShotLaser)
	assert.Contains(t, types, ShotPistol)
}

func TestModelMatrices(t *testing.T) {
	sim := NewBallistic(4)
	sim.Fire(ShotPistol)
	sim.Fire(ShotArtillery)

	mats := sim.ModelMatrices()
	require.Len(t, mats, 2)
	for _, m := range mats {
		got := m.MulPoint(vmath.Vec3{})
		assert.Equal(t, MuzzlePosition, got)
	}
}

func TestFrameTimer(t *testing.T) {
	timer := NewFrameTimer()
	time.Sleep(10 * time.Millisecond)

	dt := timer.Tick()
	assert.Greater(t, dt, vmath.Real(0))
	assert.Less(t, dt, vmath.Real(1))

	// The second tick measures from the first.
	dt2 := timer.Tick()
	assert.Less(t, dt2, dt)
}
