package physics

import (
	"fmt"
	"time"

	"particleview/pkg/vmath"
)

// ShotType selects the firing preset for an ammo round.
type ShotType int

const (
	ShotUnused ShotType = iota
	ShotPistol
	ShotArtillery
	ShotFireball
	ShotLaser
)

// String returns the shot type name for logs and the debug server.
func (s ShotType) String() string {
	switch s {
	case ShotPistol:
		return "pistol"
	case ShotArtillery:
		return "artillery"
	case ShotFireball:
		return "fireball"
	case ShotLaser:
		return "laser"
	default:
		return "unused"
	}
}

// shotPreset holds the firing parameters for one shot type.
type shotPreset struct {
	mass     vmath.Real
	velocity vmath.Vec3
	accel    vmath.Vec3
	damping  vmath.Real
}

// Presets per shot type. The values are not physically accurate masses
// and speeds; they are tuned so every trajectory reads well on screen.
var shotPresets = map[ShotType]shotPreset{
	ShotPistol:    {mass: 2.0, velocity: vmath.V3(0, 0, 35), accel: vmath.V3(0, -1, 0), damping: 0.99},
	ShotArtillery: {mass: 200, velocity: vmath.V3(0, 30, 40), accel: vmath.V3(0, -20, 0), damping: 0.99},
	ShotFireball:  {mass: 1.0, velocity: vmath.V3(0, 0, 10), accel: vmath.V3(0, 0.6, 0), damping: 0.9},
	ShotLaser:     {mass: 0.1, velocity: vmath.V3(0, 0, 100), accel: vmath.V3(0, 0, 0), damping: 0.99},
}

// ParseShotType maps a shot type name (as produced by String) back to
// its ShotType.
func ParseShotType(s string) (ShotType, error) {
	switch s {
	case "pistol":
		return ShotPistol, nil
	case "artillery":
		return ShotArtillery, nil
	case "fireball":
		return ShotFireball, nil
	case "laser":
		return ShotLaser, nil
	default:
		return ShotUnused, fmt.Errorf("unknown shot type %q", s)
	}
}

// PresetParams describes the launch parameters of a shot type.
type PresetParams struct {
	Mass         vmath.Real
	Velocity     vmath.Vec3
	Acceleration vmath.Vec3
	Damping      vmath.Real
}

// Preset returns the launch parameters for a shot type. ok is false for
// ShotUnused and unknown values.
func Preset(shot ShotType) (PresetParams, bool) {
	p, ok := shotPresets[shot]
	if !ok {
		return PresetParams{}, false
	}
	return PresetParams{
		Mass:         p.mass,
		Velocity:     p.velocity,
		Acceleration: p.accel,
		Damping:      p.damping,
	}, true
}

// MuzzlePosition is where every round starts.
var MuzzlePosition = vmath.V3(0, 1.5, 0)

const (
	// roundLifetime is how long a round stays live before being recycled.
	roundLifetime = 5 * time.Second
	// maxRange is the Z distance beyond which a round is recycled.
	maxRange vmath.Real = 200
)

// AmmoRound is a single projectile slot.
type AmmoRound struct {
	Particle  Particle
	Type      ShotType
	StartTime time.Time
}

// Fire arms the round with the preset for the given shot type and places
// it at the muzzle. Firing an already-live round restarts it.
func (a *AmmoRound) Fire(shot ShotType, now time.Time) {
	preset, ok := shotPresets[shot]
	if !ok {
		return
	}

	a.Particle.Position = MuzzlePosition
	a.Particle.SetMass(preset.mass)
	a.Particle.Velocity = preset.velocity
	a.Particle.Acceleration = preset.accel
	a.Particle.Damping = preset.damping
	a.Particle.ClearAccumulator()

	a.Type = shot
	a.StartTime = now
}

// expired reports whether the round should be recycled: below the ground
// plane, past the range limit, or older than its lifetime.
func (a *AmmoRound) expired(now time.Time) bool {
	if a.Particle.Position.Y < 0 {
		return true
	}
	if a.Particle.Position.Z > maxRange {
		return true
	}
	return now.Sub(a.StartTime) > roundLifetime
}

// Ballistic runs a fixed pool of ammo rounds.
type Ballistic struct {
	rounds []AmmoRound
}

// NewBallistic creates a simulation with capacity for maxRounds live
// rounds at once.
func NewBallistic(maxRounds int) *Ballistic {
	return &Ballistic{rounds: make([]AmmoRound, maxRounds)}
}

// Fire launches a new round of the given type from the muzzle. It reuses
// the first unused slot; when all slots are live the oldest is recycled.
func (b *Ballistic) Fire(shot ShotType) {
	now := time.Now()

	slot := -1
	for i := range b.rounds {
		if b.rounds[i].Type == ShotUnused {
			slot = i
			break
		}
	}
	if slot < 0 {
		oldest := 0
		for i := range b.rounds {
			if b.rounds[i].StartTime.Before(b.rounds[oldest].StartTime) {
				oldest = i
			}
		}
		slot = oldest
	}

	b.rounds[slot].Fire(shot, now)
}

// Update integrates all live rounds by dt seconds and recycles the ones
// that fell below the ground, flew out of range, or timed out.
func (b *Ballistic) Update(dt vmath.Real) {
	now := time.Now()
	for i := range b.rounds {
		r := &b.rounds[i]
		if r.Type == ShotUnused {
			continue
		}
		r.Particle.Integrate(dt)
		if r.expired(now) {
			r.Type = ShotUnused
		}
	}
}

// Live returns the currently live rounds. The returned slice aliases the
// pool and is only valid until the next Update or Fire.
func (b *Ballistic) Live() []*AmmoRound {
	live := make([]*AmmoRound, 0, len(b.rounds))
	for i := range b.rounds {
		if b.rounds[i].Type != ShotUnused {
			live = append(live, &b.rounds[i])
		}
	}
	return live
}

// ModelMatrices returns a translation matrix per live round, in firing
// order, ready to be uploaded as per-instance data.
func (b *Ballistic) ModelMatrices() []vmath.Mat4 {
	live := b.Live()
	mats := make([]vmath.Mat4, 0, len(live))
	for _, r := range live {
		mats = append(mats, vmath.Translation(r.Particle.Position))
	}
	return mats
}
