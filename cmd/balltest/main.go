package main

import (
	"fmt"
	"os"
	"time"

	"particleview/internal/physics"
	"particleview/pkg/trajectory"
	"particleview/pkg/vmath"
)

// Headless trajectory check: fires one round of the requested type,
// integrates it at a fixed timestep, and prints the path next to the
// undamped closed-form prediction.
func main() {
	name := "pistol"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	shot, err := physics.ParseShotType(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (want pistol, artillery, fireball or laser)\n", err)
		os.Exit(1)
	}

	preset, _ := physics.Preset(shot)
	fmt.Printf("Shot: %s  mass=%.2fkg  v0=%.1fm/s  damping=%.2f\n",
		shot, preset.Mass, preset.Velocity.Magnitude(), preset.Damping)

	var round physics.AmmoRound
	round.Fire(shot, time.Now())

	const dt vmath.Real = 1.0 / 60
	const printEvery = 12 // every 0.2s

	p0 := physics.MuzzlePosition

	fmt.Println()
	fmt.Printf("%8s  %28s  %28s\n", "t", "integrated (x,y,z)", "closed form (x,y,z)")
	for step := 0; ; step++ {
		t := vmath.Real(step) * dt

		if step%printEvery == 0 {
			pos := round.Particle.Position
			ref := trajectory.PositionAt(p0, preset.Velocity, preset.Acceleration, t)
			fmt.Printf("%7.2fs  (%7.2f, %7.2f, %7.2f)  (%7.2f, %7.2f, %7.2f)\n",
				t, pos.X, pos.Y, pos.Z, ref.X, ref.Y, ref.Z)
		}

		round.Particle.Integrate(dt)
		if round.Particle.Position.Y < 0 || t > 5 {
			break
		}
	}

	if tof, ok := trajectory.TimeOfFlight(p0.Y, preset.Velocity.Y, preset.Acceleration.Y, 0); ok {
		dist, _ := trajectory.GroundRange(p0, preset.Velocity, preset.Acceleration, 0)
		fmt.Printf("\nPredicted time of flight: %.2fs, ground range: %.1fm (undamped)\n", tof, dist)
	} else {
		fmt.Println("\nRound never returns to the ground under its preset acceleration.")
	}
}
