package main

import (
	"fmt"
	"log/slog"
	"os"

	"particleview/internal/app"
)

func main() {
	fmt.Println("Particle View - WebGPU Ballistics")
	fmt.Println("Controls:")
	fmt.Println("  Mouse drag    : Orbit camera")
	fmt.Println("  Mouse wheel   : Zoom")
	fmt.Println("  WASD / Arrows : Pan")
	fmt.Println("  1/2/3/4       : Select pistol / artillery / fireball / laser")
	fmt.Println("  Space / Enter : Fire")
	fmt.Println("  Escape        : Exit")
	fmt.Println()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	application, err := app.New(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
