// Package app owns the window, the GPU device, and the main loop that
// ties input, simulation, and rendering together.
package app

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"particleview/internal/assets"
	"particleview/internal/camera"
	"particleview/internal/config"
	"particleview/internal/physics"
	"particleview/internal/render"
	"particleview/internal/simserver"
	"particleview/pkg/vmath"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720

	KeyPanSpeed = 8.0
)

// Scene framing: the muzzle sits near the origin and rounds fly down +Z,
// so the camera starts behind and above the firing line.
var defaultTarget = vmath.V3(0, 2, 20)

const defaultDistance vmath.Real = 45

type App struct {
	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *render.Renderer
	camera   *camera.Camera
	library  *assets.Library

	sim      *physics.Ballistic
	registry physics.ForceRegistry
	drag     *physics.Drag
	timer    *physics.FrameTimer
	simMu    sync.Mutex

	selected physics.ShotType

	debug *simserver.Server

	keys   map[glfw.Key]bool
	keysMu sync.RWMutex

	log *slog.Logger

	width, height int
}

func New(log *slog.Logger) (*App, error) {
	runtime.LockOSThread()

	if log == nil {
		log = slog.Default()
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	window, err := glfw.CreateWindow(DefaultWidth, DefaultHeight, "Particle View - Ballistics", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window creation failed: %w", err)
	}

	cfg := config.Get()

	app := &App{
		window:   window,
		width:    DefaultWidth,
		height:   DefaultHeight,
		keys:     make(map[glfw.Key]bool),
		sim:      physics.NewBallistic(cfg.Simulation.MaxRounds),
		drag:     physics.NewDrag(vmath.Real(cfg.Simulation.DragK1), vmath.Real(cfg.Simulation.DragK2)),
		timer:    physics.NewFrameTimer(),
		selected: physics.ShotPistol,
		log:      log,
	}

	if err := app.initWebGPU(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}

	app.camera = camera.NewCamera(defaultTarget, defaultDistance, DefaultWidth, DefaultHeight)

	app.renderer, err = render.NewRenderer(app.adapter, app.device, app.queue, app.surface,
		uint32(DefaultWidth), uint32(DefaultHeight), log)
	if err != nil {
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}

	library, err := assets.NewLibrary(cfg.Rendering.AssetDir, 2, log)
	if err != nil {
		// Missing asset dir is fine; the renderer falls back to its
		// checkerboard placeholder for every texture.
		log.Warn("asset library unavailable", "dir", cfg.Rendering.AssetDir, "err", err)
	} else {
		app.library = library
		app.library.Prefetch(cfg.Rendering.GroundTexture, cfg.Rendering.RoundTexture)
	}

	app.setupCallbacks()

	if cfg.Features.EnableDebugServer {
		app.debug = simserver.NewServer(config.DebugServerAddr, app.snapshotRounds, app.fireFromServer, log)
		go func() {
			if err := app.debug.Start(); err != nil {
				log.Error("debug server stopped", "err", err)
			}
		}()
	}

	return app, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: wgpu.InstanceBackend_Metal,
	})
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	app.surface = CreateSurface(app.instance, app.window)
	if app.surface == nil {
		return fmt.Errorf("surface creation failed")
	}

	var err error
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    app.surface,
		PowerPreference:      wgpu.PowerPreference_HighPerformance,
		ForceFallbackAdapter: false,
	})
	if err != nil {
		// Try without surface constraint
		app.log.Warn("retrying adapter request without surface constraint")
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_HighPerformance,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	app.log.Info("GPU selected", "name", props.Name, "driver", props.DriverDescription)

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "ParticleViewDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.width = width
		app.height = height
		app.camera.SetViewport(width, height)
		app.renderer.Resize(uint32(width), uint32(height))
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			x, y := w.GetCursorPos()
			if action == glfw.Press {
				app.camera.StartDrag(x, y)
			} else {
				app.camera.EndDrag()
			}
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if app.camera.IsDragging() {
			app.camera.Drag(x, y)
		}
	})

	app.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.camera.Zoom(yoff)
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.keysMu.Lock()
		if action == glfw.Press {
			app.keys[key] = true
		} else if action == glfw.Release {
			app.keys[key] = false
		}
		app.keysMu.Unlock()

		// Single-press actions (not held)
		if action == glfw.Press {
			switch key {
			case glfw.KeyEscape:
				w.SetShouldClose(true)
			case glfw.Key1:
				app.selectShot(physics.ShotPistol)
			case glfw.Key2:
				app.selectShot(physics.ShotArtillery)
			case glfw.Key3:
				app.selectShot(physics.ShotFireball)
			case glfw.Key4:
				app.selectShot(physics.ShotLaser)
			case glfw.KeySpace, glfw.KeyEnter:
				app.fire(app.selected)
			}
		}
	})
}

func (app *App) selectShot(shot physics.ShotType) {
	app.selected = shot
	app.log.Info("shot type selected", "type", shot.String())
}

func (app *App) fire(shot physics.ShotType) {
	app.simMu.Lock()
	app.sim.Fire(shot)
	app.simMu.Unlock()
}

// fireFromServer queues a shot on behalf of the debug server.
func (app *App) fireFromServer(shot physics.ShotType) {
	app.fire(shot)
}

// snapshotRounds copies the live round state for the debug server.
func (app *App) snapshotRounds() []simserver.RoundState {
	app.simMu.Lock()
	defer app.simMu.Unlock()

	now := time.Now()
	live := app.sim.Live()
	out := make([]simserver.RoundState, 0, len(live))
	for _, r := range live {
		p := r.Particle.Position
		v := r.Particle.Velocity
		out = append(out, simserver.RoundState{
			Type:     r.Type.String(),
			Position: [3]vmath.Real{p.X, p.Y, p.Z},
			Velocity: [3]vmath.Real{v.X, v.Y, v.Z},
			AgeSecs:  now.Sub(r.StartTime).Seconds(),
		})
	}
	return out
}

func (app *App) processInput() {
	app.keysMu.RLock()
	defer app.keysMu.RUnlock()

	panX, panY := 0.0, 0.0

	if app.keys[glfw.KeyW] || app.keys[glfw.KeyUp] {
		panY += KeyPanSpeed
	}
	if app.keys[glfw.KeyS] || app.keys[glfw.KeyDown] {
		panY -= KeyPanSpeed
	}
	if app.keys[glfw.KeyA] || app.keys[glfw.KeyLeft] {
		panX += KeyPanSpeed
	}
	if app.keys[glfw.KeyD] || app.keys[glfw.KeyRight] {
		panX -= KeyPanSpeed
	}

	if panX != 0 || panY != 0 {
		app.camera.Pan(panX, panY)
	}
}

// step advances the simulation by dt seconds.
func (app *App) step(dt vmath.Real) {
	app.simMu.Lock()
	defer app.simMu.Unlock()

	if config.Get().Features.EnableDrag {
		// Presets carry their own gravity in the acceleration term, so
		// drag is the one force routed through the registry per frame.
		app.registry.Clear()
		for _, r := range app.sim.Live() {
			app.registry.Add(&r.Particle, app.drag)
		}
		app.registry.UpdateForces(dt)
	}

	app.sim.Update(dt)
}

// frame assembles the render inputs for the current simulation state.
// Textures stay on the checkerboard placeholder until the library has
// them decoded and uploaded.
func (app *App) frame() render.Frame {
	cfg := config.Get()

	if app.library != nil {
		for _, name := range []string{cfg.Rendering.GroundTexture, cfg.Rendering.RoundTexture} {
			if app.renderer.HasTexture(name) || !app.library.IsCached(name) {
				continue
			}
			data, err := app.library.Get(name)
			if err != nil {
				continue
			}
			if err := app.renderer.UploadTexture(name, data); err != nil {
				app.log.Warn("texture upload failed", "name", name, "err", err)
			}
		}
	}

	app.simMu.Lock()
	instances := app.sim.ModelMatrices()
	app.simMu.Unlock()

	return render.Frame{
		GroundTexture: cfg.Rendering.GroundTexture,
		RoundTexture:  cfg.Rendering.RoundTexture,
		Instances:     instances,
	}
}

func (app *App) Run() error {
	lastTitle := time.Now()
	frames := 0

	for !app.window.ShouldClose() {
		glfw.PollEvents()
		app.processInput()

		dt := app.timer.Tick()
		app.step(dt)

		if err := app.renderer.Render(app.camera, app.frame()); err != nil {
			app.log.Error("render failed", "err", err)
		}

		frames++
		if time.Since(lastTitle) >= time.Second {
			app.simMu.Lock()
			live := len(app.sim.Live())
			app.simMu.Unlock()
			app.window.SetTitle(fmt.Sprintf("Particle View - Ballistics | %s | Rounds: %d | FPS: %d",
				app.selected.String(), live, frames))
			frames = 0
			lastTitle = time.Now()
		}
	}

	return nil
}

func (app *App) Cleanup() {
	if app.debug != nil {
		app.debug.Stop()
	}
	if app.library != nil {
		app.library.Close()
	}
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
