// Package simserver provides HTTP endpoints for inspecting and poking
// the running simulation: live round state, trajectory predictions, and
// remote firing. Intended for development, bound to localhost.
package simserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"particleview/internal/physics"
	"particleview/pkg/trajectory"
	"particleview/pkg/vmath"
)

// RoundState is the JSON shape of one live round.
type RoundState struct {
	Type     string  `json:"type"`
	Position [3]Real `json:"position"`
	Velocity [3]Real `json:"velocity"`
	AgeSecs  float64 `json:"age_secs"`
}

// Real aliases the simulation scalar for JSON encoding.
type Real = vmath.Real

// StateFunc returns a snapshot of the live rounds. Implementations must
// be safe to call from the server goroutine.
type StateFunc func() []RoundState

// FireFunc fires a round of the given type from the main simulation.
type FireFunc func(physics.ShotType)

// Server provides the HTTP debug endpoints.
type Server struct {
	addr   string
	state  StateFunc
	fire   FireFunc
	log    *slog.Logger
	server *http.Server
}

// NewServer creates a debug server. state and fire must not be nil.
func NewServer(addr string, state StateFunc, fire FireFunc, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		addr:  addr,
		state: state,
		fire:  fire,
		log:   log.With("component", "simserver"),
	}
}

// Start runs the server; it blocks until Stop is called or the listener
// fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/fire/", s.handleFire)
	mux.HandleFunc("/trajectory/", s.handleTrajectory)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.log.Info("debug server listening", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// handleState serves the live round snapshot: GET /state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rounds := s.state()
	if rounds == nil {
		rounds = []RoundState{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"live":   len(rounds),
		"rounds": rounds,
	})
}

// handleFire fires a round: POST /fire/{type}
func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/fire/")
	shot, err := physics.ParseShotType(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.fire(shot)
	s.log.Debug("fired via debug server", "type", shot.String())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, `{"fired":%q}`, shot.String())
}

// trajectoryPoint is one sample of a predicted path.
type trajectoryPoint struct {
	T        Real    `json:"t"`
	Position [3]Real `json:"position"`
}

// handleTrajectory serves the closed-form predicted path for a shot
// type: GET /trajectory/{type}
//
// The prediction ignores damping and registered forces, so it diverges
// from the integrated path for high-damping rounds; it exists as a
// quick sanity reference, not ground truth.
func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/trajectory/")
	shot, err := physics.ParseShotType(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	preset, ok := physics.Preset(shot)
	if !ok {
		http.Error(w, "no preset", http.StatusBadRequest)
		return
	}

	p0 := physics.MuzzlePosition
	end, landed := trajectory.TimeOfFlight(p0.Y, preset.Velocity.Y, preset.Acceleration.Y, 0)
	if !landed {
		// Rounds that never land are sampled over the sim lifetime.
		end = 5
	}

	const steps = 32
	points := make([]trajectoryPoint, 0, steps+1)
	for i, pos := range trajectory.Sample(p0, preset.Velocity, preset.Acceleration, end, steps) {
		t := end * Real(i) / steps
		points = append(points, trajectoryPoint{T: t, Position: [3]Real{pos.X, pos.Y, pos.Z}})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"type":   shot.String(),
		"lands":  landed,
		"end":    end,
		"points": points,
	})
}

// handleHealth provides a health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
