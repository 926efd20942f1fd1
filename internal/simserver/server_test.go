package simserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"particleview/internal/physics"
)

func newTestServer(state StateFunc, fire FireFunc) *Server {
	if state == nil {
		state = func() []RoundState { return nil }
	}
	if fire == nil {
		fire = func(physics.ShotType) {}
	}
	return NewServer("localhost:0", state, fire, nil)
}

func TestHandleState(t *testing.T) {
	s := newTestServer(func() []RoundState {
		return []RoundState{{
			Type:     "pistol",
			Position: [3]Real{0, 1.5, 3},
			Velocity: [3]Real{0, 0, 35},
			AgeSecs:  0.25,
		}}
	}, nil)

	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Live   int          `json:"live"`
		Rounds []RoundState `json:"rounds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Live)
	require.Len(t, body.Rounds, 1)
	assert.Equal(t, "pistol", body.Rounds[0].Type)
}

func TestHandleStateEmpty(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleState(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.JSONEq(t, `{"live":0,"rounds":[]}`, rec.Body.String())
}

func TestHandleFire(t *testing.T) {
	var fired []physics.ShotType
	s := newTestServer(nil, func(shot physics.ShotType) {
		fired = append(fired, shot)
	})

	rec := httptest.NewRecorder()
	s.handleFire(rec, httptest.NewRequest(http.MethodPost, "/fire/artillery", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []physics.ShotType{physics.ShotArtillery}, fired)
	assert.JSONEq(t, `{"fired":"artillery"}`, rec.Body.String())
}

func TestHandleFireRejectsGet(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleFire(rec, httptest.NewRequest(http.MethodGet, "/fire/pistol", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleFireUnknownType(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleFire(rec, httptest.NewRequest(http.MethodPost, "/fire/bfg9000", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrajectoryLands(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleTrajectory(rec, httptest.NewRequest(http.MethodGet, "/trajectory/pistol", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Type   string `json:"type"`
		Lands  bool   `json:"lands"`
		End    float64
		Points []trajectoryPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pistol", body.Type)
	assert.True(t, body.Lands)
	require.Len(t, body.Points, 33)

	// The final sample is at ground level.
	last := body.Points[len(body.Points)-1]
	assert.InDelta(t, 0, last.Position[1], 1e-3)
}

func TestHandleTrajectoryNeverLands(t *testing.T) {
	s := newTestServer(nil, nil)

	// Fireballs accelerate upward and never reach the ground.
	rec := httptest.NewRecorder()
	s.handleTrajectory(rec, httptest.NewRequest(http.MethodGet, "/trajectory/fireball", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Lands bool `json:"lands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Lands)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(nil, nil)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
