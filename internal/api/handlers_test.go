package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/events"
)

type stubPublisher struct {
	events []events.WorkoutComputed
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, evt events.WorkoutComputed) error {
	p.events = append(p.events, evt)
	return p.err
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (int, error) {
	tw.t.Log(string(p))
	return len(p), nil
}

func newTestHandler(t *testing.T, pub *stubPublisher, opts ...Option) *Handler {
	opts = append([]Option{WithPublisher(pub), WithLogger(log.New(testWriter{t}, "", 0))}, opts...)
	h := NewHandler(opts...)
	h.now = func() time.Time { return time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC) }
	h.newID = func() string { return "summary-1" }
	return h
}

func withScopes(req *http.Request, scopes ...string) *http.Request {
	set := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return req.WithContext(auth.WithClaims(req.Context(), &auth.Claims{
		Subject:   "tester",
		TenantID:  "tenant-1",
		Scopes:    set,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func postSummary(t *testing.T, h *Handler, body string, scopes ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/summary", bytes.NewBufferString(body))
	if scopes != nil {
		req = withScopes(req, scopes...)
	}
	rr := httptest.NewRecorder()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.ServeHTTP(rr, req)
	return rr
}

func TestSummarySuccess(t *testing.T) {
	pub := &stubPublisher{}
	h := newTestHandler(t, pub)

	rr := postSummary(t, h, `{"workout_type":"SWM","data":[720,1,80,25,40]}`, auth.ScopeWorkoutsCompute)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "summary-1", resp.SummaryID)
	require.Equal(t, "SWM", resp.WorkoutCode)
	require.Equal(t, "Swimming", resp.WorkoutType)
	require.InDelta(t, 1.0, resp.SpeedKmh, 1e-9)
	require.InDelta(t, 336.0, resp.Calories, 1e-9)
	require.Equal(t,
		"Workout type: Swimming; Duration: 1.000 h.; Distance: 0.994 km; Avg speed: 1.000 km/h; Calories: 336.000.",
		resp.Message)

	require.Len(t, pub.events, 1)
	require.Equal(t, "tenant-1", pub.events[0].TenantID)
	require.Equal(t, "summary-1", pub.events[0].SummaryID)
	require.Equal(t, resp.Message, pub.events[0].Message)
}

func TestSummaryPublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &stubPublisher{err: errors.New("broker down")}
	h := newTestHandler(t, pub)

	rr := postSummary(t, h, `{"workout_type":"RUN","data":[15000,1,75]}`, auth.ScopeWorkoutsCompute)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, pub.events, 1)
}

func TestSummaryErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unknown code", `{"workout_type":"XYZ","data":[1,1,1]}`, http.StatusUnprocessableEntity, "unknown_workout_type"},
		{"wrong arity", `{"workout_type":"WLK","data":[9000,1,75]}`, http.StatusBadRequest, "invalid_arguments"},
		{"zero duration", `{"workout_type":"RUN","data":[15000,0,75]}`, http.StatusBadRequest, "invalid_arguments"},
		{"malformed", `{"workout_type":`, http.StatusBadRequest, "invalid_request"},
		{"non numeric", `{"workout_type":"RUN","data":["a",1,75]}`, http.StatusBadRequest, "invalid_request"},
		{"speed overflow", `{"workout_type":"RUN","data":[15000,1e-320,75]}`, http.StatusBadRequest, "invalid_arguments"},
		{"calories overflow", `{"workout_type":"SWM","data":[720,1,1e308,25,40]}`, http.StatusBadRequest, "invalid_arguments"},
		{"action out of range", `{"workout_type":"RUN","data":[1e19,1,75]}`, http.StatusBadRequest, "invalid_arguments"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pub := &stubPublisher{}
			rr := postSummary(t, newTestHandler(t, pub), tc.body, auth.ScopeWorkoutsCompute)
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var payload map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
			require.Equal(t, tc.code, payload["type"])
			require.Empty(t, pub.events)
		})
	}
}

func TestSummaryRequiresComputeScope(t *testing.T) {
	h := newTestHandler(t, &stubPublisher{})

	rr := postSummary(t, h, `{"workout_type":"RUN","data":[15000,1,75]}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = postSummary(t, h, `{"workout_type":"RUN","data":[15000,1,75]}`, auth.ScopeWorkoutsRead)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSummaryWithoutAuth(t *testing.T) {
	pub := &stubPublisher{}
	h := newTestHandler(t, pub, WithoutAuth())

	rr := postSummary(t, h, `{"workout_type":"RUN","data":[15000,1,75]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, pub.events, 1)
	require.Empty(t, pub.events[0].TenantID)
}

func TestSummaryMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &stubPublisher{})
	req := withScopes(httptest.NewRequest(http.MethodGet, "/v1/workouts/summary", nil), auth.ScopeWorkoutsCompute)
	rr := httptest.NewRecorder()
	h.summary(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestWorkoutTypes(t *testing.T) {
	h := newTestHandler(t, &stubPublisher{})
	req := withScopes(httptest.NewRequest(http.MethodGet, "/v1/workouts/types", nil), auth.ScopeWorkoutsRead)
	rr := httptest.NewRecorder()
	h.types(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp WorkoutTypesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, []WorkoutTypeView{
		{Code: "RUN", WorkoutType: "Running", Arity: 3},
		{Code: "SWM", WorkoutType: "Swimming", Arity: 5},
		{Code: "WLK", WorkoutType: "SportsWalking", Arity: 4},
	}, resp.Items)
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, map[string]float64{"calories": math.Inf(1)})
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
	require.Equal(t, "unable to encode response\n", rr.Body.String())
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
