// Package api exposes HTTP handlers for the workout tracker.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/events"
	"example.com/ftracker/internal/observability"
	"example.com/ftracker/internal/publish"
	"example.com/ftracker/internal/training"
)

const maxBodyBytes = 1 << 16

// Option configures optional behaviour for the Handler.
type Option func(*Handler)

// WithLogger overrides the logger used to report publish failures.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithPublisher sets the sink that receives every computed summary.
func WithPublisher(p publish.Publisher) Option {
	return func(h *Handler) {
		h.publisher = p
	}
}

// WithoutAuth serves every request as if it carried all workout scopes.
func WithoutAuth() Option {
	return func(h *Handler) {
		h.authDisabled = true
	}
}

// Handler coordinates HTTP requests with the training calculator.
type Handler struct {
	publisher    publish.Publisher
	logger       *log.Logger
	now          func() time.Time
	newID        func() string
	authDisabled bool
}

// NewHandler builds a Handler. Without WithPublisher summaries are not announced.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		publisher: publish.NoopPublisher{},
		logger:    log.New(log.Writer(), "[api] ", log.LstdFlags|log.Lshortfile),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/workouts/summary", h.summary)
	mux.HandleFunc("/v1/workouts/types", h.types)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := h.authorize(w, r, auth.ScopeWorkoutsCompute)
	if !ok {
		return
	}

	var req SummaryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	info, err := training.Compute(req.WorkoutType, req.Data)
	if err != nil {
		observability.RecordComputeError(err)
		if errors.Is(err, training.ErrUnknownWorkoutType) {
			writeError(w, http.StatusUnprocessableEntity, "unknown_workout_type", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_arguments", err.Error())
		return
	}

	computedAt := h.now()
	observability.RecordSummary(info.TrainingType, computedAt)

	resp := SummaryResponse{
		SummaryID:   h.newID(),
		WorkoutCode: req.WorkoutType,
		WorkoutType: info.TrainingType,
		DurationH:   info.Duration,
		DistanceKm:  info.Distance,
		SpeedKmh:    info.Speed,
		Calories:    info.Calories,
		Message:     info.Message(),
	}

	evt := events.WorkoutComputed{
		SummaryID:   resp.SummaryID,
		WorkoutCode: resp.WorkoutCode,
		WorkoutType: resp.WorkoutType,
		DurationH:   resp.DurationH,
		DistanceKm:  resp.DistanceKm,
		SpeedKmh:    resp.SpeedKmh,
		Calories:    resp.Calories,
		Message:     resp.Message,
		ComputedAt:  computedAt,
	}
	if claims != nil {
		evt.TenantID = claims.TenantID
	}
	if err := h.publisher.Publish(r.Context(), evt); err != nil {
		h.logger.Printf("publish error (summary_id=%s, workout_code=%s): %v", evt.SummaryID, evt.WorkoutCode, err)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) types(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if _, ok := h.authorize(w, r, auth.ScopeWorkoutsRead, auth.ScopeWorkoutsCompute); !ok {
		return
	}

	kinds := training.Kinds()
	resp := WorkoutTypesResponse{Items: make([]WorkoutTypeView, 0, len(kinds))}
	for _, k := range kinds {
		resp.Items = append(resp.Items, WorkoutTypeView{Code: k.Code, WorkoutType: k.Name, Arity: k.Arity})
	}
	writeJSON(w, http.StatusOK, resp)
}

// authorize checks that the request carries one of scopes. The returned claims are nil
// when auth is disabled.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, scopes ...string) (*auth.Claims, bool) {
	if h.authDisabled {
		return nil, true
	}
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasAnyScope(scopes...) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scopes[0]+" required")
		return nil, false
	}
	return claims, true
}

// SummaryRequest is the payload for POST /v1/workouts/summary.
type SummaryRequest struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

// SummaryResponse describes a computed workout summary.
type SummaryResponse struct {
	SummaryID   string  `json:"summary_id"`
	WorkoutCode string  `json:"workout_code"`
	WorkoutType string  `json:"workout_type"`
	DurationH   float64 `json:"duration_h"`
	DistanceKm  float64 `json:"distance_km"`
	SpeedKmh    float64 `json:"speed_kmh"`
	Calories    float64 `json:"calories"`
	Message     string  `json:"message"`
}

// WorkoutTypeView exposes a registered workout code.
type WorkoutTypeView struct {
	Code        string `json:"code"`
	WorkoutType string `json:"workout_type"`
	Arity       int    `json:"arity"`
}

// WorkoutTypesResponse packages the registered workout codes.
type WorkoutTypesResponse struct {
	Items []WorkoutTypeView `json:"items"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, "unable to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
