// Package events defines payloads announced to downstream consumers.
package events

import "time"

// WorkoutComputedType is the event_type header value for WorkoutComputed.
const WorkoutComputedType = "workout.computed"

// WorkoutComputed is emitted after a workout summary has been computed.
type WorkoutComputed struct {
	SummaryID   string    `json:"summary_id"`
	TenantID    string    `json:"tenant_id,omitempty"`
	WorkoutCode string    `json:"workout_code"`
	WorkoutType string    `json:"workout_type"`
	DurationH   float64   `json:"duration_h"`
	DistanceKm  float64   `json:"distance_km"`
	SpeedKmh    float64   `json:"speed_kmh"`
	Calories    float64   `json:"calories"`
	Message     string    `json:"message"`
	ComputedAt  time.Time `json:"computed_at"`
}
