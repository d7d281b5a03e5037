// Package training computes distance, speed and calorie summaries for workouts.
package training

const (
	lenStep = 0.65 // metres covered by one step
	mInKm   = 1000
	minInH  = 60
)

// Workout is the capability every discipline provides. A discipline that lacks a
// calorie formula does not satisfy it.
type Workout interface {
	Name() string
	Hours() float64
	Distance() float64
	MeanSpeed() float64
	Calories() float64
}

// Training holds the readings shared by every discipline.
type Training struct {
	Action   int     // steps or strokes counted by the sensor
	Duration float64 // hours
	Weight   float64 // kg
}

// Hours returns the workout duration in hours.
func (t Training) Hours() float64 {
	return t.Duration
}

// Distance returns the covered distance in km using the default step length.
func (t Training) Distance() float64 {
	return t.distance(lenStep)
}

// MeanSpeed returns the average speed in km/h.
func (t Training) MeanSpeed() float64 {
	return t.Distance() / t.Duration
}

func (t Training) distance(stepLen float64) float64 {
	return float64(t.Action) * stepLen / mInKm
}

func (t Training) minutes() float64 {
	return t.Duration * minInH
}

func (t Training) validate() error {
	switch {
	case t.Duration == 0:
		return ErrZeroDuration
	case t.Duration < 0:
		return invalidf("duration must be positive, got %v", t.Duration)
	case t.Action < 0:
		return invalidf("action count must not be negative, got %d", t.Action)
	case t.Weight <= 0:
		return invalidf("weight must be positive, got %v", t.Weight)
	}
	return nil
}

// Summarize computes the summary of w.
func Summarize(w Workout) InfoMessage {
	return InfoMessage{
		TrainingType: w.Name(),
		Duration:     w.Hours(),
		Distance:     w.Distance(),
		Speed:        w.MeanSpeed(),
		Calories:     w.Calories(),
	}
}
