package training

import "math"

const (
	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 1.79

	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029
	kmhInMsec                       = 0.278
	cmInM                           = 100

	swimmingLenStep                  = 1.38 // metres covered by one stroke
	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Running is a run tracked by step count.
type Running struct {
	Training
}

// NewRunning validates the readings and builds a Running workout.
func NewRunning(action int, duration, weight float64) (Running, error) {
	t := Training{Action: action, Duration: duration, Weight: weight}
	if err := t.validate(); err != nil {
		return Running{}, err
	}
	return Running{Training: t}, nil
}

// Name returns the workout type shown in summaries.
func (r Running) Name() string { return "Running" }

// Calories returns the energy spent in kcal.
func (r Running) Calories() float64 {
	return (runningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + runningCaloriesMeanSpeedShift) *
		r.Weight / mInKm * r.minutes()
}

// SportsWalking is a race walk; the calorie formula depends on the walker's height.
type SportsWalking struct {
	Training
	Height float64 // cm
}

// NewSportsWalking validates the readings and builds a SportsWalking workout.
func NewSportsWalking(action int, duration, weight, height float64) (SportsWalking, error) {
	t := Training{Action: action, Duration: duration, Weight: weight}
	if err := t.validate(); err != nil {
		return SportsWalking{}, err
	}
	if height <= 0 {
		return SportsWalking{}, invalidf("height must be positive, got %v", height)
	}
	return SportsWalking{Training: t, Height: height}, nil
}

// Name returns the workout type shown in summaries.
func (w SportsWalking) Name() string { return "SportsWalking" }

// Calories returns the energy spent in kcal.
func (w SportsWalking) Calories() float64 {
	speed := w.MeanSpeed() * kmhInMsec
	heightM := w.Height / cmInM
	return (walkingCaloriesWeightMultiplier*w.Weight +
		(math.Pow(speed, 2)/heightM)*walkingSpeedHeightMultiplier*w.Weight) * w.minutes()
}

// Swimming is a pool session. Speed comes from the lap count, distance from strokes.
type Swimming struct {
	Training
	LengthPool float64 // metres
	CountPool  int     // laps
}

// NewSwimming validates the readings and builds a Swimming workout.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) (Swimming, error) {
	t := Training{Action: action, Duration: duration, Weight: weight}
	if err := t.validate(); err != nil {
		return Swimming{}, err
	}
	if lengthPool < 0 {
		return Swimming{}, invalidf("pool length must not be negative, got %v", lengthPool)
	}
	if countPool < 0 {
		return Swimming{}, invalidf("lap count must not be negative, got %d", countPool)
	}
	return Swimming{Training: t, LengthPool: lengthPool, CountPool: countPool}, nil
}

// Name returns the workout type shown in summaries.
func (s Swimming) Name() string { return "Swimming" }

// Distance returns the stroke-based distance in km.
func (s Swimming) Distance() float64 {
	return s.distance(swimmingLenStep)
}

// MeanSpeed returns the pool-based speed in km/h.
func (s Swimming) MeanSpeed() float64 {
	return s.LengthPool * float64(s.CountPool) / mInKm / s.Duration
}

// Calories returns the energy spent in kcal.
func (s Swimming) Calories() float64 {
	return (s.MeanSpeed() + swimmingCaloriesMeanSpeedShift) *
		swimmingCaloriesWeightMultiplier * s.Weight * s.Duration
}
