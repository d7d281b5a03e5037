package training

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownWorkoutType is returned when a package carries an unregistered code.
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	// ErrInvalidArguments is returned when the readings do not fit the workout constructor.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrZeroDuration is returned for a zero duration, which would divide by zero.
	ErrZeroDuration = errors.New("division by zero: duration is 0")
)

// Workout codes sent by the sensor.
const (
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
	CodeSwimming = "SWM"
)

// Kind describes a registered workout code.
type Kind struct {
	Code  string
	Name  string
	Arity int
}

type constructor struct {
	kind  Kind
	build func(data []float64) (Workout, error)
}

var registry = map[string]constructor{
	CodeRunning: {
		kind: Kind{Code: CodeRunning, Name: "Running", Arity: 3},
		build: func(data []float64) (Workout, error) {
			action, err := integral("action", data[0])
			if err != nil {
				return nil, err
			}
			return NewRunning(action, data[1], data[2])
		},
	},
	CodeWalking: {
		kind: Kind{Code: CodeWalking, Name: "SportsWalking", Arity: 4},
		build: func(data []float64) (Workout, error) {
			action, err := integral("action", data[0])
			if err != nil {
				return nil, err
			}
			return NewSportsWalking(action, data[1], data[2], data[3])
		},
	},
	CodeSwimming: {
		kind: Kind{Code: CodeSwimming, Name: "Swimming", Arity: 5},
		build: func(data []float64) (Workout, error) {
			action, err := integral("action", data[0])
			if err != nil {
				return nil, err
			}
			laps, err := integral("lap count", data[4])
			if err != nil {
				return nil, err
			}
			return NewSwimming(action, data[1], data[2], data[3], laps)
		},
	},
}

// ReadPackage builds the workout registered under code from positional sensor data.
func ReadPackage(code string, data []float64) (Workout, error) {
	c, ok := registry[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, code)
	}
	if len(data) != c.kind.Arity {
		return nil, invalidf("%s expects %d values, got %d", code, c.kind.Arity, len(data))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidf("value %d is not a finite number", i)
		}
	}
	return c.build(data)
}

// Compute reads the package and summarizes the resulting workout.
func Compute(code string, data []float64) (InfoMessage, error) {
	w, err := ReadPackage(code, data)
	if err != nil {
		return InfoMessage{}, err
	}
	info := Summarize(w)
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"distance", info.Distance},
		{"speed", info.Speed},
		{"calories", info.Calories},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return InfoMessage{}, invalidf("%s overflows for %s readings %v", f.name, code, data)
		}
	}
	return info, nil
}

// Kinds lists the registered workout codes ordered by code.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for _, c := range registry {
		out = append(out, c.kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func integral(field string, v float64) (int, error) {
	if v < math.MinInt || v >= math.MaxInt {
		return 0, invalidf("%s is out of range, got %v", field, v)
	}
	if v != math.Trunc(v) {
		return 0, invalidf("%s must be a whole number, got %v", field, v)
	}
	return int(v), nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArguments}, args...)...)
}
