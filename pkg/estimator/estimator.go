// Package estimator estimates the number of days required to freeze a
// bedbug population at a given temperature. The estimate comes from a
// smooth cubic curve fit through a small set of empirically measured
// (temperature, days) pairs, with hard threshold overrides at both ends
// of the physical process: no freezing at or above the freezing point,
// effectively instant freezing at extreme cold.
package estimator

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned during construction (malformed dataset) or estimation
// (non-finite input). Dataset errors are configuration errors: the
// dataset is fixed at startup, so they are surfaced immediately and
// never retried.
var (
	ErrInsufficientAnchors  = errors.New("dataset needs at least two anchor points")
	ErrDuplicateAnchor      = errors.New("duplicate anchor temperature")
	ErrNegativeDuration     = errors.New("anchor duration must be non-negative")
	ErrInvalidThreshold     = errors.New("invalid freeze thresholds")
	ErrNonFiniteTemperature = errors.New("temperature must be finite")
)

// Anchor is one empirically measured (temperature, duration) pair.
// Temperature is in degrees Fahrenheit, Days is the observed number of
// days to a full kill at that temperature.
type Anchor struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Days        float64 `json:"days" yaml:"days"`
}

// Dataset is the immutable configuration an Estimator is built from:
// the anchor points plus the two saturation thresholds. Below
// InstantFreezeBelow the kill is treated as instant; at or above
// NoFreezeAbove no freezing occurs and the curve is never consulted.
type Dataset struct {
	Anchors            []Anchor
	InstantFreezeBelow float64
	NoFreezeAbove      float64
}

// DefaultDataset returns the reference dataset: the four published
// empirical points with the standard -15°F / 32°F thresholds.
func DefaultDataset() Dataset {
	return Dataset{
		Anchors: []Anchor{
			{Temperature: -15, Days: 0},
			{Temperature: -4, Days: 2},
			{Temperature: 0, Days: 4},
			{Temperature: 32, Days: 21},
		},
		InstantFreezeBelow: -15,
		NoFreezeAbove:      32,
	}
}

// Result is the outcome of a single estimate: either a non-negative
// number of days, or the "does not freeze" case. Days is always 0 when
// Freezes is false.
type Result struct {
	Freezes bool
	Days    float64
}

// Hours converts the estimated duration to hours. Display convenience
// only; all estimation is done in days.
func (r Result) Hours() float64 {
	return r.Days * 24
}

// SweepPoint is one sample of a batch evaluation across a temperature
// range, used by callers that plot the fitted curve.
type SweepPoint struct {
	Temperature float64
	Result      Result
}

// Estimator maps a temperature to an estimated freeze duration using a
// curve fit through its dataset. It holds no mutable state after
// construction and is safe for concurrent use.
type Estimator struct {
	anchors []Anchor
	lower   float64
	upper   float64
	curve   curve
}

// New builds an Estimator from a dataset. The anchors are copied and
// sorted ascending by temperature; the dataset must contain at least
// two anchors with distinct temperatures and non-negative durations,
// and the thresholds must be finite with InstantFreezeBelow strictly
// less than NoFreezeAbove.
func New(ds Dataset) (*Estimator, error) {
	if len(ds.Anchors) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientAnchors, len(ds.Anchors))
	}

	anchors := make([]Anchor, len(ds.Anchors))
	copy(anchors, ds.Anchors)
	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].Temperature < anchors[j].Temperature
	})

	for i, a := range anchors {
		if math.IsNaN(a.Temperature) || math.IsInf(a.Temperature, 0) ||
			math.IsNaN(a.Days) || math.IsInf(a.Days, 0) {
			return nil, fmt.Errorf("anchor (%g°F, %g days) is not finite", a.Temperature, a.Days)
		}
		if a.Days < 0 {
			return nil, fmt.Errorf("%w: %g days at %g°F", ErrNegativeDuration, a.Days, a.Temperature)
		}
		if i > 0 && a.Temperature == anchors[i-1].Temperature {
			return nil, fmt.Errorf("%w: %g°F", ErrDuplicateAnchor, a.Temperature)
		}
	}

	if math.IsNaN(ds.InstantFreezeBelow) || math.IsInf(ds.InstantFreezeBelow, 0) ||
		math.IsNaN(ds.NoFreezeAbove) || math.IsInf(ds.NoFreezeAbove, 0) ||
		ds.InstantFreezeBelow >= ds.NoFreezeAbove {
		return nil, fmt.Errorf("%w: instant_freeze_below=%g no_freeze_above=%g",
			ErrInvalidThreshold, ds.InstantFreezeBelow, ds.NoFreezeAbove)
	}

	curve, err := fitCurve(anchors)
	if err != nil {
		return nil, err
	}

	return &Estimator{
		anchors: anchors,
		lower:   ds.InstantFreezeBelow,
		upper:   ds.NoFreezeAbove,
		curve:   curve,
	}, nil
}

// Estimate returns the estimated freeze duration for a temperature in
// degrees Fahrenheit. At or below the lower threshold the kill is
// instant (0 days); at or above the upper threshold freezing does not
// occur. Between the thresholds the fitted curve is evaluated, with
// polynomial continuation beyond the outermost anchors, and the result
// is floored at zero. The raw fit can dip slightly negative near the
// cold boundary; large extrapolated values are deliberately left
// unclamped.
func (e *Estimator) Estimate(tempF float64) (Result, error) {
	if math.IsNaN(tempF) || math.IsInf(tempF, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrNonFiniteTemperature, tempF)
	}

	if tempF <= e.lower {
		return Result{Freezes: true, Days: 0}, nil
	}
	if tempF >= e.upper {
		return Result{Freezes: false}, nil
	}

	days := e.curve.at(tempF)
	if days < 0 {
		days = 0
	}
	return Result{Freezes: true, Days: days}, nil
}

// Sweep evaluates the estimator at points evenly spaced samples across
// [min, max], inclusive of both endpoints. Each sample is an
// independent Estimate call. Used to build plotted curves.
func (e *Estimator) Sweep(min, max float64, points int) ([]SweepPoint, error) {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("%w: sweep range [%v, %v]", ErrNonFiniteTemperature, min, max)
	}
	if points < 2 || min >= max {
		return nil, fmt.Errorf("invalid sweep: %d points over [%g, %g]", points, min, max)
	}

	step := (max - min) / float64(points-1)
	sweep := make([]SweepPoint, points)
	for i := 0; i < points; i++ {
		t := min + step*float64(i)
		r, err := e.Estimate(t)
		if err != nil {
			return nil, err
		}
		sweep[i] = SweepPoint{Temperature: t, Result: r}
	}
	return sweep, nil
}

// Anchors returns a copy of the sorted anchor dataset.
func (e *Estimator) Anchors() []Anchor {
	anchors := make([]Anchor, len(e.anchors))
	copy(anchors, e.anchors)
	return anchors
}

// Bounds returns the instant-freeze and no-freeze thresholds.
func (e *Estimator) Bounds() (lower, upper float64) {
	return e.lower, e.upper
}

// Interpretation buckets an estimated duration into a qualitative
// category for display: "instant", "rapid" (≤1 day), "moderate"
// (≤7 days), or "extended".
func Interpretation(days float64) string {
	switch {
	case days == 0:
		return "instant"
	case days <= 1:
		return "rapid"
	case days <= 7:
		return "moderate"
	default:
		return "extended"
	}
}
