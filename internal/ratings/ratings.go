package ratings

import (
	"fmt"
	"math"
	"strings"
)

type MuscleGroup string

const (
	Arms      MuscleGroup = "arms"
	Chest     MuscleGroup = "chest"
	Abs       MuscleGroup = "abs"
	Shoulders MuscleGroup = "shoulders"
	Legs      MuscleGroup = "legs"
	Back      MuscleGroup = "back"
)

// MuscleGroups in their canonical order.
var MuscleGroups = []MuscleGroup{Arms, Chest, Abs, Shoulders, Legs, Back}

const (
	MinRating = 0.0
	MaxRating = 10.0
)

func ParseMuscleGroup(s string) (MuscleGroup, bool) {
	mg := MuscleGroup(strings.ToLower(strings.TrimSpace(s)))
	for _, g := range MuscleGroups {
		if g == mg {
			return g, true
		}
	}
	return "", false
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rating [%s]: %s", e.Field, e.Reason)
}

// Vector holds one submission's per-muscle ratings and the overall value derived from them.
// A rating of 0 means the group was not visible / not assessable.
type Vector struct {
	Ratings map[MuscleGroup]float64 `json:"ratings"`
	Overall float64                 `json:"overall"`
}

func NewVector(raw map[MuscleGroup]float64) (Vector, error) {
	rs := make(map[MuscleGroup]float64, len(MuscleGroups))
	for _, g := range MuscleGroups {
		r, ok := raw[g]
		if !ok {
			return Vector{}, &ValidationError{Field: string(g), Reason: "missing"}
		}
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return Vector{}, &ValidationError{Field: string(g), Reason: "not a number"}
		}
		if r < MinRating || r > MaxRating {
			return Vector{}, &ValidationError{Field: string(g), Reason: fmt.Sprintf("%v out of range [0, 10]", r)}
		}
		rs[g] = r
	}

	return Vector{
		Ratings: rs,
		Overall: ComputeOverall(rs),
	}, nil
}

// ComputeOverall is the mean of the positive ratings, rounded to one decimal, or 0 if none is positive.
func ComputeOverall(raw map[MuscleGroup]float64) float64 {
	var sum float64
	var n int
	for _, g := range MuscleGroups {
		if r := raw[g]; r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return Round1(sum / float64(n))
}

// MeanPositive rounds the mean of the positive values, 0 if there are none.
func MeanPositive(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return Round1(sum / float64(n))
}

// Round1 rounds half-up to one decimal place. The tiny epsilon pulls values like 2.45,
// stored as 2.4499999..., back onto the half boundary.
func Round1(x float64) float64 {
	if x < 0 {
		return -Round1(-x)
	}
	return math.Floor(x*10+0.5+1e-9) / 10
}
