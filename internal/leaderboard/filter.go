package leaderboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/users"
)

var (
	ErrUnknownCategory    = errors.New("unknown leaderboard category")
	ErrUnknownWeightClass = errors.New("unknown weight class")
)

// Category is what the board is sorted by: the overall score or one muscle group.
type Category struct {
	muscle ratings.MuscleGroup
}

var Overall = Category{}

func Muscle(g ratings.MuscleGroup) Category {
	return Category{muscle: g}
}

// ParseCategory accepts "Overall" (or empty) and the muscle group names, case-insensitive.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "overall") {
		return Overall, nil
	}
	g, ok := ratings.ParseMuscleGroup(s)
	if !ok {
		return Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
	return Muscle(g), nil
}

func (c Category) IsOverall() bool {
	return c.muscle == ""
}

func (c Category) Field() users.RankField {
	if c.IsOverall() {
		return users.RankScore
	}
	return users.MuscleRankField(c.muscle)
}

func (c Category) Value(u *users.User) float64 {
	return c.Field().Value(u)
}

func (c Category) String() string {
	if c.IsOverall() {
		return "overall"
	}
	return string(c.muscle)
}

type WeightClass int

const (
	WeightAll WeightClass = iota
	WeightUnder70
	Weight70To85
	WeightOver85
)

// ParseWeightClass accepts "<70kg", "70-85kg" (with a hyphen or an en dash), ">85kg"
// and "All", spaces are ignored.
func ParseWeightClass(s string) (WeightClass, error) {
	normalized := strings.ToLower(strings.NewReplacer(" ", "", "–", "-", "—", "-").Replace(s))
	switch normalized {
	case "", "all":
		return WeightAll, nil
	case "<70kg", "<70":
		return WeightUnder70, nil
	case "70-85kg", "70-85":
		return Weight70To85, nil
	case ">85kg", ">85":
		return WeightOver85, nil
	}
	return WeightAll, fmt.Errorf("%w: %s", ErrUnknownWeightClass, s)
}

func (w WeightClass) Range() users.WeightRange {
	seventy, eightyFive := 70.0, 85.0
	switch w {
	case WeightUnder70:
		return users.WeightRange{Max: &seventy, MaxExclusive: true}
	case Weight70To85:
		return users.WeightRange{Min: &seventy, Max: &eightyFive}
	case WeightOver85:
		return users.WeightRange{Min: &eightyFive, MinExclusive: true}
	}
	return users.WeightRange{}
}

func (w WeightClass) String() string {
	switch w {
	case WeightUnder70:
		return "<70kg"
	case Weight70To85:
		return "70-85kg"
	case WeightOver85:
		return ">85kg"
	}
	return "all"
}

type Filter struct {
	// Gender empty or "All" matches everybody
	Gender      string
	WeightClass WeightClass
}

func (f Filter) Population() users.PopulationFilter {
	gender := strings.TrimSpace(f.Gender)
	if strings.EqualFold(gender, "all") {
		gender = ""
	}
	return users.PopulationFilter{
		Gender: gender,
		Weight: f.WeightClass.Range(),
	}
}
