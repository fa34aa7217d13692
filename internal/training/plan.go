package training

import (
	"errors"
	"sort"
	"time"

	"github.com/2beens/flexly/internal/ratings"
)

var (
	ErrPlanNotFound = errors.New("training plan not found")
	ErrInvalidPlan  = errors.New("invalid training plan")
)

type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}

type DayPlan struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	IsRestDay bool       `json:"isRestDay"`
	Exercises []Exercise `json:"exercises"`
}

// UserStats is the snapshot of the profile the plan was generated from.
type UserStats struct {
	Goal           string                          `json:"goal"`
	Weight         float64                         `json:"weight"`
	Height         float64                         `json:"height"`
	Gender         string                          `json:"gender"`
	MuscleAverages map[ratings.MuscleGroup]float64 `json:"muscleAverages"`
}

// Draft is a plan as the model wrote it, before it is stored.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	WeekPlan    []DayPlan `json:"weekPlan"`
	Tips        []string  `json:"tips"`
}

type Plan struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Draft
	UserStats UserStats `json:"userStats"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListResponse struct {
	Plans       []Plan `json:"plans"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	Total       int    `json:"total"`
}

// WeakestFirst orders the assessed muscle groups from the lowest average up.
// Groups never assessed (average 0) go last.
func WeakestFirst(averages map[ratings.MuscleGroup]float64) []ratings.MuscleGroup {
	groups := make([]ratings.MuscleGroup, len(ratings.MuscleGroups))
	copy(groups, ratings.MuscleGroups)
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := averages[groups[i]], averages[groups[j]]
		if (a > 0) != (b > 0) {
			return a > 0
		}
		return a < b
	})
	return groups
}
