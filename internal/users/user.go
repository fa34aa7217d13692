package users

import (
	"time"

	"github.com/2beens/flexly/internal/ratings"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"-"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	Bio            string    `json:"bio"`
	Gender         string    `json:"gender"`
	Weight         float64   `json:"weight"`
	Height         float64   `json:"height"`
	Age            int       `json:"age"`
	Goal           string    `json:"goal"`
	Country        string    `json:"country"`
	SocialHidden   bool      `json:"socialHidden"`
	CreatedAt      time.Time `json:"createdAt"`

	// derived, rebuildable from the submission history
	Score            float64                         `json:"score"`
	MuscleAverages   map[ratings.MuscleGroup]float64 `json:"muscleAverages"`
	AnalyticsTracked int                             `json:"analyticsTracked"`
	Streak           int                             `json:"streak"`

	// derived from the follow edges
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
}

// Summary is the public card of a user, used in lists.
type Summary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// RankField is a user field the population can be ordered by.
type RankField string

const RankScore RankField = "score"

func MuscleRankField(g ratings.MuscleGroup) RankField {
	return RankField(g)
}

// Value reads the field from the user. A missing muscle average reads as 0.
func (f RankField) Value(u *User) float64 {
	if f == RankScore {
		return u.Score
	}
	return u.MuscleAverages[ratings.MuscleGroup(f)]
}

// WeightRange bounds the user weight, nil bounds are open.
type WeightRange struct {
	Min          *float64
	Max          *float64
	MinExclusive bool
	MaxExclusive bool
}

func (r WeightRange) Contains(w float64) bool {
	if r.Min != nil {
		if r.MinExclusive && w <= *r.Min || !r.MinExclusive && w < *r.Min {
			return false
		}
	}
	if r.Max != nil {
		if r.MaxExclusive && w >= *r.Max || !r.MaxExclusive && w > *r.Max {
			return false
		}
	}
	return true
}

// PopulationFilter narrows down the set of users a ranking is computed over.
// Empty gender matches all.
type PopulationFilter struct {
	Gender string
	Weight WeightRange
}

func (f PopulationFilter) Matches(u *User) bool {
	if f.Gender != "" && f.Gender != u.Gender {
		return false
	}
	return f.Weight.Contains(u.Weight)
}

// ProfileUpdate holds the editable profile fields, nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Bio            *string  `json:"bio" validate:"omitempty,max=500"`
	ProfilePicture *string  `json:"profilePicture" validate:"omitempty,url"`
	Gender         *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Weight         *float64 `json:"weight" validate:"omitempty,gt=0,lt=500"`
	Height         *float64 `json:"height" validate:"omitempty,gt=0,lt=300"`
	Age            *int     `json:"age" validate:"omitempty,gt=0,lt=150"`
	Goal           *string  `json:"goal" validate:"omitempty,max=200"`
	Country        *string  `json:"country" validate:"omitempty,max=100"`
	SocialHidden   *bool    `json:"socialHidden"`
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.ProfilePicture == nil && p.Gender == nil &&
		p.Weight == nil && p.Height == nil && p.Age == nil && p.Goal == nil &&
		p.Country == nil && p.SocialHidden == nil
}

// Apply copies the set fields onto the user.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.Height != nil {
		u.Height = *p.Height
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Goal != nil {
		u.Goal = *p.Goal
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.SocialHidden != nil {
		u.SocialHidden = *p.SocialHidden
	}
}
