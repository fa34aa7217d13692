package analysis

import (
	"time"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/users"
)

// Submission is one rated set of photos. Its ratings are fixed at creation.
type Submission struct {
	ID          string                          `json:"id"`
	UserID      string                          `json:"userId"`
	ImageURLs   []string                        `json:"imageUrls"`
	Ratings     map[ratings.MuscleGroup]float64 `json:"ratings"`
	Overall     float64                         `json:"overall"`
	AdviceTitle string                          `json:"adviceTitle"`
	Advice      string                          `json:"advice"`
	CreatedAt   time.Time                       `json:"createdAt"`
}

func (s *Submission) Vector() ratings.Vector {
	return ratings.Vector{
		Ratings: s.Ratings,
		Overall: s.Overall,
	}
}

type FeedItem struct {
	Submission
	Author users.Summary `json:"author"`
}

type ListResponse struct {
	Analyses []Submission `json:"analyses"`
	Total    int          `json:"total"`
}

type FeedResponse struct {
	Analyses []FeedItem `json:"analyses"`
	Page     int        `json:"page"`
}
