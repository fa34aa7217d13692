package leaderboard

import (
	"context"
	"fmt"

	"github.com/2beens/flexly/internal/cache"
	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=ranker_mocks_test.go -package=leaderboard_test

const (
	DefaultSize      = 50
	DefaultHealLimit = 50
)

type population interface {
	Get(ctx context.Context, id string) (*users.User, error)
	Top(ctx context.Context, field users.RankField, filter users.PopulationFilter, limit int) ([]users.User, error)
	CountAbove(ctx context.Context, field users.RankField, filter users.PopulationFilter, value float64) (int, error)
}

type healer interface {
	Heal(ctx context.Context, u *users.User) (bool, error)
	HealMany(ctx context.Context, list []users.User) int
	HealPopulation(ctx context.Context, filter users.PopulationFilter, limit int) (int, error)
}

type Entry struct {
	UserID         string                          `json:"id"`
	Name           string                          `json:"name"`
	Username       string                          `json:"username"`
	ProfilePicture string                          `json:"profilePicture"`
	Score          float64                         `json:"score"`
	MuscleAverages map[ratings.MuscleGroup]float64 `json:"muscleAverages"`
	Gender         string                          `json:"gender"`
	Weight         float64                         `json:"weight"`
	Country        string                          `json:"country"`
	Rank           int                             `json:"rank"`
}

func newEntry(u *users.User, rank int) Entry {
	return Entry{
		UserID:         u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Score:          u.Score,
		MuscleAverages: u.MuscleAverages,
		Gender:         u.Gender,
		Weight:         u.Weight,
		Country:        u.Country,
		Rank:           rank,
	}
}

type Board struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"leaderboard"`
	Me       *Entry  `json:"myRank"`
}

type Query struct {
	Category    Category
	Filter      Filter
	RequesterID string
}

type Ranker struct {
	users     population
	healer    healer
	cache     *cache.PageCache
	size      int
	healLimit int
}

func NewRanker(users population, healer healer, pageCache *cache.PageCache, size, healLimit int) *Ranker {
	if size <= 0 {
		size = DefaultSize
	}
	if healLimit <= 0 {
		healLimit = DefaultHealLimit
	}
	return &Ranker{
		users:     users,
		healer:    healer,
		cache:     pageCache,
		size:      size,
		healLimit: healLimit,
	}
}

// Rank returns the top of the filtered population and the requester's own rank in it.
// Ties have no defined order.
func (r *Ranker) Rank(ctx context.Context, q Query) (_ *Board, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "leaderboard.rank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("category", q.Category.String()),
		attribute.String("gender", q.Filter.Gender),
		attribute.String("weight.class", q.Filter.WeightClass.String()),
	)

	filter := q.Filter.Population()
	field := q.Category.Field()

	entries, err := r.top(ctx, q, filter)
	if err != nil {
		return nil, err
	}

	board := &Board{
		Category: q.Category.String(),
		Entries:  entries,
	}
	if q.RequesterID == "" {
		return board, nil
	}

	me, err := r.users.Get(ctx, q.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}
	if _, err := r.healer.Heal(ctx, me); err != nil {
		log.Errorf("leaderboard: heal requester %s: %s", me.ID, err)
	}
	above, err := r.users.CountAbove(ctx, field, filter, q.Category.Value(me))
	if err != nil {
		return nil, fmt.Errorf("count users above requester: %w", err)
	}
	myEntry := newEntry(me, above+1)
	board.Me = &myEntry

	return board, nil
}

func (r *Ranker) top(ctx context.Context, q Query, filter users.PopulationFilter) ([]Entry, error) {
	cacheKey := fmt.Sprintf("top::%s::%s::%s", q.Category, filter.Gender, q.Filter.WeightClass)
	var entries []Entry
	if r.cache.GetJSON(cacheKey, &entries) {
		return entries, nil
	}

	// corrupted rows must not distort the ranking
	if _, err := r.healer.HealPopulation(ctx, filter, r.healLimit); err != nil {
		log.Errorf("leaderboard: heal population: %s", err)
	}

	top, err := r.users.Top(ctx, q.Category.Field(), filter, r.size)
	if err != nil {
		return nil, fmt.Errorf("get top users: %w", err)
	}
	if healed := r.healer.HealMany(ctx, top); healed > 0 {
		// healed rows may have moved, read the top again
		if top, err = r.users.Top(ctx, q.Category.Field(), filter, r.size); err != nil {
			return nil, fmt.Errorf("get top users: %w", err)
		}
	}

	entries = make([]Entry, 0, len(top))
	for i := range top {
		entries = append(entries, newEntry(&top[i], i+1))
	}
	r.cache.SetJSON(cacheKey, entries)

	return entries, nil
}
