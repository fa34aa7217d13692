package stats

import (
	"context"
	"fmt"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=aggregator_mocks_test.go -package=stats_test

type historySource interface {
	ListVectors(ctx context.Context, ownerID string) ([]ratings.Vector, error)
}

// Aggregates are the derived summary fields of a user. They are a cache over the
// submission history and can always be rebuilt by Aggregate.
type Aggregates struct {
	Score          float64                         `json:"score"`
	MuscleAverages map[ratings.MuscleGroup]float64 `json:"muscleAverages"`
	Submissions    int                             `json:"submissions"`
}

func Aggregate(history []ratings.Vector) Aggregates {
	overalls := make([]float64, 0, len(history))
	perGroup := make(map[ratings.MuscleGroup][]float64, len(ratings.MuscleGroups))
	for _, v := range history {
		overalls = append(overalls, v.Overall)
		for _, g := range ratings.MuscleGroups {
			perGroup[g] = append(perGroup[g], v.Ratings[g])
		}
	}

	averages := make(map[ratings.MuscleGroup]float64, len(ratings.MuscleGroups))
	for _, g := range ratings.MuscleGroups {
		averages[g] = ratings.MeanPositive(perGroup[g])
	}

	return Aggregates{
		Score:          ratings.MeanPositive(overalls),
		MuscleAverages: averages,
		Submissions:    len(history),
	}
}

// ZeroAggregates is what a user with no history gets.
func ZeroAggregates() Aggregates {
	return Aggregate(nil)
}

type Aggregator struct {
	history historySource
}

func NewAggregator(history historySource) *Aggregator {
	return &Aggregator{
		history: history,
	}
}

// Recompute reloads the whole history of the owner and folds it. It has no side effects.
func (a *Aggregator) Recompute(ctx context.Context, ownerID string) (_ Aggregates, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.recompute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	history, err := a.history.ListVectors(ctx, ownerID)
	if err != nil {
		return Aggregates{}, fmt.Errorf("load history of %s: %w", ownerID, err)
	}

	agg := Aggregate(history)
	span.SetAttributes(attribute.Int("history.size", agg.Submissions))

	return agg, nil
}
