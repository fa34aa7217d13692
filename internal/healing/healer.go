package healing

import (
	"context"
	"fmt"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/stats"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=$GOFILE -destination=healer_mocks_test.go -package=healing_test

const (
	SourceRead        = "read"
	SourceLeaderboard = "leaderboard"
)

type recomputer interface {
	Recompute(ctx context.Context, ownerID string) (stats.Aggregates, error)
}

type userStore interface {
	UpdateAggregates(ctx context.Context, id string, agg stats.Aggregates) error
	ListCorrupted(ctx context.Context, filter users.PopulationFilter, limit int) ([]users.User, error)
}

// Reason tells why the aggregates of the user cannot be trusted, empty if they can.
// The SQL twin of this predicate lives in the users repo.
func Reason(u *users.User) string {
	switch {
	case u.Score > ratings.MaxRating:
		return fmt.Sprintf("score %.2f out of range", u.Score)
	case u.Score > 0 && u.MuscleAverages == nil:
		return "score set without muscle averages"
	case u.Score > 0:
		if _, ok := u.MuscleAverages[ratings.Arms]; !ok {
			return "muscle averages without arms"
		}
	}
	for _, g := range ratings.MuscleGroups {
		if v := u.MuscleAverages[g]; v > ratings.MaxRating {
			return fmt.Sprintf("%s average %.2f out of range", g, v)
		}
	}
	return ""
}

func NeedsRepair(u *users.User) bool {
	return Reason(u) != ""
}

// Healer rebuilds corrupted aggregates from the submission history.
// Healing a healthy user is a no-op, so any read path can call it.
type Healer struct {
	aggregator recomputer
	users      userStore
	metrics    *metrics.Manager
	group      singleflight.Group
}

func NewHealer(aggregator recomputer, users userStore, metricsManager *metrics.Manager) *Healer {
	return &Healer{
		aggregator: aggregator,
		users:      users,
		metrics:    metricsManager,
	}
}

// Heal repairs u in place if needed and reports whether it did.
func (h *Healer) Heal(ctx context.Context, u *users.User) (bool, error) {
	return h.heal(ctx, u, SourceRead)
}

func (h *Healer) heal(ctx context.Context, u *users.User, source string) (_ bool, err error) {
	reason := Reason(u)
	if reason == "" {
		return false, nil
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "healing.heal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", u.ID), attribute.String("reason", reason))

	log.WithFields(log.Fields{
		"user":   u.ID,
		"reason": reason,
		"source": source,
	}).Warn("InconsistentStateDetected")

	// concurrent heals of the same user share one recompute and write
	v, err, _ := h.group.Do(u.ID, func() (any, error) {
		agg, err := h.aggregator.Recompute(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if err := h.users.UpdateAggregates(ctx, u.ID, agg); err != nil {
			return nil, fmt.Errorf("persist healed aggregates: %w", err)
		}
		if h.metrics != nil {
			h.metrics.CounterHealedUsers.WithLabelValues(source).Inc()
		}
		return agg, nil
	})
	if err != nil {
		return false, fmt.Errorf("heal user %s: %w", u.ID, err)
	}

	agg := v.(stats.Aggregates)
	u.Score = agg.Score
	u.MuscleAverages = agg.MuscleAverages
	u.AnalyticsTracked = agg.Submissions

	return true, nil
}

// HealMany heals every user of the list in place. Failures are logged and skipped.
func (h *Healer) HealMany(ctx context.Context, list []users.User) int {
	healed := 0
	for i := range list {
		ok, err := h.heal(ctx, &list[i], SourceRead)
		if err != nil {
			log.Errorf("heal user %s: %s", list[i].ID, err)
			continue
		}
		if ok {
			healed++
		}
	}
	return healed
}

// HealPopulation heals up to limit corrupted users of the filtered population.
func (h *Healer) HealPopulation(ctx context.Context, filter users.PopulationFilter, limit int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "healing.healPopulation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	corrupted, err := h.users.ListCorrupted(ctx, filter, limit)
	if err != nil {
		return 0, fmt.Errorf("list corrupted users: %w", err)
	}
	span.SetAttributes(attribute.Int("corrupted.count", len(corrupted)))

	healed := 0
	for i := range corrupted {
		ok, err := h.heal(ctx, &corrupted[i], SourceLeaderboard)
		if err != nil {
			log.Errorf("heal user %s of population: %s", corrupted[i].ID, err)
			continue
		}
		if ok {
			healed++
		}
	}

	return healed, nil
}
