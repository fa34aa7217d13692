package social

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/flexly/internal/notifications"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=social_test

var ErrSelfFollow = errors.New("cannot follow yourself")

// Relation is the state of one directed edge after a follow change.
type Relation struct {
	ActorID             string `json:"actorId"`
	TargetID            string `json:"targetId"`
	Following           bool   `json:"isFollowing"`
	ActorFollowingCount int    `json:"following"`
	TargetFollowerCount int    `json:"followers"`
}

type edgeStore interface {
	Follow(ctx context.Context, actorID, targetID string) (*Relation, bool, error)
	Unfollow(ctx context.Context, actorID, targetID string) (*Relation, bool, error)
	IsFollowing(ctx context.Context, actorID, targetID string) (bool, error)
	Followers(ctx context.Context, userID string) ([]users.Summary, error)
	Following(ctx context.Context, userID string) ([]users.Summary, error)
	RemoveAllEdges(ctx context.Context, userID string) ([]string, error)
}

type notifier interface {
	Notify(ctx context.Context, recipientID, senderID string, t notifications.Type) error
}

// userCleaner removes one kind of data owned by or pointing at a user.
type userCleaner interface {
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

type ownerCleaner interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

type sessionRevoker interface {
	RevokeAll(ctx context.Context, userID string) error
}

type userDeleter interface {
	Delete(ctx context.Context, id string) error
}

type ManagerParams struct {
	Edges         edgeStore
	Notifier      notifier
	Comments      userCleaner
	Submissions   ownerCleaner
	Notifications userCleaner
	Plans         ownerCleaner
	Sessions      sessionRevoker
	Users         userDeleter
	Metrics       *metrics.Manager
}

type Manager struct {
	edges         edgeStore
	notifier      notifier
	comments      userCleaner
	submissions   ownerCleaner
	notifications userCleaner
	plans         ownerCleaner
	sessions      sessionRevoker
	users         userDeleter
	metrics       *metrics.Manager
}

func NewManager(params ManagerParams) *Manager {
	return &Manager{
		edges:         params.Edges,
		notifier:      params.Notifier,
		comments:      params.Comments,
		submissions:   params.Submissions,
		notifications: params.Notifications,
		plans:         params.Plans,
		sessions:      params.Sessions,
		users:         params.Users,
		metrics:       params.Metrics,
	}
}

// Follow adds the actor -> target edge. Following someone already followed is a no-op.
// The follow notification is best effort and never undoes the follow.
func (m *Manager) Follow(ctx context.Context, actorID, targetID string) (_ *Relation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "social.follow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("actor.id", actorID), attribute.String("target.id", targetID))

	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	rel, changed, err := m.edges.Follow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return rel, nil
	}
	m.countAction("follow")

	if m.notifier != nil {
		if err := m.notifier.Notify(ctx, targetID, actorID, notifications.TypeFollow); err != nil {
			log.Errorf("follow %s -> %s stored, but notification failed: %s", actorID, targetID, err)
		}
	}

	return rel, nil
}

// Unfollow removes the actor -> target edge, a no-op if there is none.
func (m *Manager) Unfollow(ctx context.Context, actorID, targetID string) (_ *Relation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "social.unfollow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("actor.id", actorID), attribute.String("target.id", targetID))

	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	rel, changed, err := m.edges.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if changed {
		m.countAction("unfollow")
	}

	return rel, nil
}

// Toggle follows the target if the actor does not follow it yet, and unfollows otherwise.
func (m *Manager) Toggle(ctx context.Context, actorID, targetID string) (*Relation, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}
	following, err := m.edges.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if following {
		return m.Unfollow(ctx, actorID, targetID)
	}
	return m.Follow(ctx, actorID, targetID)
}

func (m *Manager) IsFollowing(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == "" || actorID == targetID {
		return false, nil
	}
	return m.edges.IsFollowing(ctx, actorID, targetID)
}

func (m *Manager) Followers(ctx context.Context, userID string) ([]users.Summary, error) {
	return m.edges.Followers(ctx, userID)
}

func (m *Manager) Following(ctx context.Context, userID string) ([]users.Summary, error) {
	return m.edges.Following(ctx, userID)
}

func (m *Manager) countAction(action string) {
	if m.metrics != nil {
		m.metrics.CounterFollowActions.WithLabelValues(action).Inc()
	}
}

// CascadeDelete removes the account and everything hanging off it. Steps are best effort,
// a failed step is logged and the remaining ones still run. The returned error combines
// all step failures.
func (m *Manager) CascadeDelete(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "social.cascadeDelete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	steps := []struct {
		name string
		run  func(ctx context.Context) (int64, error)
	}{
		{"edges", func(ctx context.Context) (int64, error) {
			neighbours, err := m.edges.RemoveAllEdges(ctx, userID)
			return int64(len(neighbours)), err
		}},
		{"comments", func(ctx context.Context) (int64, error) {
			return m.comments.DeleteForUser(ctx, userID)
		}},
		{"submissions", func(ctx context.Context) (int64, error) {
			return m.submissions.DeleteByOwner(ctx, userID)
		}},
		{"notifications", func(ctx context.Context) (int64, error) {
			return m.notifications.DeleteForUser(ctx, userID)
		}},
		{"training_plans", func(ctx context.Context) (int64, error) {
			return m.plans.DeleteByOwner(ctx, userID)
		}},
		{"sessions", func(ctx context.Context) (int64, error) {
			return 0, m.sessions.RevokeAll(ctx, userID)
		}},
		{"user", func(ctx context.Context) (int64, error) {
			return 1, m.users.Delete(ctx, userID)
		}},
	}

	for _, step := range steps {
		affected, stepErr := step.run(ctx)
		if stepErr != nil {
			log.Errorf("cascade delete of %s, step %s failed: %s", userID, step.name, stepErr)
			if m.metrics != nil {
				m.metrics.CounterCascadeStepFailures.WithLabelValues(step.name).Inc()
			}
			err = multierr.Append(err, fmt.Errorf("%s: %w", step.name, stepErr))
			continue
		}
		log.Debugf("cascade delete of %s, step %s: %d affected", userID, step.name, affected)
	}

	return err
}
