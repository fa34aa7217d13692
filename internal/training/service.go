package training

import (
	"context"
	"time"

	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=training_test

type planner interface {
	Generate(ctx context.Context, u *users.User) (*Draft, error)
}

type planRepo interface {
	Add(ctx context.Context, p *Plan) error
	Get(ctx context.Context, ownerID, id string) (*Plan, error)
	ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]Plan, int, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type userGetter interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type healer interface {
	Heal(ctx context.Context, u *users.User) (bool, error)
}

type Service struct {
	planner planner
	repo    planRepo
	users   userGetter
	healer  healer
	now     func() time.Time
}

func NewService(planner planner, repo planRepo, users userGetter, healer healer) *Service {
	return &Service{
		planner: planner,
		repo:    repo,
		users:   users,
		healer:  healer,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Generate writes a new plan from the user's healed stats and stores it with a snapshot of them.
func (s *Service) Generate(ctx context.Context, userID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.healer.Heal(ctx, u); err != nil {
		log.Errorf("training: heal user %s: %s", userID, err)
	}

	draft, err := s.planner.Generate(ctx, u)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		ID:     uuid.NewString(),
		UserID: userID,
		Draft:  *draft,
		UserStats: UserStats{
			Goal:           u.Goal,
			Weight:         u.Weight,
			Height:         u.Height,
			Gender:         u.Gender,
			MuscleAverages: u.MuscleAverages,
		},
		CreatedAt: s.now(),
	}
	if err := s.repo.Add(ctx, plan); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *Service) List(ctx context.Context, userID string, page, limit int) (*ListResponse, error) {
	plans, total, err := s.repo.ListByOwner(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResponse{
		Plans:       plans,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		Total:       total,
	}, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Plan, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
