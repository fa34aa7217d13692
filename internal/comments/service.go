package comments

import (
	"context"
	"time"

	"github.com/2beens/flexly/internal/analysis"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=comments_test

type commentsRepo interface {
	Add(ctx context.Context, c *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	ListByAnalysis(ctx context.Context, analysisID string) ([]Comment, error)
	Delete(ctx context.Context, id string) error
}

type analysisGetter interface {
	Get(ctx context.Context, id string) (*analysis.Submission, error)
}

type Service struct {
	repo     commentsRepo
	analyses analysisGetter
	now      func() time.Time
}

func NewService(repo commentsRepo, analyses analysisGetter) *Service {
	return &Service{
		repo:     repo,
		analyses: analyses,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Add(ctx context.Context, authorID, analysisID, text string) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.comments.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", analysisID))

	text, err = NormalizeText(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.analyses.Get(ctx, analysisID); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:         uuid.NewString(),
		AnalysisID: analysisID,
		UserID:     authorID,
		Text:       text,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Add(ctx, c); err != nil {
		return nil, err
	}

	// reload to get the author summary
	return s.repo.Get(ctx, c.ID)
}

func (s *Service) List(ctx context.Context, analysisID string) ([]Comment, error) {
	return s.repo.ListByAnalysis(ctx, analysisID)
}

// Delete removes the comment, only its author can do it.
func (s *Service) Delete(ctx context.Context, actorID, commentID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.comments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		return ErrNotAuthor
	}

	return s.repo.Delete(ctx, commentID)
}
