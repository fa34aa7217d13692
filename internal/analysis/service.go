package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/flexly/internal/objectstore"
	"github.com/2beens/flexly/internal/oracle"
	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/stats"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=analysis_test

var (
	ErrNotOwner      = errors.New("not the owner of the analysis")
	ErrNoImages      = errors.New("at least one image is required")
	ErrTooManyImages = errors.New("too many images")
)

type rater interface {
	Rate(ctx context.Context, images []oracle.Image) (*oracle.Assessment, error)
}

type objectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type submissionRepo interface {
	Add(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
	Delete(ctx context.Context, id string) error
	LastCreatedAt(ctx context.Context, ownerID string) (*time.Time, error)
	ListByOwner(ctx context.Context, ownerID string, page, limit int) ([]Submission, int, error)
	ListVectors(ctx context.Context, ownerID string) ([]ratings.Vector, error)
	Feed(ctx context.Context, followerID string, page, limit int) ([]FeedItem, error)
}

type userStore interface {
	Get(ctx context.Context, id string) (*users.User, error)
	UpdateStats(ctx context.Context, id string, agg stats.Aggregates, streak int) error
	UpdateAggregates(ctx context.Context, id string, agg stats.Aggregates) error
}

type commentRemover interface {
	DeleteByAnalysis(ctx context.Context, analysisID string) (int64, error)
}

type ServiceParams struct {
	Rater     rater
	Store     objectStore
	Repo      submissionRepo
	Users     userStore
	Comments  commentRemover
	Metrics   *metrics.Manager
	MaxImages int
}

type Service struct {
	rater      rater
	store      objectStore
	repo       submissionRepo
	users      userStore
	comments   commentRemover
	aggregator *stats.Aggregator
	metrics    *metrics.Manager
	maxImages  int
	now        func() time.Time
}

func NewService(params ServiceParams) *Service {
	maxImages := params.MaxImages
	if maxImages <= 0 {
		maxImages = 5
	}
	return &Service{
		rater:      params.Rater,
		store:      params.Store,
		repo:       params.Repo,
		users:      params.Users,
		comments:   params.Comments,
		aggregator: stats.NewAggregator(params.Repo),
		metrics:    params.Metrics,
		maxImages:  maxImages,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the creation time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create rates the images, stores the submission and refreshes the owner's derived stats.
// A rating that fails validation creates nothing.
func (s *Service) Create(ctx context.Context, ownerID string, images []oracle.Image) (_ *Submission, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", ownerID), attribute.Int("images.count", len(images)))

	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > s.maxImages {
		return nil, fmt.Errorf("%w: max %d", ErrTooManyImages, s.maxImages)
	}

	owner, err := s.users.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.rater.Rate(ctx, images)
	if err != nil {
		s.countSubmission(err)
		return nil, err
	}
	vector, err := ratings.NewVector(assessment.Ratings)
	if err != nil {
		s.countSubmission(err)
		return nil, err
	}

	imageURLs, err := s.uploadImages(ctx, ownerID, images)
	if err != nil {
		s.countSubmission(err)
		return nil, fmt.Errorf("upload images: %w", err)
	}

	previous, err := s.repo.LastCreatedAt(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get last analysis time: %w", err)
	}

	submission := &Submission{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		ImageURLs:   imageURLs,
		Ratings:     vector.Ratings,
		Overall:     vector.Overall,
		AdviceTitle: assessment.AdviceTitle,
		Advice:      assessment.Advice,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Add(ctx, submission); err != nil {
		s.countSubmission(err)
		s.deleteImages(ctx, imageURLs)
		return nil, fmt.Errorf("store analysis: %w", err)
	}
	s.countSubmission(nil)

	// the submission is stored at this point, stale stats are rebuilt on the next write
	agg, err := s.aggregator.Recompute(ctx, ownerID)
	if err != nil {
		log.Errorf("analysis %s created, but recompute stats of %s failed: %s", submission.ID, ownerID, err)
		return submission, nil
	}
	streak := stats.AdvanceStreak(owner.Streak, previous, submission.CreatedAt)
	if err := s.users.UpdateStats(ctx, ownerID, agg, streak); err != nil {
		log.Errorf("analysis %s created, but persist stats of %s failed: %s", submission.ID, ownerID, err)
	}

	return submission, nil
}

func (s *Service) uploadImages(ctx context.Context, ownerID string, images []oracle.Image) ([]string, error) {
	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			key := fmt.Sprintf("analysis/%s/%s%s", ownerID, uuid.NewString(), objectstore.ExtensionFor(img.ContentType))
			url, err := s.store.Put(gctx, key, img.ContentType, img.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.deleteImages(ctx, urls)
		return nil, err
	}
	return urls, nil
}

func (s *Service) deleteImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		key, ok := s.store.KeyFromURL(url)
		if !ok {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil && !errors.Is(err, objectstore.ErrObjectNotFound) {
			log.Warnf("delete image %s: %s", key, err)
		}
	}
}

func (s *Service) countSubmission(err error) {
	if s.metrics == nil {
		return
	}
	var vErr *ratings.ValidationError
	switch {
	case err == nil:
		s.metrics.CounterSubmissions.WithLabelValues("created").Inc()
	case errors.As(err, &vErr):
		s.metrics.CounterSubmissions.WithLabelValues("rejected").Inc()
	default:
		s.metrics.CounterSubmissions.WithLabelValues("failed").Inc()
	}
}

// Delete removes the submission with its comments, and rebuilds the owner's stats
// from what is left. The streak is not rolled back.
func (s *Service) Delete(ctx context.Context, actorID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", id), attribute.String("actor.id", actorID))

	submission, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if submission.UserID != actorID {
		return ErrNotOwner
	}

	if s.comments != nil {
		if _, err := s.comments.DeleteByAnalysis(ctx, id); err != nil {
			log.Errorf("delete comments of analysis %s: %s", id, err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CounterSubmissions.WithLabelValues("deleted").Inc()
	}

	if err := s.RefreshStats(ctx, submission.UserID); err != nil {
		log.Errorf("analysis %s deleted, but refresh stats of %s failed: %s", id, submission.UserID, err)
	}
	s.deleteImages(ctx, submission.ImageURLs)

	return nil
}

// RefreshStats recomputes and persists the aggregates of the owner, the streak stays as is.
func (s *Service) RefreshStats(ctx context.Context, ownerID string) error {
	agg, err := s.aggregator.Recompute(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.users.UpdateAggregates(ctx, ownerID, agg)
}

func (s *Service) List(ctx context.Context, ownerID string, page, limit int) (*ListResponse, error) {
	list, total, err := s.repo.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ListResponse{
		Analyses: list,
		Total:    total,
	}, nil
}

func (s *Service) Feed(ctx context.Context, userID string, page, limit int) (*FeedResponse, error) {
	items, err := s.repo.Feed(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &FeedResponse{
		Analyses: items,
		Page:     page,
	}, nil
}
