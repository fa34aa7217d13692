package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSubmissionNotFound = errors.New("analysis not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, s *Submission) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", s.ID), attribute.String("user.id", s.UserID))

	ratingsJson, err := json.Marshal(s.Ratings)
	if err != nil {
		return fmt.Errorf("marshal ratings: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO analysis
				(id, user_id, image_urls, ratings, overall, advice_title, advice, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		s.ID, s.UserID, s.ImageURLs, ratingsJson, s.Overall, s.AdviceTitle, s.Advice, s.CreatedAt,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Submission, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, image_urls, ratings, overall, advice_title, advice, created_at
			FROM analysis
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2submissions(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrSubmissionNotFound
	}

	return &list[0], nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM analysis WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *Repo) DeleteByOwner(ctx context.Context, ownerID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.deleteByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", ownerID))

	tag, err := r.db.Exec(ctx, `DELETE FROM analysis WHERE user_id = $1;`, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// LastCreatedAt returns the creation time of the newest submission of the owner, nil if there is none.
func (r *Repo) LastCreatedAt(ctx context.Context, ownerID string) (_ *time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.lastCreatedAt")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var last *time.Time
	if err := r.db.QueryRow(
		ctx,
		`SELECT MAX(created_at) FROM analysis WHERE user_id = $1;`,
		ownerID,
	).Scan(&last); err != nil {
		return nil, err
	}
	return last, nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string, page, limit int) (_ []Submission, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", ownerID), attribute.Int("page", page), attribute.Int("limit", limit))

	var total int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM analysis WHERE user_id = $1;`,
		ownerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, image_urls, ratings, overall, advice_title, advice, created_at
			FROM analysis
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3;`,
		ownerID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := rows2submissions(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// ListVectors loads the ratings of the whole history of the owner.
func (r *Repo) ListVectors(ctx context.Context, ownerID string) (_ []ratings.Vector, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.listVectors")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT ratings, overall FROM analysis WHERE user_id = $1;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vectors []ratings.Vector
	for rows.Next() {
		var ratingsJson []byte
		var v ratings.Vector
		if err := rows.Scan(&ratingsJson, &v.Overall); err != nil {
			return nil, fmt.Errorf("scan ratings: %w", err)
		}
		if err := json.Unmarshal(ratingsJson, &v.Ratings); err != nil {
			return nil, fmt.Errorf("unmarshal ratings: %w", err)
		}
		vectors = append(vectors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// Feed lists the submissions of the users followed by followerID, newest first.
func (r *Repo) Feed(ctx context.Context, followerID string, page, limit int) (_ []FeedItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", followerID), attribute.Int("page", page))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				a.id, a.user_id, a.image_urls, a.ratings, a.overall, a.advice_title, a.advice, a.created_at,
				u.name, u.username, u.profile_picture
			FROM analysis a
			JOIN follow_edge f ON f.followed_id = a.user_id
			JOIN users u ON u.id = a.user_id
			WHERE f.follower_id = $1
			ORDER BY a.created_at DESC
			LIMIT $2 OFFSET $3;`,
		followerID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []FeedItem{}
	for rows.Next() {
		var item FeedItem
		var ratingsJson []byte
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ImageURLs, &ratingsJson, &item.Overall,
			&item.AdviceTitle, &item.Advice, &item.CreatedAt,
			&item.Author.Name, &item.Author.Username, &item.Author.ProfilePicture,
		); err != nil {
			return nil, fmt.Errorf("scan feed item: %w", err)
		}
		if err := json.Unmarshal(ratingsJson, &item.Ratings); err != nil {
			return nil, fmt.Errorf("unmarshal ratings: %w", err)
		}
		item.Author.ID = item.UserID
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func rows2submissions(rows pgx.Rows) ([]Submission, error) {
	list := []Submission{}
	for rows.Next() {
		var s Submission
		var ratingsJson []byte
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.ImageURLs, &ratingsJson, &s.Overall, &s.AdviceTitle, &s.Advice, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if err := json.Unmarshal(ratingsJson, &s.Ratings); err != nil {
			return nil, fmt.Errorf("unmarshal ratings of %s: %w", s.ID, err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
