package comments

import (
	"context"
	"fmt"

	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const selectComments = `
	SELECT c.id, c.analysis_id, c.user_id, c.text, c.created_at,
		u.id, u.name, u.username, u.profile_picture
	FROM comment c
	JOIN users u ON u.id = c.user_id`

func (r *Repo) Add(ctx context.Context, c *Comment) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", c.AnalysisID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO comment (id, analysis_id, user_id, text, created_at) VALUES ($1, $2, $3, $4, $5);`,
		c.ID, c.AnalysisID, c.UserID, c.Text, c.CreatedAt,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, selectComments+` WHERE c.id = $1;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2comments(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrCommentNotFound
	}

	return &list[0], nil
}

// ListByAnalysis returns the comments of the analysis, newest first.
func (r *Repo) ListByAnalysis(ctx context.Context, analysisID string) (_ []Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.listByAnalysis")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", analysisID))

	rows, err := r.db.Query(ctx, selectComments+` WHERE c.analysis_id = $1 ORDER BY c.created_at DESC;`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2comments(rows)
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM comment WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (r *Repo) DeleteByAnalysis(ctx context.Context, analysisID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.deleteByAnalysis")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("analysis.id", analysisID))

	tag, err := r.db.Exec(ctx, `DELETE FROM comment WHERE analysis_id = $1;`, analysisID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// DeleteForUser removes the comments written by the user and the comments left on the user's analyses.
func (r *Repo) DeleteForUser(ctx context.Context, userID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.comments.deleteForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM comment
			WHERE user_id = $1
				OR analysis_id IN (SELECT id FROM analysis WHERE user_id = $1);`,
		userID,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func rows2comments(rows pgx.Rows) ([]Comment, error) {
	list := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(
			&c.ID, &c.AnalysisID, &c.UserID, &c.Text, &c.CreatedAt,
			&c.Author.ID, &c.Author.Name, &c.Author.Username, &c.Author.ProfilePicture,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
