package training

import (
	"context"
	"encoding/json"
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

const planColumns = `id, user_id, title, description, week_plan, tips, user_stats, created_at`

func (r *Repo) Add(ctx context.Context, p *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", p.UserID))

	weekPlanJson, err := json.Marshal(p.WeekPlan)
	if err != nil {
		return fmt.Errorf("marshal week plan: %w", err)
	}
	tipsJson, err := json.Marshal(p.Tips)
	if err != nil {
		return fmt.Errorf("marshal tips: %w", err)
	}
	statsJson, err := json.Marshal(p.UserStats)
	if err != nil {
		return fmt.Errorf("marshal user stats: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO training_plan (`+planColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		p.ID, p.UserID, p.Title, p.Description, weekPlanJson, tipsJson, statsJson, p.CreatedAt,
	)
	return err
}

// Get returns the plan only if it belongs to the owner.
func (r *Repo) Get(ctx context.Context, ownerID, id string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+planColumns+` FROM training_plan WHERE id = $1 AND user_id = $2;`,
		id, ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2plans(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrPlanNotFound
	}

	return &list[0], nil
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID string, page, limit int) (_ []Plan, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("limit", limit))

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM training_plan WHERE user_id = $1;`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+planColumns+` FROM training_plan WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		ownerID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := rows2plans(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repo) Delete(ctx context.Context, ownerID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM training_plan WHERE id = $1 AND user_id = $2;`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *Repo) DeleteByOwner(ctx context.Context, ownerID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.deleteByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM training_plan WHERE user_id = $1;`, ownerID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func rows2plans(rows pgx.Rows) ([]Plan, error) {
	list := []Plan{}
	for rows.Next() {
		var p Plan
		var weekPlanJson, tipsJson, statsJson []byte
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Description, &weekPlanJson, &tipsJson, &statsJson, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan training plan: %w", err)
		}
		if err := json.Unmarshal(weekPlanJson, &p.WeekPlan); err != nil {
			return nil, fmt.Errorf("unmarshal week plan of %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(tipsJson, &p.Tips); err != nil {
			return nil, fmt.Errorf("unmarshal tips of %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(statsJson, &p.UserStats); err != nil {
			return nil, fmt.Errorf("unmarshal user stats of %s: %w", p.ID, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
