package social

import (
	"context"
	"fmt"

	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Graph stores follow edges. Both counters of an edge are recounted in the same
// transaction that adds or removes it.
type Graph struct {
	db *pgxpool.Pool
}

func NewGraph(db *pgxpool.Pool) *Graph {
	return &Graph{
		db: db,
	}
}

func (g *Graph) Follow(ctx context.Context, actorID, targetID string) (_ *Relation, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.follow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("actor.id", actorID), attribute.String("target.id", targetID))

	return g.changeEdge(ctx, actorID, targetID,
		`INSERT INTO follow_edge (follower_id, followed_id, created_at) VALUES ($1, $2, NOW())
			ON CONFLICT (follower_id, followed_id) DO NOTHING;`,
	)
}

func (g *Graph) Unfollow(ctx context.Context, actorID, targetID string) (_ *Relation, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.unfollow")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("actor.id", actorID), attribute.String("target.id", targetID))

	return g.changeEdge(ctx, actorID, targetID,
		`DELETE FROM follow_edge WHERE follower_id = $1 AND followed_id = $2;`,
	)
}

func (g *Graph) changeEdge(ctx context.Context, actorID, targetID, stmt string) (*Relation, bool, error) {
	tx, err := g.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	locked, err := lockUsers(ctx, tx, []string{actorID, targetID})
	if err != nil {
		return nil, false, err
	}
	if locked != 2 {
		return nil, false, users.ErrUserNotFound
	}

	tag, err := tx.Exec(ctx, stmt, actorID, targetID)
	if err != nil {
		return nil, false, err
	}
	changed := tag.RowsAffected() > 0

	rel := &Relation{
		ActorID:  actorID,
		TargetID: targetID,
	}
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM follow_edge WHERE follower_id = $1 AND followed_id = $2);`,
		actorID, targetID,
	).Scan(&rel.Following); err != nil {
		return nil, false, err
	}
	if rel.ActorFollowingCount, err = recount(ctx, tx, actorID, "following"); err != nil {
		return nil, false, err
	}
	if rel.TargetFollowerCount, err = recount(ctx, tx, targetID, "followers"); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return rel, changed, nil
}

// RemoveAllEdges drops every edge touching the user and recounts the counters of
// the user and of all former neighbours. It returns the neighbour ids.
func (g *Graph) RemoveAllEdges(ctx context.Context, userID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.removeAllEdges")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tx, err := g.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(
		ctx,
		`
			SELECT followed_id FROM follow_edge WHERE follower_id = $1
			UNION
			SELECT follower_id FROM follow_edge WHERE followed_id = $1;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	neighbours, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect neighbours: %w", err)
	}
	span.SetAttributes(attribute.Int("neighbours.count", len(neighbours)))

	if _, err := lockUsers(ctx, tx, append([]string{userID}, neighbours...)); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM follow_edge WHERE follower_id = $1 OR followed_id = $1;`, userID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(
		ctx,
		`
			UPDATE users u SET
				followers_count = (SELECT COUNT(*) FROM follow_edge WHERE followed_id = u.id),
				following_count = (SELECT COUNT(*) FROM follow_edge WHERE follower_id = u.id)
			WHERE u.id = ANY($1);`,
		append([]string{userID}, neighbours...),
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return neighbours, nil
}

func (g *Graph) IsFollowing(ctx context.Context, actorID, targetID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.isFollowing")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var following bool
	err = g.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM follow_edge WHERE follower_id = $1 AND followed_id = $2);`,
		actorID, targetID,
	).Scan(&following)
	return following, err
}

func (g *Graph) Followers(ctx context.Context, userID string) (_ []users.Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.followers")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return g.summaries(ctx,
		`
			SELECT u.id, u.name, u.username, u.profile_picture
			FROM follow_edge e
			JOIN users u ON u.id = e.follower_id
			WHERE e.followed_id = $1
			ORDER BY e.created_at DESC;`,
		userID,
	)
}

func (g *Graph) Following(ctx context.Context, userID string) (_ []users.Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.following")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return g.summaries(ctx,
		`
			SELECT u.id, u.name, u.username, u.profile_picture
			FROM follow_edge e
			JOIN users u ON u.id = e.followed_id
			WHERE e.follower_id = $1
			ORDER BY e.created_at DESC;`,
		userID,
	)
}

func (g *Graph) summaries(ctx context.Context, query, userID string) ([]users.Summary, error) {
	rows, err := g.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []users.Summary{}
	for rows.Next() {
		var s users.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Username, &s.ProfilePicture); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// lockUsers locks the user rows ordered by id, so two transactions over the same
// pair of users always lock in the same order.
func lockUsers(ctx context.Context, tx pgx.Tx, ids []string) (int, error) {
	rows, err := tx.Query(ctx, `SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE;`, ids)
	if err != nil {
		return 0, err
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return 0, fmt.Errorf("lock users: %w", err)
	}
	return len(locked), nil
}

func recount(ctx context.Context, tx pgx.Tx, userID, side string) (int, error) {
	var stmt string
	switch side {
	case "following":
		stmt = `UPDATE users SET following_count = (SELECT COUNT(*) FROM follow_edge WHERE follower_id = $1)
			WHERE id = $1 RETURNING following_count;`
	case "followers":
		stmt = `UPDATE users SET followers_count = (SELECT COUNT(*) FROM follow_edge WHERE followed_id = $1)
			WHERE id = $1 RETURNING followers_count;`
	default:
		return 0, fmt.Errorf("unknown side: %s", side)
	}
	var count int
	err := tx.QueryRow(ctx, stmt, userID).Scan(&count)
	return count, err
}
