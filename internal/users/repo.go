package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/stats"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUnknownRankField = errors.New("unknown rank field")
)

const userColumns = `
	id, name, username, email, profile_picture, bio, gender, weight, height, age, goal, country,
	social_hidden, created_at, score, muscle_averages, analytics_tracked, streak,
	followers_count, following_count`

// corruptedPredicate must stay in sync with healing.NeedsRepair.
const corruptedPredicate = `(
	score > 10
	OR (score > 0 AND (muscle_averages IS NULL OR NOT (muscle_averages ? 'arms')))
	OR EXISTS (SELECT 1 FROM jsonb_each_text(muscle_averages) kv WHERE kv.value::float8 > 10)
)`

var rankExpressions = map[RankField]string{
	RankScore:                         "score",
	MuscleRankField(ratings.Arms):      "COALESCE((muscle_averages->>'arms')::float8, 0)",
	MuscleRankField(ratings.Chest):     "COALESCE((muscle_averages->>'chest')::float8, 0)",
	MuscleRankField(ratings.Abs):       "COALESCE((muscle_averages->>'abs')::float8, 0)",
	MuscleRankField(ratings.Shoulders): "COALESCE((muscle_averages->>'shoulders')::float8, 0)",
	MuscleRankField(ratings.Legs):      "COALESCE((muscle_averages->>'legs')::float8, 0)",
	MuscleRankField(ratings.Back):      "COALESCE((muscle_averages->>'back')::float8, 0)",
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, u *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if u.Username == "" {
		return nil, errors.New("username empty")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	span.SetAttributes(attribute.String("user.id", u.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users
				(id, name, username, email, password_hash, profile_picture, bio, gender, weight, height, age, goal, country, social_hidden, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		u.ID, u.Name, u.Username, u.Email, u.PasswordHash, u.ProfilePicture, u.Bio, u.Gender, u.Weight, u.Height,
		u.Age, u.Goal, u.Country, u.SocialHidden, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return u, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := rows2users(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrUserNotFound
	}

	return &list[0], nil
}

// GetCredentials returns the id and the password hash of the user with the given email.
func (r *Repo) GetCredentials(ctx context.Context, email string) (_ string, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getCredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id, passwordHash string
	err = r.db.QueryRow(
		ctx,
		`SELECT id, password_hash FROM users WHERE email = $1;`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&id, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	return id, passwordHash, nil
}

// GetMany returns the summaries of the given users, missing ids are skipped.
func (r *Repo) GetMany(ctx context.Context, ids []string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ids.count", len(ids)))

	if len(ids) == 0 {
		return []Summary{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, username, profile_picture FROM users WHERE id = ANY($1) ORDER BY username;`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2summaries(rows)
}

func (r *Repo) Search(ctx context.Context, query string, limit int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return []Summary{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, username, profile_picture
			FROM users
			WHERE name ILIKE $1 OR username ILIKE $1
			ORDER BY username
			LIMIT $2;`,
		"%"+escapeLike(query)+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2summaries(rows)
}

// UpdateAggregates persists the derived stats, the streak is left as is.
func (r *Repo) UpdateAggregates(ctx context.Context, id string, agg stats.Aggregates) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateAggregates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	averagesJson, err := json.Marshal(agg.MuscleAverages)
	if err != nil {
		return fmt.Errorf("marshal muscle averages: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET score = $1, muscle_averages = $2, analytics_tracked = $3 WHERE id = $4;`,
		agg.Score, averagesJson, agg.Submissions, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateStats persists the derived stats together with the streak.
func (r *Repo) UpdateStats(ctx context.Context, id string, agg stats.Aggregates, streak int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id), attribute.Int("streak", streak))

	averagesJson, err := json.Marshal(agg.MuscleAverages)
	if err != nil {
		return fmt.Errorf("marshal muscle averages: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET score = $1, muscle_averages = $2, analytics_tracked = $3, streak = $4 WHERE id = $5;`,
		agg.Score, averagesJson, agg.Submissions, streak, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateProfile writes the set fields of the update. Derived stats are never touched here.
func (r *Repo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateProfile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	if update.Empty() {
		return nil
	}

	var sets []string
	var args []any
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Bio != nil {
		set("bio", *update.Bio)
	}
	if update.ProfilePicture != nil {
		set("profile_picture", *update.ProfilePicture)
	}
	if update.Gender != nil {
		set("gender", *update.Gender)
	}
	if update.Weight != nil {
		set("weight", *update.Weight)
	}
	if update.Height != nil {
		set("height", *update.Height)
	}
	if update.Age != nil {
		set("age", *update.Age)
	}
	if update.Goal != nil {
		set("goal", *update.Goal)
	}
	if update.Country != nil {
		set("country", *update.Country)
	}
	if update.SocialHidden != nil {
		set("social_hidden", *update.SocialHidden)
	}
	args = append(args, id)

	tag, err := r.db.Exec(
		ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d;`, strings.Join(sets, ", "), len(args)),
		args...,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repo) ListCorrupted(ctx context.Context, filter PopulationFilter, limit int) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.listCorrupted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	where, args := filterClause(filter, nil)
	args = append(args, limit)
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT %s FROM users WHERE %s AND %s LIMIT $%d;`,
			userColumns, where, corruptedPredicate, len(args),
		),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2users(rows)
}

// Top returns up to limit users of the filtered population, ordered descending by field.
func (r *Repo) Top(ctx context.Context, field RankField, filter PopulationFilter, limit int) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.top")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("rank.field", string(field)), attribute.Int("limit", limit))

	expr, ok := rankExpressions[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRankField, field)
	}

	where, args := filterClause(filter, nil)
	args = append(args, limit)
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(
			`SELECT %s FROM users WHERE %s ORDER BY %s DESC LIMIT $%d;`,
			userColumns, where, expr, len(args),
		),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2users(rows)
}

// CountAbove counts the users of the filtered population with field strictly greater than value.
func (r *Repo) CountAbove(ctx context.Context, field RankField, filter PopulationFilter, value float64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.countAbove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	expr, ok := rankExpressions[field]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRankField, field)
	}

	where, args := filterClause(filter, nil)
	args = append(args, value)
	var count int
	if err := r.db.QueryRow(
		ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s AND %s > $%d;`, where, expr, len(args)),
		args...,
	).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func filterClause(filter PopulationFilter, args []any) (string, []any) {
	conditions := []string{"TRUE"}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)))
	}
	if filter.Weight.Min != nil {
		args = append(args, *filter.Weight.Min)
		op := ">="
		if filter.Weight.MinExclusive {
			op = ">"
		}
		conditions = append(conditions, fmt.Sprintf("weight %s $%d", op, len(args)))
	}
	if filter.Weight.Max != nil {
		args = append(args, *filter.Weight.Max)
		op := "<="
		if filter.Weight.MaxExclusive {
			op = "<"
		}
		conditions = append(conditions, fmt.Sprintf("weight %s $%d", op, len(args)))
	}
	return strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func rows2users(rows pgx.Rows) ([]User, error) {
	var list []User
	for rows.Next() {
		var u User
		var averagesJson []byte
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Username, &u.Email, &u.ProfilePicture, &u.Bio, &u.Gender,
			&u.Weight, &u.Height, &u.Age, &u.Goal, &u.Country, &u.SocialHidden, &u.CreatedAt,
			&u.Score, &averagesJson, &u.AnalyticsTracked, &u.Streak,
			&u.FollowersCount, &u.FollowingCount,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if averagesJson != nil {
			if err := json.Unmarshal(averagesJson, &u.MuscleAverages); err != nil {
				return nil, fmt.Errorf("unmarshal muscle averages of %s: %w", u.ID, err)
			}
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func rows2summaries(rows pgx.Rows) ([]Summary, error) {
	list := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Username, &s.ProfilePicture); err != nil {
			return nil, fmt.Errorf("scan user summary: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
