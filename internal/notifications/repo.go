package notifications

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

func (r *Repo) Add(ctx context.Context, n *Notification) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recipient.id", n.RecipientID), attribute.String("type", string(n.Type)))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO notification (id, recipient_id, sender_id, type, read, message, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Read, n.Message, n.CreatedAt,
	)
	return err
}

func (r *Repo) ListForRecipient(ctx context.Context, recipientID string, limit int) (_ []Notification, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.listForRecipient")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("recipient.id", recipientID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT n.id, n.recipient_id, n.sender_id, n.type, n.read, n.message, n.created_at,
				u.id, u.name, u.username, u.profile_picture
			FROM notification n
			JOIN users u ON u.id = n.sender_id
			WHERE n.recipient_id = $1
			ORDER BY n.created_at DESC
			LIMIT $2;`,
		recipientID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2notifications(rows)
}

func (r *Repo) MarkAllRead(ctx context.Context, recipientID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.markAllRead")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE notification SET read = TRUE WHERE recipient_id = $1 AND read = FALSE;`,
		recipientID,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// DeleteForUser removes the notifications the user sent or received, and the user's device tokens.
func (r *Repo) DeleteForUser(ctx context.Context, userID string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.deleteForUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM notification WHERE recipient_id = $1 OR sender_id = $1;`, userID)
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM device_token WHERE user_id = $1;`, userID); err != nil {
		return 0, err
	}

	return tag.RowsAffected(), tx.Commit(ctx)
}

func (r *Repo) AddDeviceToken(ctx context.Context, userID, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.addDeviceToken")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO device_token (user_id, token, created_at) VALUES ($1, $2, NOW())
			ON CONFLICT (user_id, token) DO NOTHING;`,
		userID, token,
	)
	return err
}

func (r *Repo) DeviceTokens(ctx context.Context, userID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.notifications.deviceTokens")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT token FROM device_token WHERE user_id = $1 ORDER BY created_at;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect device tokens: %w", err)
	}
	return tokens, nil
}

func rows2notifications(rows pgx.Rows) ([]Notification, error) {
	list := []Notification{}
	for rows.Next() {
		var n Notification
		var message *string
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Read, &message, &n.CreatedAt,
			&n.Sender.ID, &n.Sender.Name, &n.Sender.Username, &n.Sender.ProfilePicture,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if message != nil {
			n.Message = *message
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
