package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/flexly/internal/push"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=dispatcher_mocks_test.go -package=notifications_test

type notificationStore interface {
	Add(ctx context.Context, n *Notification) error
	DeviceTokens(ctx context.Context, userID string) ([]string, error)
}

type pusher interface {
	Send(ctx context.Context, tokens []string, msg push.Message) error
}

// Dispatcher stores a notification and then tries to push it to the recipient's devices.
type Dispatcher struct {
	store   notificationStore
	pusher  pusher
	metrics *metrics.Manager
	now     func() time.Time
}

func NewDispatcher(store notificationStore, pusher pusher, metricsManager *metrics.Manager) *Dispatcher {
	return &Dispatcher{
		store:   store,
		pusher:  pusher,
		metrics: metricsManager,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Notify returns an error only if the notification could not be stored.
// Push delivery failures are logged and counted.
func (d *Dispatcher) Notify(ctx context.Context, recipientID, senderID string, t Type) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notifications.dispatcher.notify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("recipient.id", recipientID),
		attribute.String("sender.id", senderID),
		attribute.String("type", string(t)),
	)

	n := &Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        t,
		CreatedAt:   d.now(),
	}
	if err := d.store.Add(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	if d.pusher == nil {
		return nil
	}
	if err := d.push(ctx, n); err != nil {
		if errors.Is(err, push.ErrNotConfigured) {
			log.Debugf("push notification %s skipped: %s", n.ID, err)
			return nil
		}
		log.Errorf("push notification %s to %s: %s", n.ID, recipientID, err)
		if d.metrics != nil {
			d.metrics.CounterPushFailures.Inc()
		}
	}

	return nil
}

func (d *Dispatcher) push(ctx context.Context, n *Notification) error {
	tokens, err := d.store.DeviceTokens(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("get device tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}
	return d.pusher.Send(ctx, tokens, pushMessage(n))
}

func pushMessage(n *Notification) push.Message {
	msg := push.Message{
		Title: "New notification",
		Body:  "You have a new update.",
		Data: map[string]string{
			"notificationId": n.ID,
			"type":           string(n.Type),
		},
	}
	if n.Type == TypeFollow {
		msg.Title = "New follower"
		msg.Body = "Someone just followed you on Flexly."
	}
	return msg
}
