package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/flexly/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultEndpoint = "https://fcm.googleapis.com/fcm/send"

var ErrNotConfigured = errors.New("push server key not set")

type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmPayload struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    fcmNotification   `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
	Priority        string            `json:"priority"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// FCMClient sends notifications through the FCM legacy HTTP API.
type FCMClient struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

func NewFCMClient(endpoint, serverKey string) *FCMClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &FCMClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Send pushes the message to the given device tokens. No tokens is a no-op.
func (c *FCMClient) Send(ctx context.Context, tokens []string, msg Message) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "push.fcm.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("tokens.count", len(tokens)))

	if len(tokens) == 0 {
		return nil
	}
	if c.serverKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(fcmPayload{
		RegistrationIDs: tokens,
		Notification: fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data:     msg.Data,
		Priority: "high",
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.serverKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read push response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push rejected with status %d: %s", resp.StatusCode, respBody)
	}

	var result fcmResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("unmarshal push response: %w", err)
	}
	if result.Failure > 0 {
		log.Warnf("push delivered to %d of %d devices", result.Success, len(tokens))
	}
	if result.Success == 0 {
		return fmt.Errorf("push not delivered to any of %d devices", len(tokens))
	}

	return nil
}
