package oracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/telemetry/metrics"
	"github.com/2beens/flexly/internal/telemetry/tracing"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const defaultAdviceTitle = "Analysis Result"

const ratingPrompt = `You are an elite bodybuilding and physique coach with a critical eye for detail.
Analyze the user's physique from the images provided.

1. Ratings (1.0 - 10.0): rate the muscle groups arms, chest, abs, shoulders, legs, back.
   If a muscle group is not visible in any of the images, return exactly 0 for it. Do not guess.
   Be strict but fair. A 10 is professional Olympia level, an average fit person is 5-7.
2. Advice: a short punchy title (max 7 words) and a detailed actionable analysis (2-4 sentences).
   Mention the strong and the lagging parts, and which parts could not be seen.

Return only JSON in this exact format:
{"ratings":{"arms":7.5,"chest":8.0,"abs":6.5,"shoulders":7.0,"legs":0,"back":7.8},"adviceTitle":"...","advice":"..."}`

var ErrNoAnswer = errors.New("rating oracle returned no answer")

type Image struct {
	ContentType string
	Data        []byte
}

func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.ContentType, base64.StdEncoding.EncodeToString(i.Data))
}

// Assessment is the raw oracle answer, ratings are not range checked yet.
type Assessment struct {
	Ratings     map[ratings.MuscleGroup]float64
	AdviceTitle string
	Advice      string
}

type Rater struct {
	client  *openai.Client
	model   string
	metrics *metrics.Manager
}

func NewRater(client *openai.Client, model string, metricsManager *metrics.Manager) *Rater {
	return &Rater{
		client:  client,
		model:   model,
		metrics: metricsManager,
	}
}

func (r *Rater) Rate(ctx context.Context, images []Image) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "oracle.rate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("images.count", len(images)), attribute.String("model", r.model))

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: "Rate this physique."},
	}
	for _, img := range images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    img.DataURL(),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ratingPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if r.metrics != nil {
		r.metrics.HistOracleDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoAnswer
	}

	log.Tracef("oracle answer, finish reason: %s", resp.Choices[0].FinishReason)
	return ParseAssessment(resp.Choices[0].Message.Content)
}

type rawAssessment struct {
	Ratings     map[string]json.RawMessage `json:"ratings"`
	AdviceTitle string                     `json:"adviceTitle"`
	Advice      string                     `json:"advice"`
}

// StripCodeFence removes a markdown code fence wrapped around a model answer.
func StripCodeFence(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseAssessment reads the oracle JSON answer, tolerating markdown code fences around it.
// Every muscle group must be present and numeric, nothing is defaulted.
func ParseAssessment(text string) (*Assessment, error) {
	clean := StripCodeFence(text)

	var raw rawAssessment
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, &ratings.ValidationError{Field: "ratings", Reason: "answer is not valid json"}
	}
	if raw.Ratings == nil {
		return nil, &ratings.ValidationError{Field: "ratings", Reason: "missing"}
	}

	values := make(map[string]json.RawMessage, len(raw.Ratings))
	for k, v := range raw.Ratings {
		values[strings.ToLower(k)] = v
	}

	assessment := &Assessment{
		Ratings:     make(map[ratings.MuscleGroup]float64, len(ratings.MuscleGroups)),
		AdviceTitle: strings.TrimSpace(raw.AdviceTitle),
		Advice:      strings.TrimSpace(raw.Advice),
	}
	for _, g := range ratings.MuscleGroups {
		v, ok := values[string(g)]
		if !ok {
			return nil, &ratings.ValidationError{Field: string(g), Reason: "missing"}
		}
		var f float64
		if strings.TrimSpace(string(v)) == "null" {
			return nil, &ratings.ValidationError{Field: string(g), Reason: "not a number"}
		}
		if err := json.Unmarshal(v, &f); err != nil {
			return nil, &ratings.ValidationError{Field: string(g), Reason: "not a number"}
		}
		assessment.Ratings[g] = f
	}
	if assessment.AdviceTitle == "" {
		assessment.AdviceTitle = defaultAdviceTitle
	}

	return assessment, nil
}
