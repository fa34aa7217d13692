package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/flexly/internal/oracle"
	"github.com/2beens/flexly/internal/telemetry/tracing"
	"github.com/2beens/flexly/internal/users"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
)

const plannerPrompt = `You are an expert personal trainer and fitness coach.
Based on the user's profile and muscle stats, create a personalized 7-day training plan that:
1. focuses on the weakest muscle groups (listed first),
2. maintains the strong points,
3. aligns with the stated goal,
4. includes 1-2 rest days,
5. has realistic sets and reps.
Each workout day has 4-6 exercises. Include 3-5 practical tips.
Answer with JSON only, in this format:
{"title": "...", "description": "...", "weekPlan": [{"day": "Monday", "focus": "...", "isRestDay": false,
"exercises": [{"name": "...", "sets": 4, "reps": "8-10", "notes": "..."}]}], "tips": ["..."]}`

var errNoPlan = errors.New("planner returned no answer")

type Generator struct {
	client *openai.Client
	model  string
}

func NewGenerator(client *openai.Client, model string) *Generator {
	return &Generator{
		client: client,
		model:  model,
	}
}

func (g *Generator) Generate(ctx context.Context, u *users.User) (_ *Draft, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "training.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", u.ID), attribute.String("model", g.model))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: plannerPrompt},
			{Role: openai.ChatMessageRoleUser, Content: UserContext(u)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errNoPlan
	}

	return ParseDraft(resp.Choices[0].Message.Content)
}

// UserContext describes the profile and the muscle stats to the planner.
func UserContext(u *users.User) string {
	orDefault := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}

	var sb strings.Builder
	sb.WriteString("User profile:\n")
	fmt.Fprintf(&sb, "- Gender: %s\n", orDefault(u.Gender, "Not specified"))
	if u.Age > 0 {
		fmt.Fprintf(&sb, "- Age: %d\n", u.Age)
	} else {
		sb.WriteString("- Age: Not specified\n")
	}
	if u.Weight > 0 {
		fmt.Fprintf(&sb, "- Weight: %.1f kg\n", u.Weight)
	} else {
		sb.WriteString("- Weight: Not specified\n")
	}
	if u.Height > 0 {
		fmt.Fprintf(&sb, "- Height: %.0f cm\n", u.Height)
	} else {
		sb.WriteString("- Height: Not specified\n")
	}
	fmt.Fprintf(&sb, "- Goal: %s\n", orDefault(u.Goal, "General fitness"))

	sb.WriteString("Muscle stats, weakest first (1-10 scale, 0 means not assessed):\n")
	for _, g := range WeakestFirst(u.MuscleAverages) {
		fmt.Fprintf(&sb, "- %s: %.1f\n", g, u.MuscleAverages[g])
	}

	return sb.String()
}

// ParseDraft reads the planner answer. A plan needs a title and at least one day.
func ParseDraft(text string) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal([]byte(oracle.StripCodeFence(text)), &d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, err)
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return nil, fmt.Errorf("%w: missing title", ErrInvalidPlan)
	}
	if len(d.WeekPlan) == 0 {
		return nil, fmt.Errorf("%w: no days", ErrInvalidPlan)
	}
	for i := range d.WeekPlan {
		if d.WeekPlan[i].Exercises == nil {
			d.WeekPlan[i].Exercises = []Exercise{}
		}
	}
	if d.Tips == nil {
		d.Tips = []string{}
	}
	return &d, nil
}
