package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"creatitube/pkg/logger"
	"creatitube/pkg/metrics"

	"github.com/goccy/go-json"
)

const (
	HighlightsFailedMsg      = "Failed to generate AI highlights."
	HighlightsUnavailableMsg = "AI highlights are unavailable."
)

// ErrUnavailable is reported when no model is configured.
var ErrUnavailable = errors.New("generative model is not configured")

// FallbackTopics are suggested whenever the model cannot be used.
func FallbackTopics() []string {
	return []string{"diy", "art", "crafting", "tutorial", "woodworking"}
}

var topicsSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"topics": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type":        "STRING",
				"description": "A creative video topic or art style.",
			},
		},
	},
}

// Assistant wraps a TextGenerator with prompts and fallbacks. A nil
// generator puts it in stub mode.
type Assistant struct {
	gen TextGenerator
	log *logger.Logger
}

func NewAssistant(gen TextGenerator, log *logger.Logger) *Assistant {
	return &Assistant{gen: gen, log: log}
}

// Available reports whether a model is configured.
func (a *Assistant) Available() bool {
	return a.gen != nil
}

// SuggestTopics returns five topics for interests. On failure it returns
// FallbackTopics together with the error that caused the fallback.
func (a *Assistant) SuggestTopics(ctx context.Context, interests string) ([]string, error) {
	if a.gen == nil {
		metrics.RecordAIRequest("topics", true)
		return FallbackTopics(), ErrUnavailable
	}

	prompt := fmt.Sprintf("Based on the following user interests, generate a list of 5 specific and relevant creative video topics or art styles they might enjoy watching. User interests: %q", interests)
	raw, err := a.gen.GenerateJSON(ctx, prompt, topicsSchema)
	if err != nil {
		a.warn("topic suggestion failed: %v", err)
		metrics.RecordAIRequest("topics", true)
		return FallbackTopics(), err
	}

	topics, err := parseTopics(raw)
	if err != nil {
		a.warn("topic suggestion returned malformed JSON: %v", err)
		metrics.RecordAIRequest("topics", true)
		return FallbackTopics(), err
	}
	metrics.RecordAIRequest("topics", false)
	return topics, nil
}

// Highlights returns a markdown bullet summary, or a sentinel message when
// the model cannot be used. It never fails.
func (a *Assistant) Highlights(ctx context.Context, title, description string) string {
	if a.gen == nil {
		metrics.RecordAIRequest("highlights", true)
		return HighlightsUnavailableMsg
	}

	prompt := fmt.Sprintf("Based on the video title %q and description %q, generate a short, exciting summary of what the viewer can expect as a markdown bulleted list (using '*' for bullets). Start with a brief introductory sentence. Make it sound engaging for a creative audience.", title, description)
	text, err := a.gen.GenerateText(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		a.warn("highlight generation failed: %v", err)
		metrics.RecordAIRequest("highlights", true)
		return HighlightsFailedMsg
	}
	metrics.RecordAIRequest("highlights", false)
	return text
}

// IsSentinel reports whether text is one of the fallback highlight messages.
func IsSentinel(text string) bool {
	return text == HighlightsFailedMsg || text == HighlightsUnavailableMsg
}

// parseTopics accepts {"topics": [...]}. A document without a topics array
// yields an empty list.
func parseTopics(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return nil, err
	}
	var topics []string
	if msg, ok := doc["topics"]; ok {
		if err := json.Unmarshal(msg, &topics); err != nil {
			return []string{}, nil
		}
	}
	if topics == nil {
		topics = []string{}
	}
	return topics, nil
}

func (a *Assistant) warn(format string, v ...interface{}) {
	if a.log != nil {
		a.log.Warn(format, v...)
	}
}
