package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// RecommendationAgent ranks and explains venues from a search report.
// It has no tools; the report is injected into its system prompt.
type RecommendationAgent struct {
	messages messageCreator
	model    string
	profile  GenerationProfile
	logger   *slog.Logger
}

// NewRecommendationAgent creates a recommendation agent backed by the
// given Anthropic client.
func NewRecommendationAgent(client *anthropic.Client, model string, profile GenerationProfile, logger *slog.Logger) *RecommendationAgent {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecommendationAgent{
		messages: &client.Messages,
		model:    model,
		profile:  profile,
		logger:   logger,
	}
}

// Run produces recommendations for the original query given the
// search agent's report.
func (a *RecommendationAgent) Run(ctx context.Context, query, searchReport string) (string, error) {
	system := strings.Replace(RecommendationAgentPrompt, SearchResultsPlaceholder, searchReport, 1)

	message, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(a.profile.MaxTokens),
		Temperature: anthropic.Float(a.profile.Temperature),
		TopP:        anthropic.Float(a.profile.TopP),
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("recommendation agent call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("recommendation agent returned no text")
	}

	a.logger.Debug("recommendation agent finished", "recommendation_len", text.Len())
	return text.String(), nil
}
