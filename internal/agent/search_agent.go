package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
)

// messageCreator is the slice of the Anthropic SDK the agents use.
// anthropic.Client.Messages satisfies it; tests substitute a fake.
type messageCreator interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// SearchAgent extracts search criteria from a natural-language query,
// calls the search_businesses tool, and reports the results verbatim.
type SearchAgent struct {
	messages messageCreator
	registry *tools.Registry
	model    string
	profile  GenerationProfile
	logger   *slog.Logger
}

// NewSearchAgent creates a search agent backed by the given Anthropic
// client and tool registry.
func NewSearchAgent(client *anthropic.Client, registry *tools.Registry, model string, profile GenerationProfile, logger *slog.Logger) *SearchAgent {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchAgent{
		messages: &client.Messages,
		registry: registry,
		model:    model,
		profile:  profile,
		logger:   logger,
	}
}

// Run drives the tool-use loop for one query: send the conversation,
// execute any requested tool calls, feed results back, and repeat
// until the model stops requesting tools. Returns the agent's final
// text report.
func (a *SearchAgent) Run(ctx context.Context, query string) (string, error) {
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(query)),
	}

	for iteration := 0; iteration < a.profile.MaxToolIterations; iteration++ {
		message, err := a.messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(a.model),
			MaxTokens:   int64(a.profile.MaxTokens),
			Temperature: anthropic.Float(a.profile.Temperature),
			TopP:        anthropic.Float(a.profile.TopP),
			System: []anthropic.TextBlockParam{
				{Type: "text", Text: SearchAgentPrompt},
			},
			Messages: messages,
			Tools: []anthropic.ToolUnionParam{
				{OfTool: &toolParam},
			},
		})
		if err != nil {
			return "", fmt.Errorf("search agent call failed: %w", err)
		}

		text, calls, assistantBlocks := splitContent(message)

		if message.StopReason != anthropic.StopReasonToolUse {
			a.logger.Debug("search agent finished",
				"iterations", iteration+1,
				"report_len", len(text),
			)
			return text, nil
		}

		if len(calls) == 0 {
			return "", fmt.Errorf("search agent stopped for tool use without tool calls")
		}

		a.logger.Info("search agent requested tools", "calls", len(calls))
		results := a.registry.ExecuteParallel(ctx, calls)

		messages = append(messages, anthropic.NewAssistantMessage(assistantBlocks...))
		messages = append(messages, anthropic.NewUserMessage(toolResultBlocks(results)...))
	}

	return "", fmt.Errorf("search agent exceeded %d tool iterations", a.profile.MaxToolIterations)
}

var toolParam = searchToolParam()

// splitContent separates a model message into its text, the tool
// calls it requested, and parameter blocks echoing the assistant turn
// back into the conversation.
func splitContent(message *anthropic.Message) (string, []tools.Call, []anthropic.ContentBlockParamUnion) {
	var text strings.Builder
	var calls []tools.Call
	var blocks []anthropic.ContentBlockParamUnion

	for _, block := range message.Content {
		switch block.Type {
		case "text":
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(block.Text)
			blocks = append(blocks, anthropic.NewTextBlock(block.Text))

		case "tool_use":
			var input map[string]interface{}
			if err := json.Unmarshal(block.Input, &input); err != nil {
				input = map[string]interface{}{}
			}
			calls = append(calls, tools.Call{
				ID:    block.ID,
				Name:  block.Name,
				Input: input,
			})
			blocks = append(blocks, anthropic.ContentBlockParamUnion{
				OfToolUse: &anthropic.ToolUseBlockParam{
					ID:    block.ID,
					Name:  block.Name,
					Input: block.Input,
				},
			})
		}
	}

	return text.String(), calls, blocks
}

// toolResultBlocks renders execution results as tool_result content.
// Tool payloads are JSON so the model sees exactly what a direct API
// caller would.
func toolResultBlocks(results []tools.Result) []anthropic.ContentBlockParamUnion {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(results))
	for _, result := range results {
		content := ""
		isError := result.IsError
		if isError {
			content = result.Error.Error()
		} else if encoded, err := json.Marshal(result.Result); err != nil {
			content = fmt.Sprintf("failed to encode tool result: %v", err)
			isError = true
		} else {
			content = string(encoded)
		}

		blocks = append(blocks, anthropic.ContentBlockParamUnion{
			OfToolResult: &anthropic.ToolResultBlockParam{
				ToolUseID: result.ID,
				IsError:   anthropic.Bool(isError),
				Content: []anthropic.ToolResultBlockParamContentUnion{
					{OfText: &anthropic.TextBlockParam{Text: content}},
				},
			},
		})
	}
	return blocks
}
