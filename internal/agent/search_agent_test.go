package agent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/DanielTsiang/venue-recommendation-agent/internal/tools"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedMessages replays a fixed sequence of responses and records
// every request it receives.
type scriptedMessages struct {
	responses []*anthropic.Message
	err       error
	requests  []anthropic.MessageNewParams
}

func (s *scriptedMessages) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	s.requests = append(s.requests, params)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.responses) == 0 {
		return nil, errors.New("no scripted responses left")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func textMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
		StopReason: anthropic.StopReasonEndTurn,
	}
}

func toolUseMessage(id, name string, input map[string]interface{}) *anthropic.Message {
	raw, _ := json.Marshal(input)
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: "Let me search for that."},
			{Type: "tool_use", ID: id, Name: name, Input: raw},
		},
		StopReason: anthropic.StopReasonToolUse,
	}
}

// recordingTool captures the inputs it is executed with.
type recordingTool struct {
	inputs []map[string]interface{}
	result interface{}
	err    error
}

func (t *recordingTool) Execute(_ context.Context, input map[string]interface{}) (interface{}, error) {
	t.inputs = append(t.inputs, input)
	return t.result, t.err
}

func newTestSearchAgent(messages messageCreator, registry *tools.Registry) *SearchAgent {
	return &SearchAgent{
		messages: messages,
		registry: registry,
		model:    "claude-sonnet-4-20250514",
		profile: GenerationProfile{
			Temperature:       0.3,
			TopP:              0.9,
			MaxTokens:         1024,
			MaxToolIterations: 5,
		},
		logger: testLogger(),
	}
}

func TestSearchAgentToolLoop(t *testing.T) {
	messages := &scriptedMessages{
		responses: []*anthropic.Message{
			toolUseMessage("toolu_01", tools.SearchBusinessesToolName, map[string]interface{}{
				"location": "London",
				"term":     "pizza",
			}),
			textMessage("1. Joe's Pizza - 4.5 stars"),
		},
	}

	tool := &recordingTool{result: map[string]interface{}{"summary": "Found 1 businesses"}}
	registry := tools.NewRegistry()
	registry.Register(tools.SearchBusinessesToolName, tool)

	agent := newTestSearchAgent(messages, registry)

	report, err := agent.Run(context.Background(), "pizza in London")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report != "1. Joe's Pizza - 4.5 stars" {
		t.Errorf("report = %q", report)
	}

	if len(tool.inputs) != 1 {
		t.Fatalf("tool executed %d times, want 1", len(tool.inputs))
	}
	if tool.inputs[0]["location"] != "London" {
		t.Errorf("tool location = %v, want London", tool.inputs[0]["location"])
	}

	if len(messages.requests) != 2 {
		t.Fatalf("API called %d times, want 2", len(messages.requests))
	}

	// Second request must carry the assistant turn and the tool result.
	second := messages.requests[1]
	if len(second.Messages) != 3 {
		t.Fatalf("second request has %d messages, want 3", len(second.Messages))
	}
	if second.Messages[1].Role != anthropic.MessageParamRoleAssistant {
		t.Errorf("message 1 role = %v, want assistant", second.Messages[1].Role)
	}
	toolResult := second.Messages[2].Content[0].OfToolResult
	if toolResult == nil {
		t.Fatal("message 2 should contain a tool_result block")
	}
	if toolResult.ToolUseID != "toolu_01" {
		t.Errorf("tool_use_id = %q, want toolu_01", toolResult.ToolUseID)
	}
	if !strings.Contains(toolResult.Content[0].OfText.Text, "Found 1 businesses") {
		t.Errorf("tool result content = %q", toolResult.Content[0].OfText.Text)
	}
}

func TestSearchAgentNoToolUse(t *testing.T) {
	messages := &scriptedMessages{
		responses: []*anthropic.Message{
			textMessage("I need a location to search."),
		},
	}

	agent := newTestSearchAgent(messages, tools.NewRegistry())

	report, err := agent.Run(context.Background(), "find me food")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report != "I need a location to search." {
		t.Errorf("report = %q", report)
	}
	if len(messages.requests) != 1 {
		t.Errorf("API called %d times, want 1", len(messages.requests))
	}
}

func TestSearchAgentIterationLimit(t *testing.T) {
	loop := toolUseMessage("toolu_01", tools.SearchBusinessesToolName, map[string]interface{}{"location": "London"})
	messages := &scriptedMessages{
		responses: []*anthropic.Message{loop, loop, loop, loop, loop},
	}

	tool := &recordingTool{result: map[string]interface{}{"summary": "Found 0 businesses"}}
	registry := tools.NewRegistry()
	registry.Register(tools.SearchBusinessesToolName, tool)

	agent := newTestSearchAgent(messages, registry)
	agent.profile.MaxToolIterations = 3

	if _, err := agent.Run(context.Background(), "pizza"); err == nil {
		t.Fatal("Run() should fail when the iteration budget is exhausted")
	}
	if len(messages.requests) != 3 {
		t.Errorf("API called %d times, want 3", len(messages.requests))
	}
}

func TestSearchAgentAPIError(t *testing.T) {
	messages := &scriptedMessages{err: errors.New("boom")}
	agent := newTestSearchAgent(messages, tools.NewRegistry())

	if _, err := agent.Run(context.Background(), "pizza"); err == nil {
		t.Fatal("Run() should propagate API errors")
	}
}

func TestSearchAgentToolErrorFedBack(t *testing.T) {
	messages := &scriptedMessages{
		responses: []*anthropic.Message{
			toolUseMessage("toolu_01", "unknown_tool", map[string]interface{}{}),
			textMessage("The tool is unavailable."),
		},
	}

	agent := newTestSearchAgent(messages, tools.NewRegistry())

	report, err := agent.Run(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report != "The tool is unavailable." {
		t.Errorf("report = %q", report)
	}

	second := messages.requests[1]
	toolResult := second.Messages[2].Content[0].OfToolResult
	if toolResult == nil {
		t.Fatal("tool error should still produce a tool_result block")
	}
	if !toolResult.IsError.Value {
		t.Error("tool_result should be flagged as an error")
	}
}
