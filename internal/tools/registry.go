package tools

import (
	"context"
	"fmt"
	"sync"
)

// Call represents a single tool invocation request.
type Call struct {
	ID    string                 `json:"id"`    // tool_use_id from the model
	Name  string                 `json:"name"`  // tool name
	Input map[string]interface{} `json:"input"` // tool parameters
}

// Result represents the outcome of a tool execution.
type Result struct {
	ID      string      `json:"id"`       // tool_use_id (matches Call.ID)
	Name    string      `json:"name"`     // tool name (matches Call.Name)
	Result  interface{} `json:"result"`   // execution result (nil if error)
	Error   error       `json:"error"`    // execution error (nil if success)
	IsError bool        `json:"is_error"` // whether execution failed
}

// Registry manages tool executors and handles tool execution.
// It is thread-safe and can be used concurrently.
type Registry struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// Register adds a tool executor to the registry.
// If a tool with the same name already exists, it is replaced.
func (r *Registry) Register(name string, executor Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executors[name] = executor
}

// Get retrieves a tool executor by name.
// Returns nil if the tool is not registered.
func (r *Registry) Get(name string) Executor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.executors[name]
}

// Execute runs a single tool and returns the result. An unknown tool
// name yields an error result, never a panic.
func (r *Registry) Execute(ctx context.Context, call Call) Result {
	executor := r.Get(call.Name)
	if executor == nil {
		return Result{
			ID:      call.ID,
			Name:    call.Name,
			Error:   fmt.Errorf("tool not found: %s", call.Name),
			IsError: true,
		}
	}

	result, err := executor.Execute(ctx, call.Input)
	if err != nil {
		return Result{
			ID:      call.ID,
			Name:    call.Name,
			Error:   err,
			IsError: true,
		}
	}

	return Result{
		ID:     call.ID,
		Name:   call.Name,
		Result: result,
	}
}

// ExecuteParallel runs multiple tools concurrently and returns results
// in call order. Context cancellation stops pending executions.
func (r *Registry) ExecuteParallel(ctx context.Context, calls []Call) []Result {
	if len(calls) == 0 {
		return []Result{}
	}

	results := make([]Result, len(calls))
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(index int, toolCall Call) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[index] = Result{
					ID:      toolCall.ID,
					Name:    toolCall.Name,
					Error:   ctx.Err(),
					IsError: true,
				}
				return
			default:
			}

			results[index] = r.Execute(ctx, toolCall)
		}(i, call)
	}

	wg.Wait()
	return results
}
