package tools

import "context"

// Executor defines the interface for executing a tool.
// Implementations must be thread-safe and respect context cancellation.
type Executor interface {
	// Execute runs the tool with the given input parameters.
	// The input map contains the tool-specific parameters as named in
	// the tool schema. The returned value must be JSON-serializable.
	Execute(ctx context.Context, input map[string]interface{}) (interface{}, error)
}
