// Package schema holds the contracts shared across mailbridge packages.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface every callable mail operation satisfies.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// ScriptRunner executes a generated automation script and returns its trimmed output.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}
