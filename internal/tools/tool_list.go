package tools

import (
	"encoding/json"

	"github.com/crystaldolphin/mailbridge/internal/schema"
)

// Definition is the catalog entry of one tool as published to callers.
type Definition struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	InputSchema map[string]any `json:"inputSchema" yaml:"inputSchema"`
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	list := make([]Definition, 0, len(r.order))
	for _, t := range r.Tools() {
		list = append(list, definitionOf(t))
	}
	return list
}

func definitionOf(t schema.Tool) Definition {
	var params map[string]any
	if err := json.Unmarshal(t.Parameters(), &params); err != nil || params == nil {
		params = map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return Definition{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: params,
	}
}
