package tools

import (
	"github.com/crystaldolphin/mailbridge/internal/mail"
	"github.com/crystaldolphin/mailbridge/internal/schema"
)

// Registry holds a fixed, ordered set of named tools. It is read-only once built.
type Registry struct {
	tools map[string]schema.Tool
	order []string
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name string) schema.Tool {
	return r.tools[name]
}

// Tools returns every tool in registration order.
func (r *Registry) Tools() []schema.Tool {
	list := make([]schema.Tool, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.tools[name])
	}
	return list
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// NewMailRegistry registers every catalog operation, in catalog order,
// backed by runner.
func NewMailRegistry(runner schema.ScriptRunner) *Registry {
	b := NewRegistryBuilder()
	for _, op := range mail.Operations() {
		b.WithTool(NewMailTool(op, runner))
	}
	return b.Build()
}
