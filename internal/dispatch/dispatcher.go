// Package dispatch routes operation calls to their tools and normalizes
// every outcome into an Envelope.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crystaldolphin/mailbridge/internal/schema"
	"github.com/crystaldolphin/mailbridge/internal/shared/stringutils"
	"github.com/crystaldolphin/mailbridge/internal/tools"
)

// Call is one inbound operation call.
type Call struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Catalog is the read-only operation table the Dispatcher routes against.
type Catalog interface {
	GetTool(name string) schema.Tool
	Definitions() []tools.Definition
}

// Dispatcher holds no per-call state; concurrent Dispatch calls are independent.
type Dispatcher struct {
	catalog Catalog
}

// New returns a Dispatcher over catalog.
func New(catalog Catalog) *Dispatcher {
	return &Dispatcher{catalog: catalog}
}

// Operations returns the catalog as published to callers.
func (d *Dispatcher) Operations() []tools.Definition {
	return d.catalog.Definitions()
}

// Dispatch runs call and always returns an Envelope. Unknown names, tool
// errors and panics all become error envelopes.
func (d *Dispatcher) Dispatch(ctx context.Context, call Call) (env Envelope) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("dispatch: tool panicked", "tool", call.Name, "panic", r)
			env = Failure(fmt.Sprint(r))
		}
		logOutcome(call.Name, env, time.Since(start))
	}()

	tool := d.catalog.GetTool(call.Name)
	if tool == nil {
		return Failure("Unknown tool: " + call.Name)
	}

	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}

	out, err := tool.Execute(ctx, args)
	if err != nil {
		return Failure(err.Error())
	}
	return Success(out)
}

func logOutcome(name string, env Envelope, elapsed time.Duration) {
	if env.IsError {
		slog.Warn("dispatch: call failed", "tool", name, "duration", elapsed, "error", stringutils.Truncate(env.Text(), 200))
		return
	}
	slog.Info("dispatch: call finished", "tool", name, "duration", elapsed, "length", len(env.Text()))
}
