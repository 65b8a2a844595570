package tools

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/crystaldolphin/mailbridge/internal/mail"
	"github.com/crystaldolphin/mailbridge/internal/schema"
)

// MailTool exposes one catalog operation as a schema.Tool. Each call
// synthesizes a fresh script, runs it once and formats the output.
type MailTool struct {
	op         mail.Operation
	runner     schema.ScriptRunner
	parameters json.RawMessage
}

// NewMailTool wraps op so that its scripts run through runner.
func NewMailTool(op mail.Operation, runner schema.ScriptRunner) *MailTool {
	return &MailTool{op: op, runner: runner, parameters: op.Parameters()}
}

func (t *MailTool) Name() string                { return t.op.Name }
func (t *MailTool) Description() string         { return t.op.Description }
func (t *MailTool) Parameters() json.RawMessage { return t.parameters }

// Execute returns synthesis errors (*mail.ArgumentError) and runner errors unchanged.
func (t *MailTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	args := mail.Args(params)

	src, err := t.op.Synthesize(args)
	if err != nil {
		return "", err
	}
	slog.Debug("tools: script synthesized", "tool", t.op.Name, "bytes", len(src))

	out, err := t.runner.Run(ctx, src)
	if err != nil {
		return "", err
	}
	return t.op.Format(out, args), nil
}

// Ensure MailTool implements schema.Tool at compile time.
var _ schema.Tool = (*MailTool)(nil)
