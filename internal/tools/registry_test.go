package tools

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/crystaldolphin/mailbridge/internal/mail"
)

type recordingRunner struct {
	mu      sync.Mutex
	scripts []string
	out     string
	err     error
}

func (r *recordingRunner) Run(_ context.Context, script string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scripts = append(r.scripts, script)
	return r.out, r.err
}

func TestNewMailRegistry_CatalogOrder(t *testing.T) {
	reg := NewMailRegistry(&recordingRunner{})

	ops := mail.Operations()
	if reg.Len() != len(ops) {
		t.Fatalf("expected %d tools, got %d", len(ops), reg.Len())
	}
	defs := reg.Definitions()
	for i, op := range ops {
		if defs[i].Name != op.Name {
			t.Errorf("definition %d = %q, want %q", i, defs[i].Name, op.Name)
		}
		if defs[i].InputSchema["type"] != "object" {
			t.Errorf("%s: input schema type = %v", op.Name, defs[i].InputSchema["type"])
		}
		if reg.GetTool(op.Name) == nil {
			t.Errorf("%s: not retrievable by name", op.Name)
		}
	}
	if reg.GetTool("nope") != nil {
		t.Error("expected nil for unknown tool")
	}
}

func TestRegistryBuilder_ReplaceKeepsPosition(t *testing.T) {
	runner := &recordingRunner{}
	ops := mail.Operations()
	replacement := NewMailTool(ops[0], runner)

	reg := NewRegistryBuilder().
		WithTool(NewMailTool(ops[0], runner)).
		WithTool(NewMailTool(ops[1], runner)).
		WithTool(replacement).
		Build()

	if reg.Len() != 2 {
		t.Fatalf("expected 2 tools, got %d", reg.Len())
	}
	if reg.Tools()[0] != replacement {
		t.Error("replacement should keep the original position")
	}
}

func TestMailTool_ExecuteRunsFreshScript(t *testing.T) {
	runner := &recordingRunner{out: "Work (5 mailboxes)"}
	reg := NewMailRegistry(runner)
	tool := reg.GetTool(mail.OpListMailboxes)

	for _, account := range []string{"Work", "Personal"} {
		if _, err := tool.Execute(context.Background(), map[string]any{"account": account}); err != nil {
			t.Fatalf("execute: %v", err)
		}
	}
	if len(runner.scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(runner.scripts))
	}
	if !strings.Contains(runner.scripts[0], `"Work"`) || !strings.Contains(runner.scripts[1], `"Personal"`) {
		t.Errorf("scripts not built per call:\n%s\n%s", runner.scripts[0], runner.scripts[1])
	}
}

func TestMailTool_SynthesisErrorSkipsRunner(t *testing.T) {
	runner := &recordingRunner{}
	tool := NewMailRegistry(runner).GetTool(mail.OpGetMessage)

	_, err := tool.Execute(context.Background(), map[string]any{})
	var argErr *mail.ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ArgumentError, got %v", err)
	}
	if len(runner.scripts) != 0 {
		t.Error("runner should not be called when synthesis fails")
	}
}

func TestMailTool_RunnerErrorPassesThrough(t *testing.T) {
	want := errors.New("AppleScript error: Application not found")
	tool := NewMailRegistry(&recordingRunner{err: want}).GetTool(mail.OpOpenApplication)

	if _, err := tool.Execute(context.Background(), nil); err != want {
		t.Fatalf("expected runner error unchanged, got %v", err)
	}
}
