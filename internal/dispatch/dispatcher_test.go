package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crystaldolphin/mailbridge/internal/applescript"
	"github.com/crystaldolphin/mailbridge/internal/mail"
	"github.com/crystaldolphin/mailbridge/internal/schema"
	"github.com/crystaldolphin/mailbridge/internal/tools"
)

type stubRunner struct {
	out string
	err error
}

func (s stubRunner) Run(context.Context, string) (string, error) { return s.out, s.err }

type panicTool struct{ schema.Tool }

func (panicTool) Name() string { return "explode" }
func (panicTool) Execute(context.Context, map[string]any) (string, error) {
	panic("kaboom")
}

func newDispatcher(runner schema.ScriptRunner) *Dispatcher {
	return New(tools.NewMailRegistry(runner))
}

// minimalArgs satisfies the required parameters of every operation.
var minimalArgs = map[string]map[string]any{
	mail.OpGetMessage:     {"messageId": "1"},
	mail.OpSearchMessages: {"query": "q"},
	mail.OpSendMessage:    {"to": "a@example.com", "subject": "s", "body": "b"},
	mail.OpReplyMessage:   {"messageId": "1", "body": "b"},
	mail.OpMarkRead:       {"messageId": "1"},
	mail.OpMarkUnread:     {"messageId": "1"},
	mail.OpDeleteMessage:  {"messageId": "1"},
	mail.OpMoveMessage:    {"messageId": "1", "toMailbox": "Archive"},
}

func TestDispatch_EveryOperationReturnsEnvelope(t *testing.T) {
	d := newDispatcher(stubRunner{out: "ok"})
	for _, def := range d.Operations() {
		env := d.Dispatch(context.Background(), Call{Name: def.Name, Arguments: minimalArgs[def.Name]})
		if env.IsError {
			t.Errorf("%s: unexpected error envelope %q", def.Name, env.Text())
		}
		if len(env.Content) != 1 || env.Content[0].Type != ContentText {
			t.Errorf("%s: malformed envelope %+v", def.Name, env)
		}
	}
}

func TestDispatch_UnknownOperation(t *testing.T) {
	d := newDispatcher(stubRunner{})
	env := d.Dispatch(context.Background(), Call{Name: "not-a-real-operation", Arguments: map[string]any{}})

	if !env.IsError {
		t.Fatal("expected error envelope")
	}
	if len(env.Content) != 1 {
		t.Fatalf("expected one segment, got %d", len(env.Content))
	}
	if env.Text() != "Error: Unknown tool: not-a-real-operation" {
		t.Errorf("unexpected text %q", env.Text())
	}
}

func TestDispatch_SynthesisErrorIsEnvelope(t *testing.T) {
	d := newDispatcher(stubRunner{out: "never"})
	env := d.Dispatch(context.Background(), Call{Name: mail.OpMarkRead, Arguments: map[string]any{"messageId": "all"}})
	if !env.IsError {
		t.Fatal("expected error envelope")
	}
	if !strings.HasPrefix(env.Text(), "Error: mailbox and account are required") {
		t.Errorf("unexpected text %q", env.Text())
	}
}

func TestDispatch_PanicIsEnvelope(t *testing.T) {
	d := New(tools.NewRegistryBuilder().WithTool(panicTool{}).Build())
	env := d.Dispatch(context.Background(), Call{Name: "explode"})
	if !env.IsError || env.Text() != "Error: kaboom" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestDispatch_NilArguments(t *testing.T) {
	d := newDispatcher(stubRunner{out: "Work: 3 unread\nTotal: 3 unread"})
	env := d.Dispatch(context.Background(), Call{Name: mail.OpUnreadCount})
	if env.IsError || env.Text() != "Work: 3 unread\nTotal: 3 unread" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

// ─── End-to-end through the real executor ──────────────────────────────────

func stubInterpreter(t *testing.T, body string) (*Dispatcher, string) {
	t.Helper()
	dir := t.TempDir()
	interp := filepath.Join(dir, "osascript")
	if err := os.WriteFile(interp, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	staging := filepath.Join(dir, "staging")
	runner := applescript.NewRunner(applescript.Options{Interpreter: interp, StagingDir: staging})
	return newDispatcher(runner), staging
}

func TestEndToEnd_ListAccounts(t *testing.T) {
	d, _ := stubInterpreter(t, `printf 'Work (5 mailboxes)\nPersonal (3 mailboxes)\n'`)

	env := d.Dispatch(context.Background(), Call{Name: mail.OpListAccounts})
	if env.IsError {
		t.Fatalf("unexpected error: %s", env.Text())
	}
	text := env.Text()
	if !strings.HasPrefix(text, "Mail Accounts:") {
		t.Errorf("missing header in %q", text)
	}
	for _, line := range []string{"Work (5 mailboxes)", "Personal (3 mailboxes)"} {
		if !strings.Contains(text, line) {
			t.Errorf("missing %q in %q", line, text)
		}
	}
}

func TestEndToEnd_GetMessageNotFound(t *testing.T) {
	d, _ := stubInterpreter(t, `echo "Message not found: 12345"`)

	env := d.Dispatch(context.Background(), Call{Name: mail.OpGetMessage, Arguments: map[string]any{"messageId": "12345"}})
	if env.IsError {
		t.Fatal("not-found is a successful outcome")
	}
	if env.Text() != "Message not found: 12345" {
		t.Errorf("unexpected text %q", env.Text())
	}
}

func TestEndToEnd_InterpreterFailure(t *testing.T) {
	d, staging := stubInterpreter(t, `echo "Application not found" >&2; exit 1`)

	for _, def := range d.Operations() {
		env := d.Dispatch(context.Background(), Call{Name: def.Name, Arguments: minimalArgs[def.Name]})
		if !env.IsError {
			t.Errorf("%s: expected error envelope", def.Name)
			continue
		}
		if env.Text() != "Error: AppleScript error: Application not found" {
			t.Errorf("%s: unexpected text %q", def.Name, env.Text())
		}
	}

	entries, err := os.ReadDir(staging)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if applescript.IsStagedScript(e.Name()) {
			t.Errorf("staged script left behind: %s", e.Name())
		}
	}
}

func TestEnvelope(t *testing.T) {
	ok := Success("done")
	if ok.IsError || ok.Text() != "done" || ok.Content[0].Type != "text" {
		t.Errorf("unexpected success envelope %+v", ok)
	}
	bad := Failure("boom")
	if !bad.IsError || bad.Text() != "Error: boom" {
		t.Errorf("unexpected failure envelope %+v", bad)
	}
	if (Envelope{}).Text() != "" {
		t.Error("empty envelope should have empty text")
	}
}
