package mail

import (
	"encoding/json"
	"testing"
)

func TestOperations_NamesAndOrder(t *testing.T) {
	want := []string{
		OpListAccounts, OpListMailboxes, OpListUnread, OpListRecent, OpGetMessage,
		OpSearchMessages, OpSendMessage, OpReplyMessage, OpMarkRead, OpMarkUnread,
		OpDeleteMessage, OpMoveMessage, OpUnreadCount, OpOpenApplication, OpCheckForNewMail,
	}
	ops := Operations()
	if len(ops) != len(want) {
		t.Fatalf("expected %d operations, got %d", len(want), len(ops))
	}
	for i, op := range ops {
		if op.Name != want[i] {
			t.Errorf("operation %d = %q, want %q", i, op.Name, want[i])
		}
		if op.Synthesize == nil || op.Format == nil {
			t.Errorf("%s: missing synthesizer or formatter", op.Name)
		}
		if op.Description == "" {
			t.Errorf("%s: empty description", op.Name)
		}
	}
}

func TestOperation_Parameters(t *testing.T) {
	op, ok := Find(OpSearchMessages)
	if !ok {
		t.Fatal("search-messages not found")
	}

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	if err := json.Unmarshal(op.Parameters(), &schema); err != nil {
		t.Fatalf("parameters are not valid JSON: %v", err)
	}
	if schema.Type != "object" {
		t.Errorf("type = %q", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("required = %v, want [query]", schema.Required)
	}
	scope := schema.Properties["searchScope"]
	if enum, _ := scope["enum"].([]any); len(enum) != 4 {
		t.Errorf("searchScope enum = %v", scope["enum"])
	}
	if limit := schema.Properties["limit"]; limit["default"] != float64(20) {
		t.Errorf("limit default = %v", limit["default"])
	}
}

func TestOperation_NoParams(t *testing.T) {
	op, _ := Find(OpListAccounts)
	var schema map[string]any
	if err := json.Unmarshal(op.Parameters(), &schema); err != nil {
		t.Fatal(err)
	}
	if req, _ := schema["required"].([]any); len(req) != 0 {
		t.Errorf("expected no required params, got %v", req)
	}
}

func TestFind_Unknown(t *testing.T) {
	if _, ok := Find("not-a-real-operation"); ok {
		t.Error("expected unknown operation to be absent")
	}
}
