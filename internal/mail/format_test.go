package mail

import (
	"fmt"
	"strings"
	"testing"
)

func blocks(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "ID: %d\nFrom: someone@example.com\nSubject: Message %d\n---\n", i, i)
	}
	return strings.TrimRight(b.String(), "\n")
}

func TestSplitBlocks(t *testing.T) {
	got := SplitBlocks(blocks(3))
	if len(got) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %q", len(got), got)
	}
	if !strings.HasPrefix(got[1], "ID: 2") {
		t.Errorf("unexpected second block %q", got[1])
	}
	if len(SplitBlocks("")) != 0 {
		t.Error("expected no blocks for empty output")
	}
}

func TestMessageBlocks_NeverExceedLimit(t *testing.T) {
	op, _ := Find(OpListUnread)
	for _, n := range []int{0, 1, 5, 20} {
		out := op.Format(blocks(30), Args{"limit": float64(n)})
		got := strings.Count(out, "ID: ")
		if got > n {
			t.Errorf("limit %d: got %d blocks", n, got)
		}
		if n > 0 && got != n {
			t.Errorf("limit %d: expected exactly %d blocks from 30, got %d", n, n, got)
		}
	}
}

func TestMessageBlocks_Empty(t *testing.T) {
	op, _ := Find(OpSearchMessages)
	if got := op.Format("", Args{}); got != "No matching messages found." {
		t.Errorf("unexpected empty text %q", got)
	}
}

func TestListAccountsFormat(t *testing.T) {
	op, _ := Find(OpListAccounts)
	got := op.Format("Work (5 mailboxes)\nPersonal (3 mailboxes)", nil)
	if !strings.HasPrefix(got, "Mail Accounts:") {
		t.Errorf("missing header: %q", got)
	}
	for _, line := range []string{"Work (5 mailboxes)", "Personal (3 mailboxes)"} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q in %q", line, got)
		}
	}
	if got := op.Format("", nil); got != "No mail accounts found." {
		t.Errorf("unexpected empty text %q", got)
	}
}

func TestVerbatimFormat(t *testing.T) {
	op, _ := Find(OpGetMessage)
	const text = "Message not found: 12345"
	if got := op.Format(text, Args{"messageId": "12345"}); got != text {
		t.Errorf("got %q, want %q", got, text)
	}
}
