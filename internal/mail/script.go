package mail

import (
	"fmt"
	"strings"
)

const (
	mailApp = "Mail"

	// blockSeparator terminates every message block in listing output.
	blockSeparator = "---"

	defaultMailbox = "INBOX"
	defaultLimit   = 20
)

// quote renders s as an AppleScript string literal. Backslashes and double
// quotes are escaped so the value can never close its literal early.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// script accumulates AppleScript source with block indentation.
type script struct {
	b     strings.Builder
	depth int
}

func (s *script) line(format string, args ...any) {
	s.b.WriteString(strings.Repeat("    ", s.depth))
	if len(args) == 0 {
		s.b.WriteString(format)
	} else {
		fmt.Fprintf(&s.b, format, args...)
	}
	s.b.WriteByte('\n')
}

// open writes a block header and indents what follows.
func (s *script) open(format string, args ...any) {
	s.line(format, args...)
	s.depth++
}

// close dedents and writes the block terminator.
func (s *script) close(terminator string) {
	if s.depth > 0 {
		s.depth--
	}
	s.line(terminator)
}

// clause writes a mid-block keyword such as "on error" or "else" at the
// level of the enclosing block header.
func (s *script) clause(keyword string) {
	s.depth--
	s.line(keyword)
	s.depth++
}

func (s *script) String() string { return s.b.String() }

func newScript() *script {
	s := &script{}
	s.open("tell application %s", quote(mailApp))
	return s
}

// finish closes the outer tell block and returns the source.
func (s *script) finish() string {
	s.close("end tell")
	return s.String()
}

// scopeAccounts binds targetAccounts. With an account name the binding is
// a name-equality filter over every account; without one it is every account.
func (s *script) scopeAccounts(account string) {
	if account == "" {
		s.line("set targetAccounts to every account")
		return
	}
	s.line("set targetAccounts to {}")
	s.open("repeat with acc in every account")
	s.line("if name of acc is %s then set end of targetAccounts to acc", quote(account))
	s.close("end repeat")
}

// appendMessageBlock appends one summary block for msg to output.
func (s *script) appendMessageBlock(withMailbox bool) {
	fields := []string{
		`"ID: " & (id of msg)`,
		`"From: " & (sender of msg)`,
		`"Subject: " & (subject of msg)`,
		`"Date: " & ((date received of msg) as string)`,
		`"Read: " & (read status of msg)`,
		`"Account: " & (name of acc)`,
	}
	if withMailbox {
		fields = append(fields, `"Mailbox: " & (name of mb)`)
	}
	fields = append(fields, quote(blockSeparator))
	s.line("set output to output & %s & linefeed", strings.Join(fields, " & linefeed & "))
}

// boundedAppend adds a message block only while fewer than limit blocks
// have been collected. Iteration continues past the limit; the interface
// has no take-N primitive.
func (s *script) boundedAppend(limit int, withMailbox bool) {
	s.open("if resultCount < %d then", limit)
	s.appendMessageBlock(withMailbox)
	s.line("set resultCount to resultCount + 1")
	s.close("end if")
}

// findMessage walks every mailbox of every account looking for id. A lookup
// that fails inside one mailbox is swallowed and the walk moves on. found
// runs with msg, mb and acc bound and must return.
func (s *script) findMessage(id string, found func(*script)) {
	s.open("repeat with acc in every account")
	s.open("repeat with mb in mailboxes of acc")
	s.open("try")
	s.line("set msg to first message of mb whose id is %s", id)
	found(s)
	s.close("end try")
	s.close("end repeat")
	s.close("end repeat")
	s.line("return %s", quote("Message not found: "+id))
}

// recipientList joins the addresses of a recipient class into recipientText.
func (s *script) recipientList(class string) {
	s.line(`set recipientText to ""`)
	s.open("repeat with r in %s recipients of msg", class)
	s.line(`if recipientText is not "" then set recipientText to recipientText & ", "`)
	s.line("set recipientText to recipientText & (address of r)")
	s.close("end repeat")
}
