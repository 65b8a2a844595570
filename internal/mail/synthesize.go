package mail

import (
	"fmt"
	"strings"
)

// Synthesizer turns the arguments of one call into AppleScript source.
type Synthesizer func(args Args) (string, error)

func listAccountsScript(Args) (string, error) {
	s := newScript()
	s.line(`set output to ""`)
	s.open("repeat with acc in every account")
	s.line(`set output to output & (name of acc) & " (" & (count of mailboxes of acc) & " mailboxes)" & linefeed`)
	s.close("end repeat")
	s.line("return output")
	return s.finish(), nil
}

func listMailboxesScript(args Args) (string, error) {
	s := newScript()
	s.line(`set output to ""`)
	s.scopeAccounts(args.String("account", ""))
	s.open("repeat with acc in targetAccounts")
	s.line(`set output to output & "Account: " & (name of acc) & linefeed`)
	s.open("repeat with mb in mailboxes of acc")
	s.line(`set output to output & "  - " & (name of mb) & " (" & (unread count of mb) & " unread)" & linefeed`)
	s.close("end repeat")
	s.close("end repeat")
	s.line("return output")
	return s.finish(), nil
}

func listUnreadScript(args Args) (string, error) {
	return mailboxListing(args, "(messages of mb whose read status is false)"), nil
}

func listRecentScript(args Args) (string, error) {
	return mailboxListing(args, "messages of mb"), nil
}

// mailboxListing scans one named mailbox in each target account and collects
// at most limit message blocks from source.
func mailboxListing(args Args, source string) string {
	mailbox := args.String("mailbox", defaultMailbox)
	limit := args.Int("limit", defaultLimit)

	s := newScript()
	s.line(`set output to ""`)
	s.line("set resultCount to 0")
	s.scopeAccounts(args.String("account", ""))
	s.open("repeat with acc in targetAccounts")
	s.open("try")
	s.line("set mb to mailbox %s of acc", quote(mailbox))
	s.open("repeat with msg in %s", source)
	s.boundedAppend(limit, false)
	s.close("end repeat")
	s.close("end try")
	s.close("end repeat")
	s.line("return output")
	return s.finish()
}

func getMessageScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}

	s := newScript()
	s.findMessage(id, func(s *script) {
		s.recipientList("to")
		s.line(`set output to "ID: " & (id of msg) & linefeed`)
		s.line(`set output to output & "From: " & (sender of msg) & linefeed`)
		s.line(`set output to output & "To: " & recipientText & linefeed`)
		s.line(`set output to output & "Subject: " & (subject of msg) & linefeed`)
		s.line(`set output to output & "Date: " & ((date received of msg) as string) & linefeed`)
		s.line(`set output to output & "Read: " & (read status of msg) & linefeed`)
		s.line(`set output to output & "Account: " & (name of acc) & linefeed`)
		s.line(`set output to output & "Mailbox: " & (name of mb) & linefeed & linefeed`)
		s.line("set output to output & (content of msg)")
		s.line("return output")
	})
	return s.finish(), nil
}

// Search scopes and the message fields each one probes.
const (
	ScopeSubject = "subject"
	ScopeSender  = "sender"
	ScopeContent = "content"
	ScopeAll     = "all"
)

var searchFields = map[string][]string{
	ScopeSubject: {"subject"},
	ScopeSender:  {"sender"},
	ScopeContent: {"content"},
	ScopeAll:     {"subject", "sender"},
}

func searchMessagesScript(args Args) (string, error) {
	query, err := args.RequireString("query")
	if err != nil {
		return "", err
	}
	scope := args.String("searchScope", ScopeAll)
	fields, ok := searchFields[scope]
	if !ok {
		return "", &ArgumentError{Param: "searchScope", Reason: fmt.Sprintf("must be one of subject, sender, content, all (got %q)", scope)}
	}
	limit := args.Int("limit", defaultLimit)

	s := newScript()
	s.line(`set output to ""`)
	s.line("set resultCount to 0")
	s.scopeAccounts(args.String("account", ""))
	s.open("repeat with acc in targetAccounts")
	s.open("repeat with mb in mailboxes of acc")
	s.open("try")
	s.open("repeat with msg in messages of mb")
	s.open("if resultCount < %d then", limit)
	s.line("set isMatch to false")
	for _, field := range fields {
		s.open("try")
		s.line("if %s of msg contains %s then set isMatch to true", field, quote(query))
		s.close("end try")
	}
	s.open("if isMatch then")
	s.appendMessageBlock(true)
	s.line("set resultCount to resultCount + 1")
	s.close("end if")
	s.close("end if")
	s.close("end repeat")
	s.close("end try")
	s.close("end repeat")
	s.close("end repeat")
	s.line("return output")
	return s.finish(), nil
}

func sendMessageScript(args Args) (string, error) {
	to := args.List("to")
	if len(to) == 0 {
		return "", missing("to")
	}
	subject, err := args.RequireString("subject")
	if err != nil {
		return "", err
	}
	body, err := args.RequireString("body")
	if err != nil {
		return "", err
	}

	s := newScript()
	s.line("set newMessage to make new outgoing message with properties {subject:%s, content:%s, visible:false}", quote(subject), quote(body))
	s.open("tell newMessage")
	for _, class := range []struct {
		name  string
		addrs []string
	}{
		{"to", to},
		{"cc", args.List("cc")},
		{"bcc", args.List("bcc")},
	} {
		for _, addr := range class.addrs {
			s.line("make new %[1]s recipient at end of %[1]s recipients with properties {address:%[2]s}", class.name, quote(addr))
		}
	}
	s.line("send")
	s.close("end tell")
	s.line("return %s", quote("Message sent to "+strings.Join(to, ", ")))
	return s.finish(), nil
}

func replyMessageScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}
	body, err := args.RequireString("body")
	if err != nil {
		return "", err
	}
	replyAll := args.Bool("replyAll", false)

	s := newScript()
	s.findMessage(id, func(s *script) {
		if replyAll {
			s.line("set replyMessage to reply msg with reply to all without opening window")
		} else {
			s.line("set replyMessage to reply msg without opening window")
		}
		s.line("set content of replyMessage to %s", quote(body))
		s.line("send replyMessage")
		s.line("return %s", quote("Reply sent for message "+id))
	})
	return s.finish(), nil
}

func markReadScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}
	mailbox := args.String("mailbox", "")
	account := args.String("account", "")
	if id == "all" && mailbox != "" && account != "" {
		return markMailboxReadScript(account, mailbox), nil
	}
	return markSingleReadScript(id)
}

// markSingleReadScript handles one identifier. The bulk form only applies
// with both mailbox and account, so a bare "all" cannot be honoured here.
func markSingleReadScript(id string) (string, error) {
	if id == "all" {
		return "", &ArgumentError{Param: "mailbox and account", Reason: `are required when messageId is "all"`}
	}
	return setReadStatusScript(id, true), nil
}

// markMailboxReadScript marks every unread message of one mailbox as read.
func markMailboxReadScript(account, mailbox string) string {
	s := newScript()
	s.open("try")
	s.line("set mb to mailbox %s of account %s", quote(mailbox), quote(account))
	s.clause("on error")
	s.line("return %s", quote("Mailbox not found: "+mailbox))
	s.close("end try")
	s.line("set unreadMessages to (messages of mb whose read status is false)")
	s.line("set markedCount to count of unreadMessages")
	s.open("repeat with msg in unreadMessages")
	s.line("set read status of msg to true")
	s.close("end repeat")
	s.line(`return "Marked " & markedCount & " messages as read in " & %s`, quote(account+"/"+mailbox))
	return s.finish()
}

func markUnreadScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}
	return setReadStatusScript(id, false), nil
}

func setReadStatusScript(id string, read bool) string {
	state := "unread"
	if read {
		state = "read"
	}
	s := newScript()
	s.findMessage(id, func(s *script) {
		s.line("set read status of msg to %t", read)
		s.line("return %s", quote("Marked message "+id+" as "+state))
	})
	return s.finish()
}

func deleteMessageScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}
	s := newScript()
	s.findMessage(id, func(s *script) {
		s.line("delete msg")
		s.line("return %s", quote("Deleted message "+id))
	})
	return s.finish(), nil
}

// moveMessageScript resolves the destination mailbox first and returns
// before touching the source message when it cannot be found.
func moveMessageScript(args Args) (string, error) {
	id, err := args.RequireString("messageId")
	if err != nil {
		return "", err
	}
	toMailbox, err := args.RequireString("toMailbox")
	if err != nil {
		return "", err
	}

	s := newScript()
	s.line("set destMailbox to missing value")
	s.scopeAccounts(args.String("toAccount", ""))
	s.open("repeat with acc in targetAccounts")
	s.open("try")
	s.line("set destMailbox to mailbox %s of acc", quote(toMailbox))
	s.line("exit repeat")
	s.close("end try")
	s.close("end repeat")
	s.line("if destMailbox is missing value then return %s", quote("Mailbox not found: "+toMailbox))
	s.findMessage(id, func(s *script) {
		s.line("move msg to destMailbox")
		s.line("return %s", quote("Moved message "+id+" to "+toMailbox))
	})
	return s.finish(), nil
}

func unreadCountScript(args Args) (string, error) {
	s := newScript()
	s.line(`set output to ""`)
	s.line("set totalUnread to 0")
	s.scopeAccounts(args.String("account", ""))
	s.open("repeat with acc in targetAccounts")
	s.line("set accountUnread to 0")
	s.open("repeat with mb in mailboxes of acc")
	s.open("try")
	s.line("set accountUnread to accountUnread + (unread count of mb)")
	s.close("end try")
	s.close("end repeat")
	s.line(`set output to output & (name of acc) & ": " & accountUnread & " unread" & linefeed`)
	s.line("set totalUnread to totalUnread + accountUnread")
	s.close("end repeat")
	s.line(`return output & "Total: " & totalUnread & " unread"`)
	return s.finish(), nil
}

func openApplicationScript(Args) (string, error) {
	s := newScript()
	s.line("activate")
	s.line("return %s", quote("Mail application opened"))
	return s.finish(), nil
}

func checkForNewMailScript(Args) (string, error) {
	s := newScript()
	s.line("check for new mail")
	s.line("return %s", quote("Checking for new mail"))
	return s.finish(), nil
}
