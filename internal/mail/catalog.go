// Package mail defines the mail operation catalog and synthesizes the
// AppleScript each operation runs against the Mail application.
package mail

import "encoding/json"

// Operation names exposed to callers.
const (
	OpListAccounts    = "list-accounts"
	OpListMailboxes   = "list-mailboxes"
	OpListUnread      = "list-unread"
	OpListRecent      = "list-recent"
	OpGetMessage      = "get-message"
	OpSearchMessages  = "search-messages"
	OpSendMessage     = "send-message"
	OpReplyMessage    = "reply-message"
	OpMarkRead        = "mark-read"
	OpMarkUnread      = "mark-unread"
	OpDeleteMessage   = "delete-message"
	OpMoveMessage     = "move-message"
	OpUnreadCount     = "unread-count"
	OpOpenApplication = "open-application"
	OpCheckForNewMail = "check-for-new-mail"
)

// Param describes one parameter of an operation.
type Param struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Required    bool     `json:"required" yaml:"required"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// Operation pairs a descriptor with the synthesizer and formatter that serve it.
type Operation struct {
	Name        string
	Description string
	Params      []Param

	Synthesize Synthesizer
	Format     Formatter
}

// InputSchema renders the parameter list as a JSON Schema object.
func (o Operation) InputSchema() map[string]any {
	props := make(map[string]any, len(o.Params))
	required := []string{}
	for _, p := range o.Params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Parameters returns InputSchema as raw JSON.
func (o Operation) Parameters() json.RawMessage {
	data, err := json.Marshal(o.InputSchema())
	if err != nil {
		return json.RawMessage(`{"type":"object","properties":{}}`)
	}
	return data
}

var (
	accountParam = Param{Name: "account", Type: "string", Description: "Only use the account with this name"}
	mailboxParam = Param{Name: "mailbox", Type: "string", Description: "Mailbox to read", Default: defaultMailbox}
	limitParam   = Param{Name: "limit", Type: "number", Description: "Maximum number of messages to return", Default: defaultLimit}
	idParam      = Param{Name: "messageId", Type: "string", Description: "Mail message id", Required: true}
)

// Operations returns the catalog in its fixed presentation order. The
// returned slice is freshly built; callers may keep it.
func Operations() []Operation {
	return []Operation{
		{
			Name:        OpListAccounts,
			Description: "List all mail accounts configured in the Mail application",
			Synthesize:  listAccountsScript,
			Format:      withHeader("Mail Accounts:", "No mail accounts found."),
		},
		{
			Name:        OpListMailboxes,
			Description: "List mailboxes with their unread counts, for one account or all accounts",
			Params:      []Param{accountParam},
			Synthesize:  listMailboxesScript,
			Format:      withHeader("Mailboxes:", "No mailboxes found."),
		},
		{
			Name:        OpListUnread,
			Description: "List unread messages in a mailbox",
			Params:      []Param{accountParam, mailboxParam, limitParam},
			Synthesize:  listUnreadScript,
			Format:      messageBlocks("Unread messages:", "No unread messages found."),
		},
		{
			Name:        OpListRecent,
			Description: "List the most recent messages in a mailbox",
			Params:      []Param{accountParam, mailboxParam, limitParam},
			Synthesize:  listRecentScript,
			Format:      messageBlocks("Recent messages:", "No messages found."),
		},
		{
			Name:        OpGetMessage,
			Description: "Read the full content of a message by id",
			Params:      []Param{idParam},
			Synthesize:  getMessageScript,
			Format:      verbatim,
		},
		{
			Name:        OpSearchMessages,
			Description: "Search messages by subject, sender or content",
			Params: []Param{
				{Name: "query", Type: "string", Description: "Text to look for", Required: true},
				accountParam,
				{Name: "searchScope", Type: "string", Description: "Fields to search", Default: ScopeAll, Enum: []string{ScopeSubject, ScopeSender, ScopeContent, ScopeAll}},
				limitParam,
			},
			Synthesize: searchMessagesScript,
			Format:     messageBlocks("Search results:", "No matching messages found."),
		},
		{
			Name:        OpSendMessage,
			Description: "Compose and send a new message",
			Params: []Param{
				{Name: "to", Type: "string", Description: "Recipient addresses, comma separated", Required: true},
				{Name: "subject", Type: "string", Description: "Message subject", Required: true},
				{Name: "body", Type: "string", Description: "Message body", Required: true},
				{Name: "cc", Type: "string", Description: "CC addresses, comma separated"},
				{Name: "bcc", Type: "string", Description: "BCC addresses, comma separated"},
			},
			Synthesize: sendMessageScript,
			Format:     verbatim,
		},
		{
			Name:        OpReplyMessage,
			Description: "Reply to a message",
			Params: []Param{
				idParam,
				{Name: "body", Type: "string", Description: "Reply body", Required: true},
				{Name: "replyAll", Type: "boolean", Description: "Reply to all recipients", Default: false},
			},
			Synthesize: replyMessageScript,
			Format:     verbatim,
		},
		{
			Name:        OpMarkRead,
			Description: `Mark a message as read, or every message of a mailbox when messageId is "all"`,
			Params: []Param{
				{Name: "messageId", Type: "string", Description: `Mail message id, or "all" together with mailbox and account`, Required: true},
				{Name: "mailbox", Type: "string", Description: `Mailbox to mark, used with messageId "all"`},
				{Name: "account", Type: "string", Description: `Account owning the mailbox, used with messageId "all"`},
			},
			Synthesize: markReadScript,
			Format:     verbatim,
		},
		{
			Name:        OpMarkUnread,
			Description: "Mark a message as unread",
			Params:      []Param{idParam},
			Synthesize:  markUnreadScript,
			Format:      verbatim,
		},
		{
			Name:        OpDeleteMessage,
			Description: "Delete a message",
			Params:      []Param{idParam},
			Synthesize:  deleteMessageScript,
			Format:      verbatim,
		},
		{
			Name:        OpMoveMessage,
			Description: "Move a message to another mailbox",
			Params: []Param{
				idParam,
				{Name: "toMailbox", Type: "string", Description: "Destination mailbox name", Required: true},
				{Name: "toAccount", Type: "string", Description: "Account owning the destination mailbox"},
			},
			Synthesize: moveMessageScript,
			Format:     verbatim,
		},
		{
			Name:        OpUnreadCount,
			Description: "Count unread messages per account",
			Params:      []Param{accountParam},
			Synthesize:  unreadCountScript,
			Format:      verbatim,
		},
		{
			Name:        OpOpenApplication,
			Description: "Open the Mail application",
			Synthesize:  openApplicationScript,
			Format:      verbatim,
		},
		{
			Name:        OpCheckForNewMail,
			Description: "Ask the Mail application to check every account for new mail",
			Synthesize:  checkForNewMailScript,
			Format:      verbatim,
		},
	}
}

// Find returns the catalog operation called name.
func Find(name string) (Operation, bool) {
	for _, op := range Operations() {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
