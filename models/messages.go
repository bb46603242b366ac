package models

// IncomingMessage is one chat message as delivered by the platform client.
// It lives for a single dispatch cycle.
type IncomingMessage struct {
	MessageID  string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
}

// CommandKind identifies which handler a recognized prefix command selects.
type CommandKind string

const (
	CommandKindQuery     CommandKind = "query"
	CommandKindCodeQuery CommandKind = "code_query"
	CommandKindHelp      CommandKind = "help"
)

// Command is a parsed prefix command. Prompt is the message text with the
// prefix and leading whitespace stripped; empty for help requests and for
// commands issued without a prompt.
type Command struct {
	Kind   CommandKind
	Prompt string
}
