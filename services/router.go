package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/mo"

	"claudecord/models"
)

// Recognized command prefixes. The chat-message surface of the bot.
const (
	CommandPrefixCodeQuery = "!claude_code"
	CommandPrefixQuery     = "!claude"
	CommandHelp            = "!help_claude"
)

// ParseCommand inspects raw message text and derives the command it carries,
// if any. Non-commands return None; callers treat that as a silent no-op so
// high-traffic channels stay quiet.
func ParseCommand(content string) mo.Option[models.Command] {
	trimmed := strings.TrimSpace(content)

	if trimmed == CommandHelp {
		return mo.Some(models.Command{Kind: models.CommandKindHelp})
	}

	// Longer prefix first so "!claude_code" is never shadowed by "!claude".
	if prompt, ok := matchPrefix(trimmed, CommandPrefixCodeQuery); ok {
		return mo.Some(models.Command{Kind: models.CommandKindCodeQuery, Prompt: prompt})
	}
	if prompt, ok := matchPrefix(trimmed, CommandPrefixQuery); ok {
		return mo.Some(models.Command{Kind: models.CommandKindQuery, Prompt: prompt})
	}

	return mo.None[models.Command]()
}

// matchPrefix matches a prefix command. The prefix only counts when followed
// by end-of-string or whitespace, so "!claudette" is not a `!claude` command.
// The returned prompt has leading/trailing whitespace stripped and may be
// empty.
func matchPrefix(content, prefix string) (string, bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", false
	}

	rest := content[len(prefix):]
	if rest == "" {
		return "", true
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return "", false
	}

	return strings.TrimSpace(rest), true
}
