package usecases

import (
	"fmt"

	"claudecord/core"
	"claudecord/core/log"
	"claudecord/models"
	"claudecord/services"
)

const (
	ackText         = "🤔 Thinking..."
	emptyResultText = "No response generated"

	// continuationPrefix marks every chunk after the first of a long
	// response. The split limit is reduced by its length up front so each
	// outgoing message stays within the platform limit.
	continuationPrefix = "*(...continued)*\n"
)

const helpText = "**Claude Bot Commands:**\n" +
	"• `!claude <prompt>` - Ask Claude a question\n" +
	"• `!claude_code <prompt>` - Ask Claude with file-system tools enabled, so it can read and edit files in the bot's working directory\n" +
	"• `!help_claude` - Show this help message\n\n" +
	"**Examples:**\n" +
	"• `!claude What is a goroutine?`\n" +
	"• `!claude_code Add a unit test for the parser`\n\n" +
	"Each command is a fresh conversation - nothing is remembered between messages."

// codeQueryTools is the tool set enabled for !claude_code dispatches.
var codeQueryTools = []string{
	"Read", "Write", "Edit", "MultiEdit", "LS",
	"NotebookRead", "NotebookEdit", "Glob", "Grep",
	"Task", "Bash", "WebFetch", "WebSearch",
}

// MessageSender delivers one outgoing message to a channel.
type MessageSender interface {
	SendMessage(channelID, content string) error
}

// RelayUseCase runs one dispatch cycle per incoming message: route the
// message, invoke the assistant, and relay the chunked response back.
// Dispatches for different messages share no mutable state, so concurrent
// cycles need no synchronization.
type RelayUseCase struct {
	claudeService *services.ClaudeService
}

func NewRelayUseCase(claudeService *services.ClaudeService) *RelayUseCase {
	return &RelayUseCase{
		claudeService: claudeService,
	}
}

// OnMessage handles one incoming chat message from start to finish. Messages
// that carry no recognized command are ignored without a trace.
func (r *RelayUseCase) OnMessage(msg models.IncomingMessage, sender MessageSender) error {
	maybeCommand := services.ParseCommand(msg.Content)
	if !maybeCommand.IsPresent() {
		// Not a command. Deliberate no-op, no logging.
		return nil
	}
	command := maybeCommand.MustGet()

	dispatchID := core.NewID("d")
	log.Info("📨 [%s] Dispatching %s command from %s in channel %s", dispatchID, command.Kind, msg.AuthorName, msg.ChannelID)

	switch command.Kind {
	case models.CommandKindHelp:
		return sender.SendMessage(msg.ChannelID, helpText)
	case models.CommandKindQuery:
		return r.handleQuery(dispatchID, msg.ChannelID, command, sender)
	case models.CommandKindCodeQuery:
		return r.handleQuery(dispatchID, msg.ChannelID, command, sender)
	default:
		log.Warn("⚠️ [%s] Unhandled command kind: %s", dispatchID, command.Kind)
		return nil
	}
}

func (r *RelayUseCase) handleQuery(dispatchID, channelID string, command models.Command, sender MessageSender) error {
	if command.Prompt == "" {
		log.Info("⚠️ [%s] Empty prompt, replying with usage error", dispatchID)
		return sender.SendMessage(channelID, usageText(command.Kind))
	}

	if err := sender.SendMessage(channelID, ackText); err != nil {
		return fmt.Errorf("failed to send acknowledgment: %w", err)
	}

	var result *services.AssistantResult
	var err error
	if command.Kind == models.CommandKindCodeQuery {
		result, err = r.claudeService.RunCodeQuery(command.Prompt, codeQueryTools)
	} else {
		result, err = r.claudeService.RunQuery(command.Prompt)
	}
	if err != nil {
		// Single user-facing error message, no retry, no partial output.
		log.Error("❌ [%s] Claude invocation failed: %v", dispatchID, err)
		return sender.SendMessage(channelID, errorReply(err))
	}

	output := result.Output
	if output == "" {
		log.Info("📋 [%s] Assistant returned empty output, sending fallback", dispatchID)
		return sender.SendMessage(channelID, emptyResultText)
	}

	return r.sendChunked(dispatchID, channelID, output, sender)
}

// sendChunked sends the response as a sequence of ordered messages, each
// within the Discord limit. Chunk i is fully sent before chunk i+1.
func (r *RelayUseCase) sendChunked(dispatchID, channelID, text string, sender MessageSender) error {
	if len(text) <= services.DiscordMessageLimit {
		return sender.SendMessage(channelID, text)
	}

	chunks := services.SplitMessage(text, services.DiscordMessageLimit-len(continuationPrefix))
	log.Info("📤 [%s] Sending response in %d chunks", dispatchID, len(chunks))

	for i, chunk := range chunks {
		if i > 0 {
			chunk = continuationPrefix + chunk
		}
		if err := sender.SendMessage(channelID, chunk); err != nil {
			return fmt.Errorf("failed to send chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	return nil
}

func usageText(kind models.CommandKind) string {
	prefix := services.CommandPrefixQuery
	if kind == models.CommandKindCodeQuery {
		prefix = services.CommandPrefixCodeQuery
	}
	return fmt.Sprintf("Usage: `%s <prompt>` - see `%s` for details", prefix, services.CommandHelp)
}

func errorReply(err error) string {
	if commandErr, ok := core.IsClaudeCommandErr(err); ok {
		return services.TrimMessage(fmt.Sprintf("Sorry, I encountered an error: %v", commandErr.Err))
	}
	return services.TrimMessage(fmt.Sprintf("Sorry, I encountered an error: %v", err))
}
