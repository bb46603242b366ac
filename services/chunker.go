package services

import (
	"strings"
	"unicode/utf8"

	"claudecord/utils"
)

// DiscordMessageLimit is Discord's hard per-message character limit.
const DiscordMessageLimit = 2000

// SplitMessage splits text into an ordered sequence of chunks, each at most
// limit bytes. Concatenating the chunks reproduces text exactly, line breaks
// included. A chunk boundary prefers the last line break inside the window;
// only a single line longer than the limit gets a hard cut. Empty input
// yields zero chunks.
func SplitMessage(text string, limit int) []string {
	utils.AssertInvariant(limit > 0, "chunk limit must be positive")

	if text == "" {
		return nil
	}

	var chunks []string
	remaining := text
	for len(remaining) > limit {
		cut := limit
		if idx := strings.LastIndex(remaining[:limit], "\n"); idx >= 0 {
			// Keep the line break at the end of the current chunk so
			// concatenation stays exact.
			cut = idx + 1
		} else {
			// Hard cut: back off to a rune boundary so no chunk carries a
			// torn UTF-8 sequence.
			for cut > 0 && !utf8.RuneStart(remaining[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}

		chunks = append(chunks, remaining[:cut])
		remaining = remaining[cut:]
	}

	if len(remaining) > 0 {
		chunks = append(chunks, remaining)
	}

	return chunks
}

// TrimMessage trims a message to the Discord character limit, appending an
// ellipsis when content was dropped. Used for one-off messages (errors)
// where chunking would add noise rather than value.
func TrimMessage(message string) string {
	if len(message) <= DiscordMessageLimit {
		return message
	}

	// Back off to a rune boundary so the cut never tears a UTF-8 sequence.
	cut := DiscordMessageLimit - 3
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}

	return message[:cut] + "..."
}
