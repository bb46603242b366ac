package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
)

// ClaudeMessage is one line of the claude CLI's stream-json output.
type ClaudeMessage interface {
	GetType() string
}

type AssistantMessage struct {
	Type    string `json:"type"`
	Message struct {
		ID      string `json:"id"`
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

func (a AssistantMessage) GetType() string {
	return a.Type
}

type UnknownClaudeMessage struct {
	Type string `json:"type"`
}

func (u UnknownClaudeMessage) GetType() string {
	return u.Type
}

// MapClaudeOutputToMessages parses stream-json output, one JSON object per
// line. Individual lines that don't look like assistant messages degrade to
// UnknownClaudeMessage rather than failing the whole parse, but an output
// where no line parses as JSON at all is an error - that output is not
// stream-json and silently treating it as an empty conversation would hide
// the real response from the user.
func MapClaudeOutputToMessages(output string) ([]ClaudeMessage, error) {
	var messages []ClaudeMessage
	parsedAny := false

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var assistantMsg AssistantMessage
		if err := json.Unmarshal([]byte(line), &assistantMsg); err == nil && assistantMsg.Type == "assistant" {
			messages = append(messages, assistantMsg)
			parsedAny = true
			continue
		}

		var unknownMsg UnknownClaudeMessage
		if err := json.Unmarshal([]byte(line), &unknownMsg); err == nil {
			messages = append(messages, unknownMsg)
			parsedAny = true
		} else {
			messages = append(messages, UnknownClaudeMessage{Type: "unknown"})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(messages) > 0 && !parsedAny {
		return nil, fmt.Errorf("claude output contained no parseable JSON lines")
	}

	return messages, nil
}

// ExtractAssistantText concatenates the text blocks of all assistant
// messages in order. Returns an empty string when the conversation produced
// no text.
func ExtractAssistantText(messages []ClaudeMessage) string {
	var sb strings.Builder
	for _, msg := range messages {
		assistantMsg, ok := msg.(AssistantMessage)
		if !ok {
			continue
		}
		for _, content := range assistantMsg.Message.Content {
			if content.Type == "text" {
				sb.WriteString(content.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
