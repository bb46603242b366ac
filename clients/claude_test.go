package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgs(t *testing.T) {
	t.Run("plain prompt", func(t *testing.T) {
		client := NewClaudeCLIClient("claude", "acceptEdits", "")
		args := client.buildArgs("What is 2+2?", nil)

		assert.Equal(t, []string{
			"--permission-mode", "acceptEdits",
			"--output-format", "stream-json",
			"--verbose",
			"-p", "What is 2+2?",
		}, args)
	})

	t.Run("system prompt is appended", func(t *testing.T) {
		client := NewClaudeCLIClient("claude", "acceptEdits", "You are a helpful Discord bot assistant.")
		args := client.buildArgs("hello", nil)

		assert.Contains(t, args, "--append-system-prompt")
		assert.Contains(t, args, "You are a helpful Discord bot assistant.")
	})

	t.Run("allowed tools are comma-joined", func(t *testing.T) {
		client := NewClaudeCLIClient("claude", "acceptEdits", "")
		args := client.buildArgs("refactor this", []string{"Read", "Write", "Bash"})

		assert.Contains(t, args, "--allowedTools")
		assert.Contains(t, args, "Read,Write,Bash")
	})

	t.Run("no allowedTools flag without tools", func(t *testing.T) {
		client := NewClaudeCLIClient("claude", "acceptEdits", "")
		args := client.buildArgs("hello", nil)

		assert.NotContains(t, args, "--allowedTools")
	})
}
