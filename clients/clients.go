package clients

// ClaudeClient defines the interface for Claude CLI interactions. The raw
// stream-json output is returned as-is; parsing happens in the services
// layer. Implementations are injectable so tests can substitute a stub
// instead of spawning a real subprocess.
type ClaudeClient interface {
	RunPrompt(prompt string) (string, error)
	RunPromptWithTools(prompt string, allowedTools []string) (string, error)
}
