package services

// MockClaudeClient implements the clients.ClaudeClient interface for testing
type MockClaudeClient struct {
	RunPromptFunc          func(prompt string) (string, error)
	RunPromptWithToolsFunc func(prompt string, allowedTools []string) (string, error)
}

func (m *MockClaudeClient) RunPrompt(prompt string) (string, error) {
	if m.RunPromptFunc != nil {
		return m.RunPromptFunc(prompt)
	}
	return "", nil
}

func (m *MockClaudeClient) RunPromptWithTools(prompt string, allowedTools []string) (string, error) {
	if m.RunPromptWithToolsFunc != nil {
		return m.RunPromptWithToolsFunc(prompt, allowedTools)
	}
	return "", nil
}
