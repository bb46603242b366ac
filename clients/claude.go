package clients

import (
	"os"
	"os/exec"
	"strings"

	"claudecord/core"
	"claudecord/core/log"
)

// ClaudeCLIClient invokes the claude CLI as a blocking subprocess. Every
// invocation is a fresh session; there is no conversation state carried
// between dispatches.
type ClaudeCLIClient struct {
	binPath        string
	permissionMode string
	systemPrompt   string
}

func NewClaudeCLIClient(binPath, permissionMode, systemPrompt string) *ClaudeCLIClient {
	return &ClaudeCLIClient{
		binPath:        binPath,
		permissionMode: permissionMode,
		systemPrompt:   systemPrompt,
	}
}

func (c *ClaudeCLIClient) RunPrompt(prompt string) (string, error) {
	return c.run(prompt, nil)
}

func (c *ClaudeCLIClient) RunPromptWithTools(prompt string, allowedTools []string) (string, error) {
	return c.run(prompt, allowedTools)
}

func (c *ClaudeCLIClient) run(prompt string, allowedTools []string) (string, error) {
	args := c.buildArgs(prompt, allowedTools)

	log.Info("📋 Executing claude command, promptLength: %d, allowedTools: %d", len(prompt), len(allowedTools))
	log.Debug("Command arguments: %v", args)

	cmd := exec.Command(c.binPath, args...)
	cmd.Env = os.Environ()

	// Blocks until the claude process exits. No timeout is enforced here.
	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Claude command failed: %v\nOutput: %s", err, string(output))
		return "", &core.ErrClaudeCommandErr{Err: err, Output: string(output)}
	}

	result := strings.TrimSpace(string(output))
	log.Info("📋 Claude command completed successfully, outputLength: %d", len(result))
	return result, nil
}

func (c *ClaudeCLIClient) buildArgs(prompt string, allowedTools []string) []string {
	args := []string{
		"--permission-mode", c.permissionMode,
		"--output-format", "stream-json",
		"--verbose",
		"-p", prompt,
	}

	if c.systemPrompt != "" {
		args = append(args, "--append-system-prompt", c.systemPrompt)
	}

	if len(allowedTools) > 0 {
		args = append(args, "--allowedTools", strings.Join(allowedTools, ","))
	}

	return args
}
