package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"claudecord/clients"
	"claudecord/core"
	"claudecord/core/log"
)

// AssistantResult is the outcome of one successful claude invocation.
// Output may be empty when the conversation produced no assistant text.
type AssistantResult struct {
	Output string
}

type ClaudeService struct {
	claudeClient clients.ClaudeClient
	logDir       string
}

func NewClaudeService(claudeClient clients.ClaudeClient, logDir string) *ClaudeService {
	return &ClaudeService{
		claudeClient: claudeClient,
		logDir:       logDir,
	}
}

// RunQuery runs a plain prompt with no tool access.
func (c *ClaudeService) RunQuery(prompt string) (*AssistantResult, error) {
	log.Info("📋 Starting to run Claude query")
	rawOutput, err := c.claudeClient.RunPrompt(prompt)
	if err != nil {
		log.Error("Failed to run Claude query: %v", err)
		return nil, fmt.Errorf("failed to run Claude query: %w", err)
	}

	return c.parseResult(rawOutput)
}

// RunCodeQuery runs a prompt with the given tools enabled, which lets the
// CLI read and edit files in the working directory.
func (c *ClaudeService) RunCodeQuery(prompt string, allowedTools []string) (*AssistantResult, error) {
	log.Info("📋 Starting to run Claude code query with %d tools", len(allowedTools))
	rawOutput, err := c.claudeClient.RunPromptWithTools(prompt, allowedTools)
	if err != nil {
		log.Error("Failed to run Claude code query: %v", err)
		return nil, fmt.Errorf("failed to run Claude code query: %w", err)
	}

	return c.parseResult(rawOutput)
}

func (c *ClaudeService) parseResult(rawOutput string) (*AssistantResult, error) {
	// Always capture the raw session output before touching it.
	logPath, writeErr := c.writeClaudeSessionLog(rawOutput)
	if writeErr != nil {
		log.Error("Failed to write Claude session log: %v", writeErr)
	}

	messages, err := MapClaudeOutputToMessages(rawOutput)
	if err != nil {
		log.Error("Failed to parse Claude output: %v", err)
		return nil, &core.ClaudeParseError{
			Message:     fmt.Sprintf("couldn't parse claude response, raw output stored in %s", logPath),
			LogFilePath: logPath,
			OriginalErr: err,
		}
	}

	output := ExtractAssistantText(messages)
	log.Info("📋 Completed successfully - extracted assistant text, length: %d", len(output))
	return &AssistantResult{Output: output}, nil
}

// writeClaudeSessionLog writes raw claude output to a timestamped log file
// and returns the file path.
func (c *ClaudeService) writeClaudeSessionLog(rawOutput string) (string, error) {
	if err := os.MkdirAll(c.logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("claude-session-%s.log", timestamp)
	logPath := filepath.Join(c.logDir, filename)

	if err := os.WriteFile(logPath, []byte(rawOutput), 0600); err != nil {
		return "", fmt.Errorf("failed to write log file: %w", err)
	}

	return logPath, nil
}

// CleanupOldLogs removes session log files older than the given number of days.
func (c *ClaudeService) CleanupOldLogs(maxAgeDays int) error {
	log.Info("📋 Starting to cleanup Claude session logs older than %d days", maxAgeDays)

	if maxAgeDays <= 0 {
		return fmt.Errorf("maxAgeDays must be greater than 0")
	}

	files, err := os.ReadDir(c.logDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("📋 Log directory does not exist, nothing to clean up")
			return nil
		}
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoffTime := time.Now().AddDate(0, 0, -maxAgeDays)
	removedCount := 0

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !strings.HasPrefix(file.Name(), "claude-session-") || !strings.HasSuffix(file.Name(), ".log") {
			continue
		}

		filePath := filepath.Join(c.logDir, file.Name())
		info, err := file.Info()
		if err != nil {
			log.Error("Failed to get file info for %s: %v", filePath, err)
			continue
		}

		if info.ModTime().Before(cutoffTime) {
			if err := os.Remove(filePath); err != nil {
				log.Error("Failed to remove old log file %s: %v", filePath, err)
				continue
			}
			removedCount++
		}
	}

	log.Info("📋 Completed successfully - removed %d old Claude session log files", removedCount)
	return nil
}
