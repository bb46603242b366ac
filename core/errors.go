package core

import (
	"errors"
	"fmt"
)

// ErrClaudeCommandErr represents a failed claude CLI invocation and carries
// whatever the process wrote before exiting.
type ErrClaudeCommandErr struct {
	Err    error  // The original command error
	Output string // Combined stdout/stderr of the claude process
}

func (e *ErrClaudeCommandErr) Error() string {
	return fmt.Sprintf("claude command failed: %v\nOutput: %s", e.Err, e.Output)
}

func (e *ErrClaudeCommandErr) Unwrap() error {
	return e.Err
}

// IsClaudeCommandErr checks if an error is a Claude command error
func IsClaudeCommandErr(err error) (*ErrClaudeCommandErr, bool) {
	var claudeErr *ErrClaudeCommandErr
	if errors.As(err, &claudeErr) {
		return claudeErr, true
	}
	return nil, false
}

// ClaudeParseError represents a failure to parse Claude output. The raw
// output is preserved in a session log file for inspection.
type ClaudeParseError struct {
	Message     string
	LogFilePath string
	OriginalErr error
}

func (e *ClaudeParseError) Error() string {
	return e.Message
}

func (e *ClaudeParseError) Unwrap() error {
	return e.OriginalErr
}

// IsClaudeParseError checks if an error is a ClaudeParseError
func IsClaudeParseError(err error) (*ClaudeParseError, bool) {
	var parseErr *ClaudeParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}
