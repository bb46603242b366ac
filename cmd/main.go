package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"claudecord/clients"
	"claudecord/core/log"
	"claudecord/models"
	"claudecord/services"
	"claudecord/usecases"
	"claudecord/utils"
)

const sessionLogMaxAgeDays = 7

// assistantSystemPrompt tailors claude output for Discord before any user
// prompt is appended.
const assistantSystemPrompt = "You are a helpful Discord bot assistant. " +
	"Keep responses concise and Discord-friendly. " +
	"Responses are relayed as Discord messages, so prefer short paragraphs and plain Markdown."

type CmdRunner struct {
	claudeService *services.ClaudeService
	relayUseCase  *usecases.RelayUseCase
	runID         uuid.UUID
}

func NewCmdRunner(claudePath, permissionMode string) (*CmdRunner, error) {
	log.Info("📋 Starting to initialize CmdRunner")

	logsDir, err := programLogsDir()
	if err != nil {
		return nil, err
	}

	claudeClient := clients.NewClaudeCLIClient(claudePath, permissionMode, assistantSystemPrompt)
	claudeService := services.NewClaudeService(claudeClient, logsDir)
	relayUseCase := usecases.NewRelayUseCase(claudeService)

	runID := uuid.New()
	log.Info("🆔 Using bot run ID: %s", runID)

	log.Info("📋 Completed successfully - initialized CmdRunner with all services")
	return &CmdRunner{
		claudeService: claudeService,
		relayUseCase:  relayUseCase,
		runID:         runID,
	}, nil
}

type Options struct {
	Verbose           bool   `long:"verbose"           description:"Enable debug level logging"`
	ClaudePath        string `long:"claude-path"       description:"Path to the claude CLI binary" default:"claude"`
	BypassPermissions bool   `long:"bypassPermissions" description:"Use bypassPermissions mode for Claude (WARNING: Only use in controlled sandbox environments)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Verbose {
		log.SetLevel(slog.LevelDebug)
	} else {
		log.SetLevel(slog.LevelInfo)
	}

	// Install the log file mirror before anything else logs, so the session
	// log captures the full run from the first line.
	logFilePath, err := setupProgramLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up program logging: %v\n", err)
		os.Exit(1)
	}

	// Best effort; the token can also come from the real environment
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded: %v", err)
	}

	botToken := os.Getenv("DISCORD_BOT_TOKEN")
	if botToken == "" {
		fmt.Fprintf(os.Stderr, "Error: DISCORD_BOT_TOKEN environment variable is required but not set\n")
		os.Exit(1)
	}

	permissionMode := "acceptEdits"
	if opts.BypassPermissions {
		permissionMode = "bypassPermissions"
		fmt.Fprintf(os.Stderr, "Warning: --bypassPermissions flag should only be used in a controlled, sandbox environment. Otherwise, anyone on the Discord server has access to your entire system\n")
	}

	cmdRunner, err := NewCmdRunner(opts.ClaudePath, permissionMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing CmdRunner: %v\n", err)
		os.Exit(1)
	}

	// Code queries let claude edit files in the working directory, so only
	// one bot instance may run here at a time.
	dirLock, err := utils.NewDirLock()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory lock: %v\n", err)
		os.Exit(1)
	}
	if err := dirLock.TryLock(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := dirLock.Unlock(); err != nil {
			log.Error("Failed to release directory lock: %v", err)
		}
	}()

	defer func() {
		fmt.Fprintf(os.Stderr, "\n📝 App execution finished, logs for this session are stored in %s\n", logFilePath)
	}()

	if err := cmdRunner.runBot(botToken); err != nil {
		fmt.Fprintf(os.Stderr, "Error running bot: %v\n", err)
		os.Exit(1)
	}
}

func (cr *CmdRunner) runBot(botToken string) error {
	discordClient, err := clients.NewDiscordClient(botToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord client: %w", err)
	}

	discordClient.OnIncomingMessage(func(msg models.IncomingMessage) {
		// Each message gets its own dispatch cycle; cycles share no state
		// and run unsynchronized.
		go func() {
			if err := cr.relayUseCase.OnMessage(msg, discordClient); err != nil {
				log.Error("❌ Dispatch failed for message %s: %v", msg.MessageID, err)
			}
		}()
	})

	if err := discordClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	defer func() {
		if err := discordClient.Close(); err != nil {
			log.Error("Failed to close Discord session: %v", err)
		}
	}()

	botUser, err := discordClient.BotUser()
	if err != nil {
		return fmt.Errorf("failed to get bot user: %w", err)
	}
	log.Info("✅ Connected to Discord as %s (%s)", botUser.Username, botUser.ID)

	if err := cr.claudeService.CleanupOldLogs(sessionLogMaxAgeDays); err != nil {
		log.Error("Failed to clean up old session logs: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	log.Info("🔌 Interrupt received, shutting down")
	return nil
}

func programLogsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logsDir := filepath.Join(homeDir, ".config", "claudecord", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	return logsDir, nil
}

func setupProgramLogging() (string, error) {
	logsDir, err := programLogsDir()
	if err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102-150405")
	logFilePath := filepath.Join(logsDir, fmt.Sprintf("%s.log", timestamp))

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	// Always write to both stdout and file
	log.SetWriter(io.MultiWriter(os.Stdout, logFile))

	return logFilePath, nil
}
