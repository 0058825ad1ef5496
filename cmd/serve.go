package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/internal/gateway"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/spf13/cobra"
)

var servePort int
var serveLogDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lockrelay daemon",
	Long: `Starts the relay: a long-running daemon that listens for GitHub push
webhooks and Telegram bot updates.

Endpoints:
  POST /hook/github     push events, verified via x-hub-signature-256
  POST /hook/telegram   bot updates, verified via x-telegram-bot-api-secret-token
  GET  /health          liveness check (pings the database)

Configure both webhooks to point at this daemon:
  GitHub:   repository settings → Webhooks → push events, JSON payload
  Telegram: setWebhook with secret_token matching telegram.webhook_secret

With reminder.schedule set (e.g. "@every 6h"), the relay also posts a
periodic digest of servers still holding their lock.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0,
		"HTTP port to listen on (default 8090, overrides config)")
	serveCmd.Flags().StringVar(&serveLogDir, "log-dir", "logs",
		"directory to write relay logs for later inspection")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutting down relay gracefully...")
		cancel()
	}()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config incomplete (run 'lockrelay onboard'): %w", err)
	}

	logFilePath, closeLog, err := setupServeFileLogger(serveLogDir)
	if err != nil {
		return fmt.Errorf("initialising relay logger: %w", err)
	}
	defer closeLog()

	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = config.DefaultPort
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	bot := telegram.NewClient(cfg.Telegram.Token)
	botName, err := bot.Me(ctx)
	if err != nil {
		return fmt.Errorf("verifying telegram token: %w", err)
	}

	fmt.Printf("lockrelay starting\n")
	fmt.Printf("  Bot        : @%s\n", botName)
	fmt.Printf("  Database   : %s\n", db.Driver())
	fmt.Printf("  Listening  : http://0.0.0.0:%d\n", cfg.Server.Port)
	if cfg.Reminder.Schedule != "" {
		fmt.Printf("  Reminder   : %s\n", cfg.Reminder.Schedule)
	}
	fmt.Printf("  Logs       : %s\n\n", logFilePath)
	fmt.Println("Press Ctrl+C to stop gracefully.")
	fmt.Println()

	slog.Info("relay logger initialised", "file", logFilePath)
	gw := gateway.New(cfg, db, bot)
	return gw.Start(ctx)
}

func setupServeFileLogger(logDir string) (string, func(), error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating log dir %s: %w", logDir, err)
	}

	ts := time.Now().UTC().Format("20060102-150405")
	runLogPath := filepath.Join(logDir, fmt.Sprintf("relay-%s.log", ts))
	runFile, err := os.OpenFile(runLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", nil, fmt.Errorf("opening run log file: %w", err)
	}

	latestPath := filepath.Join(logDir, "relay.log")
	latestFile, err := os.OpenFile(latestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = runFile.Close()
		return "", nil, fmt.Errorf("opening latest log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, runFile, latestFile), &slog.HandlerOptions{
		Level:     level,
		AddSource: verbose,
	})
	slog.SetDefault(slog.New(handler))
	slog.SetLogLoggerLevel(level)

	cleanup := func() {
		_ = latestFile.Close()
		_ = runFile.Close()
	}
	return runLogPath, cleanup, nil
}
