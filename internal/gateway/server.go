// Package gateway is the lockrelay daemon: two webhook endpoints, the
// status state machine behind them, and the optional open-lock reminder.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/internal/store"
)

// Notifier sends a message to a chat/channel identifier. The Telegram
// client satisfies it; tests substitute a recorder.
type Notifier interface {
	Send(ctx context.Context, chatID, text, parseMode string) error
}

// Gateway holds the relay's collaborators. It keeps no per-request state;
// everything mutable lives in the database.
type Gateway struct {
	cfg      *config.Config
	db       database.DB
	store    *store.Store
	notifier Notifier
	reminder *Reminder
}

// New creates a Gateway. Call Start() to begin serving.
func New(cfg *config.Config, db database.DB, notifier Notifier) *Gateway {
	st := store.New(db)
	gw := &Gateway{
		cfg:      cfg,
		db:       db,
		store:    st,
		notifier: notifier,
	}
	gw.reminder = newReminder(st, notifier, cfg.Reminder.Schedule)
	return gw
}

// buildHandler wires the relay routes onto a new ServeMux.
func buildHandler(gw *Gateway) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hook/github", gw.handleGitHubHook)
	mux.HandleFunc("POST /hook/telegram", gw.handleTelegramHook)
	mux.HandleFunc("GET /health", gw.handleHealth)
	return mux
}

// Start runs the relay until ctx is cancelled: starts the reminder cron
// (when configured) and binds the HTTP server (blocks until shutdown).
func (gw *Gateway) Start(ctx context.Context) error {
	port := gw.cfg.Server.Port
	if port == 0 {
		port = config.DefaultPort
	}
	addr := fmt.Sprintf(":%d", port)

	if err := gw.reminder.Start(); err != nil {
		return fmt.Errorf("starting reminder: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: buildHandler(gw),
	}

	go func() {
		<-ctx.Done()
		gw.reminder.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("lockrelay listening", "addr", addr, "driver", gw.db.Driver())

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (gw *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := gw.db.Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
