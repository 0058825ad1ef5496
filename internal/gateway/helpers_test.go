package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/CosmoTheDev/lockrelay/internal/config"
	"github.com/CosmoTheDev/lockrelay/internal/database"
	"github.com/CosmoTheDev/lockrelay/models"
)

const (
	testHookSecret  = "hook-secret"
	testTokenSecret = "tg-secret"
)

type sentMessage struct {
	ChatID    string
	Text      string
	ParseMode string
}

// fakeNotifier records sends; set fail to exercise transport failures.
type fakeNotifier struct {
	mu    sync.Mutex
	sends []sentMessage
	fail  bool
}

func (f *fakeNotifier) Send(_ context.Context, chatID, text, parseMode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("send refused")
	}
	f.sends = append(f.sends, sentMessage{ChatID: chatID, Text: text, ParseMode: parseMode})
	return nil
}

func (f *fakeNotifier) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sends...)
}

func newTestGateway(t *testing.T) (*Gateway, database.DB, *fakeNotifier) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gateway-test.db")
	db, err := database.NewSQLite(config.DatabaseConfig{Path: dbPath})
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate db: %v", err)
	}

	cfg := &config.Config{
		GitHub:   config.GitHubConfig{WebhookSecret: testHookSecret},
		Telegram: config.TelegramConfig{Token: "test-token", WebhookSecret: testTokenSecret},
	}
	notifier := &fakeNotifier{}
	return New(cfg, db, notifier), db, notifier
}

func seedServer(t *testing.T, db database.DB, name string) {
	t.Helper()
	if err := db.Exec(context.Background(),
		`INSERT INTO ServerStatus (Name, IsOpen) VALUES (?, 0)`, name); err != nil {
		t.Fatalf("seed server %s: %v", name, err)
	}
}

func subscribe(t *testing.T, db database.DB, name, channel string) {
	t.Helper()
	if err := db.Exec(context.Background(),
		`UPDATE ServerStatus SET ChannelID = ? WHERE Name = ?`, channel, name); err != nil {
		t.Fatalf("subscribe %s to %s: %v", channel, name, err)
	}
}

func fetchServer(t *testing.T, db database.DB, name string) models.ServerStatus {
	t.Helper()
	var rows []models.ServerStatus
	if err := db.Select(context.Background(), &rows,
		`SELECT Name, IsOpen, LockHolder, ChannelID FROM ServerStatus WHERE Name = ?`, name); err != nil {
		t.Fatalf("fetch server %s: %v", name, err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for %s, got %d", name, len(rows))
	}
	return rows[0]
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
