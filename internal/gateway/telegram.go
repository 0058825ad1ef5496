package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/CosmoTheDev/lockrelay/internal/webhook"
)

// handleTelegramHook receives bot updates. After the shared-token check
// the response is always a bare 200: Telegram expects prompt
// acknowledgment and will re-deliver otherwise, so processing errors are
// recovered and logged instead of surfaced.
func (gw *Gateway) handleTelegramHook(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Telegram-Bot-Api-Secret-Token")
	if err := webhook.Token(token, gw.cfg.Telegram.WebhookSecret); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("unauthorized"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxHookBody))
	if err == nil {
		var update telegram.Update
		if err := json.Unmarshal(body, &update); err != nil {
			slog.Warn("telegram hook: undecodable update", "error", err)
		} else {
			gw.processUpdate(r.Context(), update)
		}
	}

	w.WriteHeader(http.StatusOK)
}
