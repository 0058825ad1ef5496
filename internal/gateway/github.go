package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CosmoTheDev/lockrelay/internal/store"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/CosmoTheDev/lockrelay/internal/webhook"
	"github.com/google/go-github/v68/github"
)

// openLockMarker is the sole intent signal in a push: the most recent
// commit message containing it opens the server, anything else closes it.
const openLockMarker = "Acquiring lock"

// maxHookBody caps inbound webhook payloads at 1 MiB.
const maxHookBody = 1 << 20

// handleGitHubHook derives a server's open/closed state from a push event.
// Sequence: verify signature over the raw body, pick the last commit's
// message, write the resulting state, then notify the subscribed channel
// if any. The state write is authoritative; a failed notification still
// yields a 200.
func (gw *Gateway) handleGitHubHook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxHookBody))
	if err != nil {
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	sig := r.Header.Get("X-Hub-Signature-256")
	if err := webhook.Signature(body, gw.cfg.GitHub.WebhookSecret, sig); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event github.PushEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.Warn("github hook: undecodable push payload", "error", err)
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	server := event.GetRepo().GetFullName()
	pusher := event.GetPusher().GetName()
	if server == "" || len(event.Commits) == 0 {
		slog.Warn("github hook: push without repository or commits", "repo", server)
		w.WriteHeader(http.StatusOK)
		return
	}
	message := event.Commits[len(event.Commits)-1].GetMessage()

	opening := strings.Contains(message, openLockMarker)
	ctx := r.Context()
	if opening {
		err = gw.store.SetOpen(ctx, server, pusher)
	} else {
		err = gw.store.SetClosed(ctx, server)
	}
	if err != nil {
		slog.Error("github hook: status write failed", "repo", server, "error", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	slog.Info("github hook: status updated",
		"repo", server, "pusher", pusher, "open", opening)

	row, err := gw.store.GetStatusAndChannel(ctx, server)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Update matched no provisioned row; nothing to notify.
		slog.Warn("github hook: push for untracked server", "repo", server)
	case err != nil:
		slog.Error("github hook: channel lookup failed", "repo", server, "error", err)
	case row.Channel() != "":
		text := closedMessage(server)
		if opening {
			text = openedMessage(server, pusher)
		}
		if err := gw.notifier.Send(ctx, row.Channel(), text, telegram.ParseModeMarkdownV2); err != nil {
			slog.Error("github hook: notification send failed",
				"repo", server, "channel", row.Channel(), "error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
}
