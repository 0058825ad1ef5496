package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/CosmoTheDev/lockrelay/internal/store"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
)

// processUpdate dispatches one bot update. Errors (and panics) stop here:
// they are logged and never reach the HTTP response.
func (gw *Gateway) processUpdate(ctx context.Context, update telegram.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("telegram hook: recovered panic while processing update",
				"update_id", update.UpdateID, "panic", rec)
		}
	}()

	if update.Message == nil || update.Message.Text == "" {
		return
	}
	cmd, ok := telegram.ParseCommand(update.Message.Text)
	if !ok {
		// Plain chatter, not addressed to the bot.
		return
	}
	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	slog.Info("telegram hook: command", "command", cmd.Name, "arg", cmd.Arg, "chat", chatID)

	switch cmd.Name {
	case "status":
		gw.handleStatusCommand(ctx, chatID, cmd.Arg)
	case "subscribe":
		gw.handleSubscribeCommand(ctx, chatID, cmd.Arg)
	case "help":
		gw.send(ctx, chatID, helpText, "")
	default:
		gw.send(ctx, chatID, helpMessage("command does not exist"), "")
	}
}

// handleStatusCommand reports one server when named, otherwise every
// server subscribed to this chat. The fan-out is concurrent; a failing
// lookup only costs its own message.
func (gw *Gateway) handleStatusCommand(ctx context.Context, chatID, arg string) {
	if arg != "" {
		gw.reportStatus(ctx, chatID, arg)
		return
	}

	names, err := gw.store.SubscribedServers(ctx, chatID)
	if err != nil {
		slog.Error("status command: subscription lookup failed", "chat", chatID, "error", err)
		return
	}
	if len(names) == 0 {
		gw.send(ctx, chatID, helpMessage("no server specified"), "")
		return
	}

	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			gw.reportStatus(ctx, chatID, name)
		}(name)
	}
	wg.Wait()
}

// reportStatus sends one server's status to chatID. The not-found and
// ambiguous anomalies produce distinct user-visible messages.
func (gw *Gateway) reportStatus(ctx context.Context, chatID, name string) {
	row, err := gw.store.GetStatus(ctx, name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		gw.send(ctx, chatID, helpMessage("server with name \""+name+"\" not found"), "")
		return
	case errors.Is(err, store.ErrAmbiguous):
		slog.Warn("status command: ambiguous server name", "server", name, "error", err)
		gw.send(ctx, chatID, helpMessage("status of \""+name+"\" is ambiguous"), "")
		return
	case err != nil:
		slog.Error("status command: lookup failed", "server", name, "error", err)
		return
	}
	gw.send(ctx, chatID, statusMessage(row), telegram.ParseModeMarkdownV2)
}

func (gw *Gateway) handleSubscribeCommand(ctx context.Context, chatID, arg string) {
	if arg == "" {
		gw.send(ctx, chatID, helpMessage("no server specified"), "")
		return
	}

	err := gw.store.SetSubscription(ctx, arg, chatID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		gw.send(ctx, chatID, helpMessage("server with name \""+arg+"\" not found"), "")
		return
	case errors.Is(err, store.ErrAmbiguous):
		slog.Warn("subscribe command: ambiguous server name", "server", arg, "error", err)
		gw.send(ctx, chatID, helpMessage("status of \""+arg+"\" is ambiguous"), "")
		return
	case err != nil:
		slog.Error("subscribe command: subscription write failed", "server", arg, "error", err)
		return
	}
	gw.send(ctx, chatID, subscribedMessage(arg), telegram.ParseModeMarkdownV2)
}

// send delivers text to chatID, logging failures. The bot path never
// propagates transport errors upward.
func (gw *Gateway) send(ctx context.Context, chatID, text, parseMode string) {
	if err := gw.notifier.Send(ctx, chatID, text, parseMode); err != nil {
		slog.Error("telegram send failed", "chat", chatID, "error", err)
	}
}
