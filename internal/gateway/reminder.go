package gateway

import (
	"context"
	"log/slog"

	"github.com/CosmoTheDev/lockrelay/internal/store"
	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/CosmoTheDev/lockrelay/models"
	"github.com/robfig/cron/v3"
)

// Reminder periodically nudges subscribed channels about servers that are
// still open. Disabled when no schedule is configured.
type Reminder struct {
	store    *store.Store
	notifier Notifier
	schedule string
	cron     *cron.Cron
}

func newReminder(st *store.Store, notifier Notifier, schedule string) *Reminder {
	return &Reminder{
		store:    st,
		notifier: notifier,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the digest job and starts the cron runner. A no-op when
// no schedule is configured; an invalid expression is a startup error.
func (r *Reminder) Start() error {
	if r.schedule == "" {
		return nil
	}
	if _, err := r.cron.AddFunc(r.schedule, func() {
		r.run(context.Background())
	}); err != nil {
		return err
	}
	r.cron.Start()
	slog.Info("open-lock reminder started", "schedule", r.schedule)
	return nil
}

// Stop halts the cron runner gracefully.
func (r *Reminder) Stop() { r.cron.Stop() }

// run sends each channel one digest of its still-open servers. A failed
// send only costs that channel its digest.
func (r *Reminder) run(ctx context.Context) {
	open, err := r.store.OpenServers(ctx)
	if err != nil {
		slog.Error("reminder: open-server query failed", "error", err)
		return
	}
	if len(open) == 0 {
		return
	}

	byChannel := make(map[string][]models.ServerStatus)
	for _, row := range open {
		byChannel[row.Channel()] = append(byChannel[row.Channel()], row)
	}

	for channel, rows := range byChannel {
		text := reminderMessage(rows)
		if err := r.notifier.Send(ctx, channel, text, telegram.ParseModeMarkdownV2); err != nil {
			slog.Error("reminder: send failed", "channel", channel, "error", err)
		}
	}
}
