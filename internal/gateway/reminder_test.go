package gateway

import (
	"strings"
	"testing"
)

func TestReminderDigestGroupsByChannel(t *testing.T) {
	gw, db, notifier := newTestGateway(t)
	ctx := t.Context()
	for _, name := range []string{"acme/api", "acme/web", "acme/db"} {
		seedServer(t, db, name)
	}
	subscribe(t, db, "acme/api", "42")
	subscribe(t, db, "acme/web", "42")
	subscribe(t, db, "acme/db", "77")
	for _, name := range []string{"acme/api", "acme/web", "acme/db"} {
		if err := gw.store.SetOpen(ctx, name, "alice"); err != nil {
			t.Fatalf("SetOpen(%s): %v", name, err)
		}
	}

	gw.reminder.run(ctx)

	sends := notifier.sent()
	if len(sends) != 2 {
		t.Fatalf("expected one digest per channel, got %d: %+v", len(sends), sends)
	}
	byChat := map[string]string{}
	for _, s := range sends {
		byChat[s.ChatID] = s.Text
	}
	if !strings.Contains(byChat["42"], "acme/api") || !strings.Contains(byChat["42"], "acme/web") {
		t.Fatalf("digest for 42 incomplete: %q", byChat["42"])
	}
	if !strings.Contains(byChat["77"], "acme/db") {
		t.Fatalf("digest for 77 incomplete: %q", byChat["77"])
	}
}

func TestReminderQuietWhenNothingOpen(t *testing.T) {
	gw, db, notifier := newTestGateway(t)
	seedServer(t, db, "acme/api")
	subscribe(t, db, "acme/api", "42")

	gw.reminder.run(t.Context())

	if n := len(notifier.sent()); n != 0 {
		t.Fatalf("expected no digest, got %d sends", n)
	}
}
