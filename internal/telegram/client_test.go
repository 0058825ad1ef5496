package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendPostsToBotEndpoint(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-token", srv.URL)
	if err := c.Send(t.Context(), "42", "hello", ParseModeMarkdownV2); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotPayload["chat_id"] != "42" || gotPayload["text"] != "hello" {
		t.Fatalf("unexpected payload: %+v", gotPayload)
	}
	if gotPayload["parse_mode"] != ParseModeMarkdownV2 {
		t.Fatalf("expected parse_mode %q, got %v", ParseModeMarkdownV2, gotPayload["parse_mode"])
	}
}

func TestSendOmitsEmptyParseMode(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	if err := c.Send(t.Context(), "42", "plain", ""); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, ok := gotPayload["parse_mode"]; ok {
		t.Fatalf("parse_mode should be absent, payload: %+v", gotPayload)
	}
}

func TestSendTruncatesLongMessages(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		json.NewDecoder(r.Body).Decode(&p)
		gotText, _ = p["text"].(string)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	if err := c.Send(t.Context(), "42", strings.Repeat("x", 5000), ""); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(gotText) != 4096 || !strings.HasSuffix(gotText, "...") {
		t.Fatalf("expected 4096-char truncated text, got %d chars", len(gotText))
	}
}

func TestSendReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"Bad Request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	err := c.Send(t.Context(), "42", "hello", "")
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestMeReturnsUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bott/getMe" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"username":"lockrelay_bot"}}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("t", srv.URL)
	name, err := c.Me(t.Context())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if name != "lockrelay_bot" {
		t.Fatalf("expected lockrelay_bot, got %q", name)
	}
}
