package telegram

import "testing"

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name string
		text string
		ok   bool
		cmd  string
		arg  string
	}{
		{"bare command", "/help", true, "help", ""},
		{"command with arg", "/status acme/api", true, "status", "acme/api"},
		{"bot suffix stripped", "/status@lockrelay_bot acme/api", true, "status", "acme/api"},
		{"bot suffix no arg", "/subscribe@lockrelay_bot", true, "subscribe", ""},
		{"arg with spaces", "/subscribe my server", true, "subscribe", "my server"},
		{"arg trimmed", "/subscribe   acme/api  ", true, "subscribe", "acme/api"},
		{"not a command", "hello there", false, "", ""},
		{"empty", "", false, "", ""},
		{"lone slash", "/", true, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, ok := ParseCommand(tc.text)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				return
			}
			if cmd.Name != tc.cmd || cmd.Arg != tc.arg {
				t.Fatalf("got (%q, %q), want (%q, %q)", cmd.Name, cmd.Arg, tc.cmd, tc.arg)
			}
		})
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"acme/api", "acme/api"},
		{"a_b*c", `a\_b\*c`},
		{"v1.2-rc", `v1\.2\-rc`},
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
	}
	for _, tc := range cases {
		if got := EscapeMarkdownV2(tc.in); got != tc.out {
			t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
