package telegram

import "strings"

// Command is a parsed bot command: /<name>[@<botname>] [<argument...>].
type Command struct {
	Name string
	// Arg is the remainder after the command token, trimmed. Commands take
	// at most one free-text argument (a server name may contain spaces).
	Arg string
}

// ParseCommand parses text into a Command. ok is false when text is not a
// command (no leading "/"); such messages are silently ignored upstream.
// Any trailing @<botname> suffix on the command token is stripped, so
// "/status@lockrelay_bot acme/api" and "/status acme/api" are equivalent.
func ParseCommand(text string) (Command, bool) {
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}
	token, rest, _ := strings.Cut(text[1:], " ")
	name, _, _ := strings.Cut(token, "@")
	return Command{
		Name: strings.TrimSpace(name),
		Arg:  strings.TrimSpace(rest),
	}, true
}
