package telegram

import "strings"

// markdownV2Special is the full set of characters MarkdownV2 requires to be
// backslash-escaped outside code/pre entities.
const markdownV2Special = `_*[]()~` + "`" + `>#+-=|{}.!`

// EscapeMarkdownV2 escapes dynamic text (server names, lock holders) for
// interpolation into a MarkdownV2 message.
func EscapeMarkdownV2(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markdownV2Special, r) || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
