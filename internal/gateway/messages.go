package gateway

import (
	"fmt"
	"strings"

	"github.com/CosmoTheDev/lockrelay/internal/telegram"
	"github.com/CosmoTheDev/lockrelay/models"
)

const helpText = "Available commands are:\n\n" +
	"- /status [server-name]\n" +
	"- /subscribe <server-name>\n" +
	"- /help"

// escapeCode escapes text for a MarkdownV2 inline-code entity, where only
// backslash and backtick are special.
func escapeCode(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "`", "\\`")
}

func openedMessage(server, holder string) string {
	return fmt.Sprintf("`%s` was *OPENED* by _%s_",
		escapeCode(server), telegram.EscapeMarkdownV2(holder))
}

func closedMessage(server string) string {
	return fmt.Sprintf("`%s` was *CLOSED*", escapeCode(server))
}

func statusMessage(row models.ServerStatus) string {
	if row.IsOpen {
		return fmt.Sprintf("`%s` is currently *OPEN* by _%s_",
			escapeCode(row.Name), telegram.EscapeMarkdownV2(row.Holder()))
	}
	return fmt.Sprintf("`%s` is currently *CLOSE*", escapeCode(row.Name))
}

func subscribedMessage(server string) string {
	return fmt.Sprintf("Subscribed to `%s`", escapeCode(server))
}

func helpMessage(reason string) string {
	return fmt.Sprintf("Error: %s. Type /help for more information", reason)
}

func reminderMessage(rows []models.ServerStatus) string {
	var b strings.Builder
	b.WriteString("Still open:\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "\n- `%s` by _%s_",
			escapeCode(row.Name), telegram.EscapeMarkdownV2(row.Holder()))
	}
	return b.String()
}
