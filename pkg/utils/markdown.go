package utils

import (
	"fmt"
	"strings"
)

// markdownV2Escaper escapes characters reserved by Telegram MarkdownV2.
var markdownV2Escaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
	"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`,
	"=", `\=`, "|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
)

// EscapeMarkdownV2 escapes s for use as literal text in a MarkdownV2 message.
func EscapeMarkdownV2(s string) string {
	return markdownV2Escaper.Replace(s)
}

// MentionMarkdownV2 builds an inline mention of a user for MarkdownV2 messages.
func MentionMarkdownV2(userID int64, name string) string {
	return fmt.Sprintf("[%s](tg://user?id=%d)", EscapeMarkdownV2(name), userID)
}
