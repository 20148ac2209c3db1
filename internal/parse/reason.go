package parse

import (
	"regexp"
	"strings"
)

// DefaultReason is recorded when a message carries no memo text.
const DefaultReason = "Không ghi lý do"

var dateHintRe = regexp.MustCompile(`(?i)hôm\s?(nay|qua|kia)`)

// ExtractReason derives the memo for a transaction: the first occurrence
// of the matched amount substring and any relative-day phrase are removed
// from the text, the rest is trimmed. An empty remainder yields
// DefaultReason. Pass an empty amountRaw when the amount did not come from
// the same text (command-argument flow).
func ExtractReason(text, amountRaw string) string {
	if amountRaw != "" {
		text = strings.Replace(text, amountRaw, "", 1)
	}
	text = dateHintRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultReason
	}
	return text
}
