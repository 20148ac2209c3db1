// Package parse extracts amounts, relative dates and memos from free-form
// Vietnamese chat messages. All functions are pure: text in, value out.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// The first numeric token wins, with an optional unit suffix. There is no
// check that the match is plausibly a monetary amount; a lone calendar-like
// number is consumed too. Known limitation of the grammar.
var amountRe = regexp.MustCompile(`([\d.]+)\s*(k|tr|ngan|ngàn|triệu|m|vnđ|đ)?`)

// Amount is a parsed monetary value together with the exact substring it
// was parsed from, so callers can strip it out of the memo text.
type Amount struct {
	Raw   string
	Value decimal.Decimal
}

// Normalize lowercases the text, strips thousands-separator commas and
// trims surrounding whitespace. ParseAmount applies it internally; callers
// that derive reasons from the same text should normalize once themselves.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(text), ",", ""))
}

// ParseAmount scans text for the first numeric token and optional unit
// suffix and resolves the shorthand multipliers: k/ngan/ngàn are thousands,
// tr/triệu/m are millions, vnđ/đ carry no multiplier. Reports false when
// the text contains no parseable number.
func ParseAmount(text string) (Amount, bool) {
	m := amountRe.FindStringSubmatch(Normalize(text))
	if m == nil {
		return Amount{}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		// A run of dots matches the numeric group but is not a number.
		return Amount{}, false
	}

	switch m[2] {
	case "k", "ngan", "ngàn":
		value *= 1_000
	case "tr", "triệu", "m":
		value *= 1_000_000
	}

	return Amount{Raw: m[0], Value: decimal.NewFromFloat(value)}, true
}
