package internal

import (
	"time"
	"unicode/utf8"
)

const ellipsis = "…"

// TruncateMiddle shortens s to at most max runes by replacing its middle with
// an ellipsis. max <= 0 means 40; max <= 3 cuts without an ellipsis.
func TruncateMiddle(s string, max int) string {
	if max <= 0 {
		max = 40
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	keep := max - 1
	head := (keep + 1) / 2
	tail := keep / 2
	return string(r[:head]) + ellipsis + string(r[len(r)-tail:])
}

// FormatEpoch renders epoch seconds in local time; "" when absent
func FormatEpoch(seconds *float64) string {
	if seconds == nil {
		return ""
	}
	return EpochTime(seconds).Local().Format(time.DateTime)
}
