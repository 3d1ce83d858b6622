package util

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Truncate shortens s to at most max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}

	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// SingleLine collapses newlines so a value fits on one output line
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// FormatTime formats a timestamp for list output, or "-" when unset
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC1123)
}

// OrPlaceholder returns placeholder when s is blank
func OrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
