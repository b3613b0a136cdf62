package task

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999 MST",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses a raw date value, rewriting the first space to the
// ISO "T" separator. Values without an offset are read in loc. Empty or
// malformed values yield nil.
func ParseTimestamp(raw string, loc *time.Location) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	value = strings.Replace(value, " ", "T", 1)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return &t
		}
	}
	return nil
}

// FormatDate renders a date as DD/MM/YYYY, or "" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatRaw(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
