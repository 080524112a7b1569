// Package normalize converts raw spreadsheet cell values into typed dates
// and decimal numbers. Every function is best-effort: the second return
// value reports whether the input actually parsed, and the first is always
// a usable default, so callers can degrade per-field instead of failing a
// whole file.
package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"
)

// dateLayouts are tried in order. Unambiguous and US-first layouts come
// before EU layouts so that "01/02/2024" resolves month-first; the permissive
// fallback runs only after every explicit layout has failed.
var dateLayouts = []string{
	"01/02/2006", "01/02/06", // US
	"02/01/2006", "02/01/06", // EU
	"2006-01-02", "2006/01/02", // ISO
	"01-02-2006", "02-01-2006", // dash-separated
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"20060102", // compact numeric
}

// Date parses a raw cell into a date. Returns (zero, false) for empty or
// unparseable input; callers substitute their own default.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}

	zap.L().Warn("normalize: unparseable date", zap.String("raw", s))
	return time.Time{}, false
}
