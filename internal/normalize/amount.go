package normalize

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

func isCurrencySymbol(r rune) bool {
	switch r {
	case '$', '£', '€', '¥', '₹':
		return true
	}
	return false
}

// Amount parses a currency-formatted cell into a float64. Returns (0, false)
// for empty or unparseable input and (value, true) otherwise, so a reported
// zero is distinguishable from a failed parse.
//
// Handles currency symbols, whitespace, parenthesis negatives, and both US
// and European separator conventions: when both ',' and '.' appear, whichever
// comes last is the decimal separator; a lone ',' is decimal only when
// exactly two digits follow it.
func Amount(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range s {
		if isCurrencySymbol(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") && len(cleaned) > 1 {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			// European: 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// US: 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case comma >= 0:
		if len(cleaned)-comma-1 == 2 {
			// European decimal: 1234,56
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// Thousands separator: 1,234
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		zap.L().Warn("normalize: unparseable amount", zap.String("raw", raw))
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
