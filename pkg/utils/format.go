package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatDate renders an ISO date or timestamp as "Jan 2, 2006". Empty input
// renders as N/A and unparseable input as "Invalid date".
func FormatDate(value string) string {
	if value == "" {
		return "N/A"
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return "Invalid date"
	}

	return t.Format("Jan 2, 2006")
}

// FormatCurrency renders an amount as a dollar string with thousands
// separators, e.g. $1,234.56
func FormatCurrency(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	formatted := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		formatted = "-" + formatted
	}

	return formatted
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// FormatPhoneNumber renders 10-digit (and 1-prefixed 11-digit) US numbers as
// (555) 123-4567. Anything else is returned as-is, empty input as N/A.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return "N/A"
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:11])
	}

	return phone
}

// TruncateText shortens text to maxLen characters plus an ellipsis
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return strings.TrimRight(text[:maxLen], " ") + "..."
}
