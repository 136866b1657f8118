package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

// DisplayValue formats a raw field value for presentation according to the
// column's type and display format. Missing values render as "-".
func DisplayValue(col Column, value any) string {
	if value == nil {
		return "-"
	}

	format := col.DisplayFormat
	switch {
	case format == "currency":
		return formatCurrency(value)
	case format == "rating":
		return fmt.Sprintf("%v ★", value)
	case strings.HasPrefix(format, "truncate:"):
		limit, err := strconv.Atoi(strings.TrimPrefix(format, "truncate:"))
		if err != nil || limit <= 0 {
			return fmt.Sprint(value)
		}
		return truncate(fmt.Sprint(value), limit)
	}

	switch col.Type {
	case ColumnBoolean:
		if b, ok := value.(bool); ok && b {
			return "Yes"
		}
		return "No"
	case ColumnDate:
		return formatDate(value)
	case ColumnEnum:
		for _, opt := range col.Options {
			if opt.Value == value || fmt.Sprint(opt.Value) == fmt.Sprint(value) {
				return opt.Label
			}
		}
		return fmt.Sprint(value)
	case ColumnNumber:
		if f, ok := toFloat(value); ok {
			return displayPrinter.Sprint(number.Decimal(f))
		}
		return fmt.Sprint(value)
	default:
		s := fmt.Sprint(value)
		if s == "" {
			return "-"
		}
		return s
	}
}

func formatCurrency(value any) string {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Sprint(value)
	}
	return displayPrinter.Sprintf("$%v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func formatDate(value any) string {
	switch t := value.(type) {
	case time.Time:
		return t.Format("Jan 2, 2006")
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.Format("Jan 2, 2006")
		}
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed.Format("Jan 2, 2006")
		}
		return t
	default:
		return fmt.Sprint(value)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
