package scale

import (
	"fmt"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultDateFormat is used for temporal scales built without a pattern.
const DefaultDateFormat = "%Y-%m-%d"

// ParseDate parses value with a strftime pattern. Dates without a zone are UTC.
func ParseDate(format, value string) (time.Time, error) {
	t, err := strftime.Parse(format, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q with %q: %w", value, format, err)
	}
	return t.UTC(), nil
}

// FormatDate renders t with a strftime pattern.
func FormatDate(format string, t time.Time) string {
	return strftime.Format(format, t)
}

// ValidateDateFormat reports whether format can be used for parsing.
func ValidateDateFormat(format string) error {
	if _, err := strftime.Layout(format); err != nil {
		return fmt.Errorf("invalid date format %q: %w", format, err)
	}
	return nil
}
