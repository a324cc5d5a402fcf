package league

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate is returned when a user-entered date literal cannot be
// split into exactly three numeric day/month/year components.
var ErrMalformedDate = errors.New("malformed date")

// NormalizeDate converts a day/month/year literal ("5/3/2025") into the
// backend's ISO calendar-date form ("2025-03-05"). ISO-formatted input fails:
// it does not split on "/" into three components.
func NormalizeDate(literal string) (string, error) {
	parts := strings.Split(strings.TrimSpace(literal), "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, literal)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrMalformedDate, literal)
		}
		nums[i] = n
	}

	return fmt.Sprintf("%04d-%02d-%02d", nums[2], nums[1], nums[0]), nil
}

// NormalizeTime pads a HH:mm literal to the backend's HH:mm:ss form. A literal
// already carrying seconds is passed through.
func NormalizeTime(literal string) string {
	literal = strings.TrimSpace(literal)
	if strings.Count(literal, ":") == 1 {
		return literal + ":00"
	}
	return literal
}

// FormatDisplayDate renders an ISO calendar date as "Monday, 02/01/2006" for
// schedule tables. Unparseable values are shown as-is.
func FormatDisplayDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, 02/01/2006")
}

// FormatDisplayTime trims "HH:mm:ss" to "HH:mm".
func FormatDisplayTime(hms string) string {
	if len(hms) >= 5 {
		return hms[:5]
	}
	return hms
}
