package letters

import (
	"strings"
	"time"
)

// TanggalLayout is the calendar format used everywhere in the app (DD-MM-YYYY).
const TanggalLayout = "02-01-2006"

// ParseTanggal parses a date string in TanggalLayout.
func ParseTanggal(s string) (time.Time, error) {
	return time.Parse(TanggalLayout, strings.TrimSpace(s))
}

func requireTanggal(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := ParseTanggal(value); err != nil {
		errors[field] = field + " must be a valid DD-MM-YYYY date"
	}
}
