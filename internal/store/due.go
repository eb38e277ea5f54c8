package store

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DueDateLayout is the canonical stored form, DD-MM-YYYY.
	DueDateLayout = "02-01-2006"
	// day and month may drop the leading zero on input
	dueDateInputLayout = "2-1-2006"
)

// ParseDueDate validates a DD-MM-YYYY calendar date and returns it in
// canonical zero-padded form.
func ParseDueDate(s string) (string, error) {
	d, err := time.Parse(dueDateInputLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d.Format(DueDateLayout), nil
}
