package service

import (
	"errors"
	"time"
)

var errInvalidDate = errors.New("must be a date (YYYY-MM-DD) or RFC 3339 timestamp")

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty string clears the date.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		t, err := time.Parse(layout, value)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errInvalidDate
}
