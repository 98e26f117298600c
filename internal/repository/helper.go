package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02 15:04:05", "2006-01-02" or
// RFC3339 format, as sqlite hands back all three depending on how the value
// was written.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, str); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}
