package types

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayout is the backend's timestamp format: ISO-8601 with no
// zone offset.
const dateTimeLayout = "2006-01-02T15:04:05"

// DateTime is a timestamp as the backend serializes it, e.g.
// "2025-06-01T10:00:00". It embeds time.Time, so callers format and
// compare it like any other time value. Fractional seconds and zone
// offsets are accepted on input when present.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t as a DateTime.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	layouts := []string{
		dateTimeLayout + ".999999999",
		time.RFC3339Nano,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
