// Package json encodes and decodes the transcript service wire format.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localDateTime is the layout of the service's zone-less timestamps.
// Fractional seconds are accepted when parsing even though the layout
// omits them.
const localDateTime = "2006-01-02T15:04:05"

// timestamp decodes both zone-less local timestamps and RFC 3339.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := parseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(localDateTime, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return ts, nil
}
