package pass

import (
	"fmt"
	"strings"
	"time"
)

// TimeKind tags how a Timestamp is rendered.
type TimeKind uint8

const (
	// KindUnspecified carries a wall clock with no zone information. It is
	// rendered exactly like KindUTC.
	KindUnspecified TimeKind = iota
	// KindUTC is an instant rendered in UTC with a trailing Z.
	KindUTC
	// KindOffset is a wall clock at a fixed UTC offset, rendered with an
	// explicit ±HH:MM suffix.
	KindOffset
)

func (k TimeKind) String() string {
	switch k {
	case KindUTC:
		return "utc"
	case KindOffset:
		return "offset"
	default:
		return "unspecified"
	}
}

const wallClockLayout = "2006-01-02T15:04:05"

// Timestamp is a date/time value with an explicit rendering kind. Use UTC,
// Unspecified, AtOffset or WithOffset to construct one; the zero value is an
// unspecified 0001-01-01T00:00:00.
type Timestamp struct {
	kind   TimeKind
	wall   time.Time
	offset time.Duration
}

// UTC returns a Timestamp for the instant t, rendered in UTC.
func UTC(t time.Time) Timestamp {
	return Timestamp{kind: KindUTC, wall: t.UTC()}
}

// Unspecified returns a Timestamp whose wall clock is t's as-is, ignoring its
// location. It renders with a Z suffix like UTC.
func Unspecified(t time.Time) Timestamp {
	return Timestamp{kind: KindUnspecified, wall: t}
}

// AtOffset returns a Timestamp that keeps t's wall clock and the UTC offset of
// t's location at that instant.
func AtOffset(t time.Time) Timestamp {
	_, seconds := t.Zone()
	return Timestamp{kind: KindOffset, wall: t, offset: time.Duration(seconds) * time.Second}
}

// WithOffset interprets the wall clock of wall (its location is ignored) as a
// local time at the given UTC offset.
func WithOffset(wall time.Time, offset time.Duration) Timestamp {
	zone := time.FixedZone("", int(offset/time.Second))
	local := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), zone)
	return Timestamp{kind: KindOffset, wall: local, offset: offset}
}

// ParseTimestamp reads yyyy-MM-ddTHH:mm:ss with an optional Z or ±HH:MM
// suffix. A Z suffix yields KindUTC, an offset yields KindOffset and no suffix
// yields KindUnspecified. Fractional seconds are accepted and dropped on output.
func ParseTimestamp(raw string) (Timestamp, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Timestamp{}, &InvalidFormatError{Value: raw, Reason: "empty timestamp"}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		if strings.HasSuffix(value, "Z") || strings.HasSuffix(value, "z") {
			return UTC(t), nil
		}
		return AtOffset(t), nil
	}
	t, err := time.Parse(wallClockLayout, value)
	if err != nil {
		return Timestamp{}, &InvalidFormatError{Value: raw, Reason: "expected yyyy-MM-ddTHH:mm:ss with optional Z or ±HH:MM"}
	}
	return Unspecified(t), nil
}

// Kind reports how the timestamp is rendered.
func (ts Timestamp) Kind() TimeKind { return ts.kind }

// Offset returns the UTC offset of a KindOffset timestamp and zero otherwise.
func (ts Timestamp) Offset() time.Duration {
	if ts.kind != KindOffset {
		return 0
	}
	return ts.offset
}

// Time returns the underlying time value.
func (ts Timestamp) Time() time.Time { return ts.wall }

// IsZero reports whether the timestamp holds the zero time.
func (ts Timestamp) IsZero() bool { return ts.wall.IsZero() }

// Format renders the timestamp the way pass.json expects it:
// yyyy-MM-ddTHH:mm:ssZ for UTC and unspecified values, and
// yyyy-MM-ddTHH:mm:ss±HH:MM for offset values. The offset sign follows the
// offset direction and the hour and minute magnitudes are always positive.
func (ts Timestamp) Format() string {
	wall := ts.wall.Format(wallClockLayout)
	if ts.kind != KindOffset {
		return wall + "Z"
	}
	sign := byte('+')
	offset := ts.offset
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%s%c%02d:%02d", wall, sign, hours, minutes)
}

func (ts Timestamp) String() string { return ts.Format() }

func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.Format()), nil
}

func (ts *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
