package timefmt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Date format identifiers accepted by the settings endpoints.
const (
	DateWords         = "words"
	DateUnixTimestamp = "unix_timestamp"
	DateYMD           = "YYYY/MM/DD"
	DateDMY           = "DD/MM/YYYY"
	DateMDY           = "MM/DD/YYYY"
)

// Time format identifiers accepted by the settings endpoints.
const (
	TimeAMPM = "AM/PM"
	Time24h  = "24h"
)

func DateFormats() []string {
	return []string{DateWords, DateUnixTimestamp, DateYMD, DateDMY, DateMDY}
}

func TimeFormats() []string {
	return []string{TimeAMPM, Time24h}
}

// Formatter renders unix timestamps (seconds) according to the user's
// date/time preferences.
type Formatter struct {
	DateFormat string
	TimeFormat string
	Language   string
	Location   *time.Location
	Now        func() time.Time
}

func (f Formatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f Formatter) location() *time.Location {
	if f.Location != nil {
		return f.Location
	}
	return time.Local
}

// Format renders ts. "words" yields a relative phrase, "unix_timestamp" the raw
// integer, and the numeric formats a zero-padded date followed by the time.
func (f Formatter) Format(ts int64) string {
	switch f.DateFormat {
	case DateWords:
		return LocaleFor(f.Language).TimeAgo(f.now().Sub(time.Unix(ts, 0)))
	case DateUnixTimestamp:
		return strconv.FormatInt(ts, 10)
	}

	t := time.Unix(ts, 0).In(f.location())
	return f.formatDate(t) + " " + f.formatClock(t)
}

// FormatPtr renders a nullable timestamp; nil becomes "".
func (f Formatter) FormatPtr(ts *int64) string {
	if ts == nil {
		return ""
	}
	return f.Format(*ts)
}

func (f Formatter) formatDate(t time.Time) string {
	y, m, d := t.Date()
	switch f.DateFormat {
	case DateDMY:
		return fmt.Sprintf("%02d/%02d/%04d", d, int(m), y)
	case DateMDY:
		return fmt.Sprintf("%02d/%02d/%04d", int(m), d, y)
	default:
		return fmt.Sprintf("%04d/%02d/%02d", y, int(m), d)
	}
}

func (f Formatter) formatClock(t time.Time) string {
	h, min := t.Hour(), t.Minute()
	if f.TimeFormat != TimeAMPM {
		return fmt.Sprintf("%02d:%02d", h, min)
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, min, suffix)
}

// Time wraps stdlib time.Time to customize JSON marshaling.
// When zero, it marshals to an empty string ""; otherwise RFC3339.
type Time time.Time

// FromUnix converts a nullable unix timestamp; nil gives the zero Time.
func FromUnix(ts *int64) Time {
	if ts == nil {
		return Time{}
	}
	return Time(time.Unix(*ts, 0).UTC())
}

func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(time.Time(t))
}
