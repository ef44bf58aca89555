package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrMalformedDate = errors.New("malformed date (expected YYYY-MM-DD)")
)

// Date is a calendar day without a time of day. The zero value is not a valid day.
// Values are immutable: every arithmetic operation returns a new Date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// DateIn returns the calendar day of t in loc.
func DateIn(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(t.In(loc))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return DateOf(t), nil
}

func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

const secondsPerDay = 24 * 60 * 60

// DaysSince returns the signed number of days from other to d. Both are UTC
// midnights, so the Unix difference is an exact multiple of a day.
func (d Date) DaysSince(other Date) int {
	return int((d.t.Unix() - other.t.Unix()) / secondsPerDay)
}

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) Day() int              { return d.t.Day() }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}
