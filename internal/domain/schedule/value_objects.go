package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrUnalignedTime    = errors.New("time not aligned to half-hour grid")
)

const (
	UnitMinutes = 30
	UnitsPerDay = 24 * 60 / UnitMinutes // 48
	dateLayout  = "2006-01-02"
)

// Date is a civil calendar date with no time zone attached. Bookings are
// keyed by the clubhouse wall-calendar date, so the zone is resolved only
// when a Date is combined with a TimeOfDay.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// Normalize through time.Date so callers can pass e.g. day 0 or month 13.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// At combines the date with a time of day in the given location.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, t.Hour(), t.Minute(), 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Next() Date { return d.AddDays(1) }
func (d Date) Prev() Date { return d.AddDays(-1) }

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) ISOWeek() (year, week int) {
	return d.Time().ISOWeek()
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// SameMonth reports whether both dates fall in the same calendar month.
func (d Date) SameMonth(other Date) bool {
	return d.year == other.year && d.month == other.month
}

// SameISOWeek reports whether both dates fall in the same ISO week (Mon-Sun).
func (d Date) SameISOWeek(other Date) bool {
	y1, w1 := d.ISOWeek()
	y2, w2 := other.ISOWeek()
	return y1 == y2 && w1 == w2
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(hour, minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) IsAligned() bool {
	return int(t)%UnitMinutes == 0
}

// UnitIndex is the position of this time on the day's half-hour grid.
func (t TimeOfDay) UnitIndex() int {
	return int(t) / UnitMinutes
}

// Add returns the time of day after adding d, plus the number of calendar
// days carried over midnight.
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, int) {
	total := int(t) + int(d.Minutes())
	carry := total / (24 * 60)
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
		carry--
	}
	return TimeOfDay(total), carry
}
