package core

import (
	"fmt"
	"strconv"
	"time"
)

// Date is a calendar day with no time-of-day component. The zone that
// decides what "today" means is owned by the caller (see services.Clock);
// Date itself is zone-free.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time to its calendar day in the time's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseYYMMDD parses the bot's compact date form, e.g. "250824" for
// 2025-08-24. Two-digit years resolve to 20YY. Rejects impossible
// calendar dates such as "250231".
func ParseYYMMDD(s string) (Date, error) {
	if len(s) != 6 {
		return Date{}, ErrInvalidDate
	}
	// Atoi alone would accept a leading sign ("+11231").
	for _, r := range s {
		if r < '0' || r > '9' {
			return Date{}, ErrInvalidDate
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	yy := n / 10000
	mm := (n / 100) % 100
	dd := n % 100
	d := NewDate(2000+yy, time.Month(mm), dd)
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func (d Date) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return ErrInvalidDate
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return ErrInvalidDate
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first and last day of d's calendar month.
func (d Date) MonthRange() (first, last Date) {
	first = Date{Year: d.Year, Month: d.Month, Day: 1}
	last = Date{Year: d.Year, Month: d.Month, Day: daysIn(d.Year, d.Month)}
	return first, last
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// String renders the ISO form, e.g. "2025-08-24".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MonthDay renders the chart label form, e.g. "08-24".
func (d Date) MonthDay() string {
	return fmt.Sprintf("%02d-%02d", int(d.Month), d.Day)
}
