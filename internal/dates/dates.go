// Package dates provides the calendar date value type used for loan
// bookkeeping. A Date carries no time-of-day and no zone, so values
// round-trip through the database as plain yyyy-mm-dd text and never
// shift across timezones.
package dates

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Year bounds accepted by IsValid.
const (
	MinYear = 1900
	MaxYear = 2199
)

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// daysInMonth holds the day count per month for non-leap years.
// Index 0 is unused.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is a calendar date: year, month and day, nothing else.
// The zero value is not a valid date; nullable columns use *Date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// New builds a Date from explicit components without validation.
func New(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// String returns the canonical zero-padded yyyy-mm-dd form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Value implements driver.Valuer so gorm stores the canonical text form.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner. Accepts TEXT columns and, for drivers
// that report time values, anything whose string form starts with
// yyyy-mm-dd.
func (d *Date) Scan(value any) error {
	if value == nil {
		return fmt.Errorf("cannot scan NULL into Date, use *Date")
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprintf("%v", v)
	}
	if len(s) > 10 {
		s = s[:10]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Format returns the canonical text for d, or "" when d is nil.
// Used by templates to render nullable date columns.
func Format(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// IsValid reports whether s is a well-formed yyyy-mm-dd date with the
// year in [1900,2199], the month in 1-12 and the day within the
// month's bounds. February allows day 29 when the year is divisible
// by 4. That leap test is deliberately simplified (century years such
// as 1900 and 2100 pass even though the Gregorian calendar skips
// them); the stored data format relies on it, so keep behavior in
// sync with isLeapYear if this ever changes.
func IsValid(s string) bool {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	if year < MinYear || year > MaxYear {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	maxDay := daysInMonth[month]
	if month == 2 && isLeapYear(year) {
		maxDay = 29
	}
	return day >= 1 && day <= maxDay
}

// isLeapYear uses the simplified divisible-by-4 rule. See IsValid.
func isLeapYear(year int) bool {
	return year%4 == 0
}

// Parse validates s with IsValid and builds the Date from its
// explicit year/month/day components.
func Parse(s string) (Date, error) {
	if !IsValid(s) {
		return Date{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	year, _ := strconv.Atoi(s[0:4])
	month, _ := strconv.Atoi(s[5:7])
	day, _ := strconv.Atoi(s[8:10])
	return Date{Year: year, Month: month, Day: day}, nil
}

// Today returns the current calendar date in local time.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// AddDays returns d shifted by n calendar days. The arithmetic runs
// through a zone-less UTC time.Time so month and year boundaries roll
// over correctly.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// MustParse is Parse for trusted literals; it panics on invalid input.
// Intended for tests and seed data.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
