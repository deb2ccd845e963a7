package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day with no time-of-day or timezone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// sessionDateLayouts are the date formats accepted for session dates.
// "Jan 2, 2006" also accepts zero-padded days such as "Nov 05, 2024".
var sessionDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
}

// DateOf reduces t to its wall-clock calendar day in t's own location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate normalizes a session date string to a Date
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range sessionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
