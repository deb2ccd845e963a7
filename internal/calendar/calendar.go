package calendar

import (
	"time"

	"github.com/strrl/mentorlink/pkg/models"
)

// Weekdays is the fixed header of a rendered month, Sunday first
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month identifies a displayed month. Index is zero-based (0 = January).
type Month struct {
	Year  int
	Index int
}

// NewMonth normalizes year and an out-of-range month index, so
// NewMonth(2024, -1) is December 2023
func NewMonth(year, index int) Month {
	return MonthOf(time.Date(year, time.Month(index+1), 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Index: int(t.Month()) - 1}
}

// First returns the first day of the month at midnight UTC
func (m Month) First() time.Time {
	return time.Date(m.Year, time.Month(m.Index+1), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following month
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Prev returns the preceding month
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// DaysInMonth uses day 0 of the next month, which is the last day of this one
func (m Month) DaysInMonth() int {
	return time.Date(m.Year, time.Month(m.Index+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartWeekday is the weekday of day 1, 0 = Sunday
func (m Month) StartWeekday() int {
	return int(m.First().Weekday())
}

// Contains reports whether d falls inside the month
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && int(d.Month) == m.Index+1
}

func (m Month) String() string {
	return m.First().Format("January 2006")
}

// Cell is one entry of a month grid: a blank for alignment or a numbered day
type Cell struct {
	Blank    bool
	Day      int
	IsToday  bool
	Sessions []models.Session
}

// BuildMonthGrid lays out month m as leading blanks followed by one cell per
// day. Sessions whose date cannot be parsed never appear in the grid.
func BuildMonthGrid(m Month, sessions []models.Session, today time.Time) []Cell {
	totalDays := m.DaysInMonth()
	startWeekday := m.StartWeekday()
	byDate := groupByDate(m, sessions)
	todayDate := DateOf(today)

	cells := make([]Cell, 0, startWeekday+totalDays)
	for i := 0; i < startWeekday; i++ {
		cells = append(cells, Cell{Blank: true})
	}

	for d := 1; d <= totalDays; d++ {
		date := DateOf(time.Date(m.Year, time.Month(m.Index+1), d, 0, 0, 0, 0, time.UTC))
		cells = append(cells, Cell{
			Day:      d,
			IsToday:  date == todayDate,
			Sessions: byDate[date],
		})
	}

	return cells
}

// groupByDate indexes the sessions of month m by normalized date, keeping
// input order per day
func groupByDate(m Month, sessions []models.Session) map[Date][]models.Session {
	byDate := make(map[Date][]models.Session)
	for _, s := range sessions {
		date, err := ParseDate(s.Date)
		if err != nil || !m.Contains(date) {
			continue
		}
		byDate[date] = append(byDate[date], s)
	}
	return byDate
}

// Weeks splits a grid into rows of 7, padding the last row with blanks
func Weeks(cells []Cell) [][]Cell {
	var weeks [][]Cell
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		week := make([]Cell, 7)
		copy(week, cells[start:end])
		for i := end - start; i < 7; i++ {
			week[i] = Cell{Blank: true}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// SessionsOn returns the sessions of the day cell for day, or nil
func SessionsOn(cells []Cell, day int) []models.Session {
	for _, c := range cells {
		if !c.Blank && c.Day == day {
			return c.Sessions
		}
	}
	return nil
}
