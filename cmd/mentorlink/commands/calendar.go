package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/strrl/mentorlink/internal/calendar"
	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/pkg/models"
)

const cellWidth = 6

func newCalendarCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show the sessions of a month without TUI",
		Long: `Show the month grid in a non-interactive format.
Without arguments: the current month
With YYYY-MM: that month

Today is shown in brackets and days with sessions are marked with *.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			month := calendar.MonthOf(now)
			if len(args) == 1 {
				parsed, err := parseMonth(args[0])
				if err != nil {
					return err
				}
				month = parsed
			}

			sessions, err := a.loadSessions(cmd.Context())
			if err != nil {
				return err
			}

			printCalendar(cmd.OutOrStdout(), month, sessions, now)
			return nil
		},
	}
}

func parseMonth(s string) (calendar.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return calendar.Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return calendar.MonthOf(t), nil
}

func printCalendar(w io.Writer, month calendar.Month, sessions []models.Session, today time.Time) {
	cells := calendar.BuildMonthGrid(month, sessions, today)

	fmt.Fprintln(w, month)
	fmt.Fprintln(w, strings.Repeat("=", cellWidth*len(calendar.Weekdays)))

	var header strings.Builder
	for _, day := range calendar.Weekdays {
		fmt.Fprintf(&header, "%-*s", cellWidth, day)
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	for _, week := range calendar.Weeks(cells) {
		var row strings.Builder
		for _, cell := range week {
			fmt.Fprintf(&row, "%-*s", cellWidth, formatDay(cell))
		}
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}

	fmt.Fprintln(w)
	printed := false
	for day := 1; day <= month.DaysInMonth(); day++ {
		for _, session := range calendar.SessionsOn(cells, day) {
			if !printed {
				fmt.Fprintln(w, "Agenda:")
				printed = true
			}
			fmt.Fprintf(w, "  %2d  %s • %s  %s (%s)\n",
				day, session.Time, directory.FirstName(session.Mentor), session.Title, session.Status)
		}
	}
	if !printed {
		fmt.Fprintln(w, "No sessions this month")
	}
}

func formatDay(cell calendar.Cell) string {
	if cell.Blank {
		return ""
	}
	day := fmt.Sprintf("%d", cell.Day)
	if cell.IsToday {
		day = "[" + day + "]"
	}
	if len(cell.Sessions) > 0 {
		day += "*"
	}
	return day
}
