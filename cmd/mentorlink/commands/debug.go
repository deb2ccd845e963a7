package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strrl/mentorlink/internal/calendar"
)

// newDebugCommand creates the debug-sessions command
func newDebugCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-sessions",
		Short: "Show how each session's date is read by the calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.loadSessions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to debug sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			source := a.cfg.SessionsFile
			if source == "" {
				source = "built-in demo schedule"
			}
			fmt.Fprintf(out, "Debugging sessions from: %s\n", source)
			fmt.Fprintln(out, "==========================================")

			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found")
				return nil
			}

			hidden := 0
			for i, session := range sessions {
				fmt.Fprintf(out, "\n--- Session %d (%s) ---\n", i+1, session.ID)
				fmt.Fprintf(out, "Title: %s\n", session.Title)
				fmt.Fprintf(out, "Raw date: %q\n", session.Date)
				if date, err := calendar.ParseDate(session.Date); err != nil {
					hidden++
					fmt.Fprintln(out, "Calendar date: unparseable (hidden from calendar)")
				} else {
					fmt.Fprintf(out, "Calendar date: %s\n", date)
				}
			}

			fmt.Fprintf(out, "\n%d of %d sessions are shown on the calendar\n", len(sessions)-hidden, len(sessions))
			return nil
		},
	}
}
