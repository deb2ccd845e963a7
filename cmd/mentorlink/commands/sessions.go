package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/pkg/models"
)

func newSessionsCommand(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List sessions without TUI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.loadSessions(cmd.Context())
			if err != nil {
				return err
			}

			if status != "" {
				parsed, err := models.ParseStatus(strings.ToLower(status))
				if err != nil {
					return err
				}
				sessions = schedule.FilterByStatus(sessions, parsed)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found")
				return nil
			}

			summary := schedule.Stats(sessions)
			fmt.Fprintf(out, "Sessions (%d upcoming, %d pending, %d completed) with %d mentors:\n",
				summary.Upcoming, summary.Pending, summary.Completed, summary.Mentors)
			fmt.Fprintln(out, "===================================")

			for i, session := range sessions {
				fmt.Fprintf(out, "%d. %s\n", i+1, session.Title)
				fmt.Fprintf(out, "   Mentor: %s\n", session.Mentor)
				fmt.Fprintf(out, "   When: %s at %s\n", session.Date, session.Time)
				fmt.Fprintf(out, "   Status: %s (%s)\n", session.Status, session.Action())
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show sessions with this status (upcoming, pending, completed)")
	return cmd
}
