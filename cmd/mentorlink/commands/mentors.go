package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/pkg/models"
)

func newMentorsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mentors [search...]",
		Short: "Search the mentor directory without TUI",
		Long: `Search the mentor directory in a non-interactive format.
Without arguments: lists every mentor
With a mentor ID or full name: shows that mentor's profile
Otherwise: lists mentors whose name, specialization or skills match the search`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mentors, err := a.loadMentors()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			term := strings.Join(args, " ")

			if mentor, ok := directory.Find(mentors, term); ok {
				printMentorProfile(out, *mentor)
				return nil
			}

			matches := directory.Filter(mentors, term)
			if len(matches) == 0 {
				fmt.Fprintln(out, "No mentors found")
				fmt.Fprintf(out, "We couldn't find any mentors matching %q. Try adjusting your search keywords.\n", term)
				return nil
			}

			fmt.Fprintf(out, "Showing %d expert mentors ready to help you.\n", len(matches))
			fmt.Fprintln(out, "=========")
			for i, mentor := range matches {
				fmt.Fprintf(out, "%d. %s (%s)\n", i+1, mentor.Name, mentor.ID)
				fmt.Fprintf(out, "   %s\n", mentor.Specialization)
				fmt.Fprintf(out, "   Rating: %.1f • %d sessions\n", mentor.Rating, mentor.TotalSessions)
				if len(mentor.Skills) > 0 {
					fmt.Fprintf(out, "   Skills: %s\n", strings.Join(mentor.Skills, ", "))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func printMentorProfile(w io.Writer, mentor models.Mentor) {
	fmt.Fprintln(w, mentor.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(mentor.Name)))
	fmt.Fprintf(w, "ID: %s\n", mentor.ID)
	fmt.Fprintf(w, "Email: %s\n", mentor.Email)
	fmt.Fprintf(w, "Specialization: %s\n", mentor.Specialization)
	fmt.Fprintf(w, "Rating: %.1f (%d sessions)\n", mentor.Rating, mentor.TotalSessions)
	fmt.Fprintf(w, "Skills: %s\n", strings.Join(mentor.Skills, ", "))
	if len(mentor.Availability) > 0 {
		fmt.Fprintln(w, "Availability:")
		for _, slot := range mentor.Availability {
			fmt.Fprintf(w, "  - %s\n", slot)
		}
	}
}
