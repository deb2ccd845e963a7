package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strrl/mentorlink/pkg/models"
)

func newMatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <goal...>",
		Short: "Ask the AI advisor which mentor fits a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mentors, err := a.loadMentors()
			if err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			adv, err := a.newAdvisor(ctx)
			if err != nil {
				return err
			}

			goal := strings.Join(args, " ")
			reply := adv.MatchMentor(ctx, goal, mentors)
			a.renderMarkdown(cmd.OutOrStdout(), "## AI Recommendation\n\n"+reply)
			return nil
		},
	}
}

func newGrowthPathCommand(a *app) *cobra.Command {
	var (
		skills []string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "growth-path",
		Short: "Ask the AI advisor for a 3-month growth path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			adv, err := a.newAdvisor(ctx)
			if err != nil {
				return err
			}

			path, err := adv.GrowthPath(ctx, skills, role)
			if err != nil {
				return err
			}
			a.renderMarkdown(cmd.OutOrStdout(), growthPathMarkdown(role, path))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&skills, "skills", nil, "current skills, comma separated")
	cmd.Flags().StringVar(&role, "role", "", "target role")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func growthPathMarkdown(role string, path *models.GrowthPath) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Growth path: %s\n\n", role)
	for i, step := range []string{path.Month1, path.Month2, path.Month3} {
		if step == "" {
			step = "_No plan suggested._"
		}
		fmt.Fprintf(&b, "## Month %d\n\n%s\n\n", i+1, step)
	}
	if len(path.FocusAreas) > 0 {
		b.WriteString("## Focus areas\n\n")
		for _, area := range path.FocusAreas {
			fmt.Fprintf(&b, "- %s\n", area)
		}
	}
	return b.String()
}

// renderMarkdown prints md through glamour, falling back to the raw text
func (a *app) renderMarkdown(w io.Writer, md string) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		var out string
		if out, err = renderer.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	a.logger.Debug("markdown rendering failed", zap.Error(err))
	fmt.Fprintln(w, md)
}
