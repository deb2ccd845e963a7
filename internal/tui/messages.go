package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/pkg/models"
)

// Message types for async operations
type (
	// SessionsLoadedMsg contains the loaded schedule
	SessionsLoadedMsg struct {
		RequestID string
		Sessions  []models.Session
		Error     error
	}

	// AdviceLoadedMsg contains the advisor's reply for a goal
	AdviceLoadedMsg struct {
		RequestID string
		Goal      string
		Reply     string
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// loadSessionsCmd loads the schedule asynchronously
func loadSessionsCmd(ctx context.Context, requestID string, source schedule.Source) tea.Cmd {
	return func() tea.Msg {
		sessions, err := source.Await(ctx)
		return SessionsLoadedMsg{
			RequestID: requestID,
			Sessions:  sessions,
			Error:     err,
		}
	}
}

// matchMentorCmd asks the advisor for a mentor match
func matchMentorCmd(ctx context.Context, requestID string, matcher MentorMatcher, goal string, mentors []models.Mentor) tea.Cmd {
	return func() tea.Msg {
		return AdviceLoadedMsg{
			RequestID: requestID,
			Goal:      goal,
			Reply:     matcher.MatchMentor(ctx, goal, mentors),
		}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
