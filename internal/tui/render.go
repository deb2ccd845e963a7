package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/strrl/mentorlink/internal/calendar"
	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/pkg/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2)
)

var statusStyles = map[models.SessionStatus]lipgloss.Style{
	models.StatusUpcoming:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	models.StatusPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	models.StatusCompleted: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func (m model) renderDashboard() string {
	var s strings.Builder

	stats := schedule.Stats(m.sessions)
	cards := []string{
		statCard("Upcoming Sessions", stats.Upcoming),
		statCard("Pending Requests", stats.Pending),
		statCard("Completed Sessions", stats.Completed),
		statCard("Mentors Available", len(m.mentors)),
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	s.WriteString(headingStyle.Render("Schedule") + "\n")
	s.WriteString(m.divider() + "\n")

	upcoming := schedule.Upcoming(m.sessions, 3)
	if len(upcoming) == 0 {
		s.WriteString(mutedStyle.Italic(true).Render("No upcoming sessions") + "\n")
	}
	for _, session := range upcoming {
		s.WriteString(accentStyle.Render(session.Date) + "  " + textStyle.Render(session.Title) + "\n")
		s.WriteString(mutedStyle.Render(fmt.Sprintf("  with %s • %s", session.Mentor, session.Time)) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle().Render(fmt.Sprintf("Error loading sessions: %v", m.err)) + "\n")
	}

	return s.String()
}

func statCard(label string, value int) string {
	content := mutedStyle.Render(strings.ToUpper(label)) + "\n" + accentStyle.Render(fmt.Sprintf("%d", value))
	return cardStyle.Render(content)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
}

func (m model) renderMentors() string {
	var s strings.Builder

	s.WriteString(headingStyle.Render("Find Your Perfect Mentor") + "\n")
	s.WriteString(m.search.View() + "\n")
	s.WriteString(m.divider() + "\n\n")

	mentors := m.filteredMentors()
	if len(mentors) == 0 {
		s.WriteString(textStyle.Bold(true).Render("No mentors found") + "\n")
		s.WriteString(mutedStyle.Render(fmt.Sprintf("We couldn't find any mentors matching %q. Try adjusting your search keywords.", m.search.Value())) + "\n")
		s.WriteString(mutedStyle.Render("Press esc to clear the search.") + "\n")
	}

	for i, mentor := range mentors {
		s.WriteString(accentStyle.Render(mentor.Name) + mutedStyle.Render(fmt.Sprintf("  ★ %.1f • %d sessions", mentor.Rating, mentor.TotalSessions)) + "\n")
		s.WriteString(textStyle.Render("  "+mentor.Specialization) + "\n")
		if skills := formatSkills(mentor.Skills, 3); skills != "" {
			s.WriteString(mutedStyle.Render("  "+skills) + "\n")
		}
		if len(mentor.Availability) > 0 {
			s.WriteString(mutedStyle.Render("  Next availability: "+mentor.Availability[0]) + "\n")
		}
		if i < len(mentors)-1 {
			s.WriteString("\n")
		}
	}

	if len(mentors) > 0 {
		s.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("Showing %d expert mentors ready to help you.", len(mentors))) + "\n")
	}

	if m.adviceLoad != nil {
		s.WriteString("\n" + m.adviceLoad.indicator.View() + "\n")
	} else if m.advice != "" {
		s.WriteString("\n" + headingStyle.Render(fmt.Sprintf("AI Recommendation for %q", m.adviceGoal)) + "\n")
		for _, line := range wrapText(m.advice, m.contentWidth()) {
			s.WriteString(textStyle.Render(line) + "\n")
		}
	}

	return s.String()
}

// formatSkills shows the first max skills and a "+N" marker for the rest
func formatSkills(skills []string, max int) string {
	if len(skills) <= max {
		return strings.Join(skills, " · ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(skills[:max], " · "), len(skills)-max)
}

func (m model) renderCalendar() string {
	var s strings.Builder

	s.WriteString(headingStyle.Render(fmt.Sprintf("‹ %s ›", m.month)) + "\n\n")

	cellWidth := m.contentWidth() / 7
	if cellWidth < 10 {
		cellWidth = 10
	}
	const cellHeight = 4

	headerCell := lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("243")).Bold(true)
	header := make([]string, len(calendar.Weekdays))
	for i, day := range calendar.Weekdays {
		header[i] = headerCell.Render(strings.ToUpper(day))
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...) + "\n")

	grid := calendar.BuildMonthGrid(m.month, m.sessions, m.now())
	for _, week := range calendar.Weeks(grid) {
		row := make([]string, len(week))
		for i, cell := range week {
			row[i] = renderCell(cell, cellWidth, cellHeight)
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle().Render(fmt.Sprintf("Error loading sessions: %v", m.err)) + "\n")
	}

	return s.String()
}

func renderCell(cell calendar.Cell, width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height)
	if cell.Blank {
		return style.Render("")
	}

	dayStyle := mutedStyle
	if cell.IsToday {
		dayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))
	}

	day := dayStyle.Render(fmt.Sprintf("%2d", cell.Day))
	if len(cell.Sessions) > 0 {
		day += accentStyle.Render(" •")
	}
	lines := []string{day}

	for i, session := range cell.Sessions {
		if i == height-2 && len(cell.Sessions) > height-1 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("+%d more", len(cell.Sessions)-i)))
			break
		}
		label := fmt.Sprintf("%s • %s", session.Time, directory.FirstName(session.Mentor))
		lines = append(lines, textStyle.Render(truncate(label, width-1)))
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m model) renderSessionList() string {
	var s strings.Builder

	s.WriteString(headingStyle.Render("Sessions") + "\n")
	s.WriteString(m.divider() + "\n\n")

	if len(m.sessions) == 0 {
		s.WriteString(mutedStyle.Italic(true).Render("No sessions scheduled") + "\n")
		return s.String()
	}

	for i, session := range m.sessions {
		status := statusStyles[session.Status].Render(strings.ToUpper(string(session.Status)))
		s.WriteString(accentStyle.Render(session.Title) + "  " + status + "\n")
		s.WriteString(mutedStyle.Render(fmt.Sprintf("  %s • %s at %s", session.Mentor, session.Date, session.Time)) + "\n")
		s.WriteString(mutedStyle.Render("  → "+session.Action()) + "\n")
		if i < len(m.sessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) contentWidth() int {
	if m.viewport.Width > 0 {
		return m.viewport.Width - 2
	}
	return 78
}

func (m model) divider() string {
	width := m.contentWidth()
	if width < 10 {
		width = 10
	}
	return mutedStyle.Render(strings.Repeat("─", width))
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if len(currentLine)+1+len(word) > width {
				lines = append(lines, currentLine)
				currentLine = word
			} else {
				currentLine += " " + word
			}
		}
		lines = append(lines, currentLine)
	}

	return lines
}

// truncate shortens s to at most maxLen runes, marking the cut with "…"
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
