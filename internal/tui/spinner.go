package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner represents a loading spinner
type Spinner struct {
	frames []string
	frame  int
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next advances the spinner to the next frame
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

// View returns the current spinner frame
func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// LoadingIndicator pairs a spinner with a message and the time spent waiting
type LoadingIndicator struct {
	spinner *Spinner
	message string
	started time.Time
	elapsed time.Duration
}

// NewLoadingIndicator creates a new loading indicator
func NewLoadingIndicator(message string, started time.Time) *LoadingIndicator {
	return &LoadingIndicator{
		spinner: NewSpinner(),
		message: message,
		started: started,
	}
}

// Tick advances the animation and records the elapsed time at now
func (l *LoadingIndicator) Tick(now time.Time) {
	l.spinner.Next()
	if !l.started.IsZero() && now.After(l.started) {
		l.elapsed = now.Sub(l.started)
	}
}

// View renders the loading indicator
func (l *LoadingIndicator) View() string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	content := fmt.Sprintf("%s %s",
		spinnerStyle.Render(l.spinner.View()),
		messageStyle.Render(l.message))

	if l.elapsed >= time.Second {
		elapsedStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
		content += elapsedStyle.Render(fmt.Sprintf(" (%ds)", int(l.elapsed.Seconds())))
	}

	return content
}

// LoadingOverlay centers the indicator and a cancel hint in the given area
func LoadingOverlay(width, height int, indicator *LoadingIndicator) string {
	cancelHint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[ESC to cancel]")

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(fmt.Sprintf("%s\n\n%s", indicator.View(), cancelHint))
}
