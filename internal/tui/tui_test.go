package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/strrl/mentorlink/internal/calendar"
	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/pkg/models"
)

func fixedNow() time.Time {
	return time.Date(2024, time.October, 18, 9, 30, 0, 0, time.Local)
}

func testModel() model {
	return initialModel(Options{
		User:    models.User{Name: "Alex Johnson", Role: models.RoleMentee},
		Mentors: directory.DefaultMentors(),
		Now:     fixedNow,
	})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(model)
	if !ok {
		t.Fatalf("Update returned %T, want model", updated)
	}
	return next
}

type fakeMatcher struct {
	reply string
}

func (f fakeMatcher) MatchMentor(ctx context.Context, goal string, mentors []models.Mentor) string {
	return f.reply
}

// TestModelInitialization tests the initial model setup
func TestModelInitialization(t *testing.T) {
	m := testModel()

	if m.currentTab != dashboardTab {
		t.Error("Initial tab should be the dashboard")
	}
	if m.layout != calendarLayout {
		t.Error("Sessions should start in calendar layout")
	}
	if m.month != calendar.NewMonth(2024, 9) {
		t.Errorf("Expected October 2024, got %s", m.month)
	}
	if m.loading() {
		t.Error("No request should be running initially")
	}
	if len(m.mentors) != 4 {
		t.Errorf("Expected 4 mentors, got %d", len(m.mentors))
	}
	if m.View() != "\n  Initializing..." {
		t.Error("View should show the initializing message before the first resize")
	}
}

// TestViewportInitialization tests viewport setup
func TestViewportInitialization(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})

	if !m.ready {
		t.Error("Model should be ready after window size is set")
	}
	if m.width != 100 || m.height != 40 {
		t.Error("Window dimensions not set correctly")
	}
	if m.viewport.Width != 100 || m.viewport.Height != 36 {
		t.Errorf("Unexpected viewport size %dx%d", m.viewport.Width, m.viewport.Height)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.viewport.Width != 120 || m.viewport.Height != 46 {
		t.Errorf("Viewport should follow resizes, got %dx%d", m.viewport.Width, m.viewport.Height)
	}
}

// TestTabSwitching tests the number and tab keys
func TestTabSwitching(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})

	m = update(t, m, runeKey('3'))
	if m.currentTab != sessionsTab {
		t.Errorf("Key 3 should open sessions, got %d", m.currentTab)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.currentTab != dashboardTab {
		t.Errorf("Tab should wrap to the dashboard, got %d", m.currentTab)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.currentTab != sessionsTab {
		t.Errorf("Shift+tab should wrap back to sessions, got %d", m.currentTab)
	}

	m = update(t, m, runeKey('2'))
	if m.currentTab != mentorsTab {
		t.Errorf("Key 2 should open mentors, got %d", m.currentTab)
	}
}

// TestMonthNavigation tests moving the calendar between months
func TestMonthNavigation(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runeKey('3'))

	m = update(t, m, runeKey('l'))
	if m.month != calendar.NewMonth(2024, 10) {
		t.Errorf("Expected November 2024, got %s", m.month)
	}

	m = update(t, m, runeKey('l'))
	m = update(t, m, runeKey('l'))
	if m.month != calendar.NewMonth(2025, 0) {
		t.Errorf("Expected January 2025, got %s", m.month)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.month != calendar.NewMonth(2024, 11) {
		t.Errorf("Expected December 2024, got %s", m.month)
	}

	m = update(t, m, runeKey('t'))
	if m.month != calendar.NewMonth(2024, 9) {
		t.Errorf("t should jump back to the current month, got %s", m.month)
	}
}

// TestMonthKeysIgnoredOutsideSessions tests that calendar keys only apply on the sessions tab
func TestMonthKeysIgnoredOutsideSessions(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})

	m = update(t, m, runeKey('l'))
	if m.month != calendar.NewMonth(2024, 9) {
		t.Errorf("Month should not change on the dashboard, got %s", m.month)
	}
}

// TestLayoutToggle tests switching between calendar and list layouts
func TestLayoutToggle(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runeKey('3'))
	m.sessions = schedule.DefaultSessions()

	m = update(t, m, runeKey('v'))
	if m.layout != listLayout {
		t.Fatal("v should switch to the list layout")
	}
	content := m.renderContent()
	if !strings.Contains(content, "Join Call") || !strings.Contains(content, "Details") {
		t.Error("List layout should show session actions")
	}

	m = update(t, m, runeKey('v'))
	if m.layout != calendarLayout {
		t.Error("v should switch back to the calendar layout")
	}
}

// TestSessionsLoadedHandling tests handling of loaded sessions
func TestSessionsLoadedHandling(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startLoadMsg{})

	if m.sessionsLoad == nil {
		t.Fatal("A session load should be running after start")
	}
	if m.sessionsLoad.id == "" {
		t.Fatal("Request ID should be set")
	}

	if !strings.Contains(m.View(), "[ESC to cancel]") {
		t.Error("View should show the loading overlay while sessions load")
	}

	// A reply for another request is ignored
	m = update(t, m, SessionsLoadedMsg{RequestID: "stale", Sessions: schedule.DefaultSessions()})
	if m.sessionsLoad == nil || len(m.sessions) != 0 {
		t.Error("Stale replies should not be applied")
	}

	m = update(t, m, SessionsLoadedMsg{RequestID: m.sessionsLoad.id, Sessions: schedule.DefaultSessions()})
	if m.loading() {
		t.Error("No request should be running after sessions loaded")
	}
	if len(m.sessions) != 4 {
		t.Errorf("Expected 4 sessions, got %d", len(m.sessions))
	}
}

// TestSessionsLoadError tests that load errors are kept and shown
func TestSessionsLoadError(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startLoadMsg{})

	m = update(t, m, SessionsLoadedMsg{RequestID: m.sessionsLoad.id, Error: errors.New("boom")})
	if m.err == nil {
		t.Fatal("Error should be recorded")
	}
	if !strings.Contains(m.renderDashboard(), "boom") {
		t.Error("Dashboard should show the load error")
	}
}

// TestCancellationHandling tests request cancellation
func TestCancellationHandling(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startLoadMsg{})
	requestID := m.sessionsLoad.id

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.loading() {
		t.Error("No request should be running after cancellation")
	}
	if !strings.Contains(m.notice, "press r to reload") {
		t.Errorf("Unexpected notice %q", m.notice)
	}

	// The cancelled load finishing later is ignored
	m = update(t, m, SessionsLoadedMsg{RequestID: requestID, Error: context.Canceled})
	if m.err != nil {
		t.Error("Cancelled load should not surface an error")
	}
}

// TestReloadSessions tests that r starts a fresh load after a cancelled one
func TestReloadSessions(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startLoadMsg{})
	cancelledID := m.sessionsLoad.id
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	updated, cmd := m.Update(runeKey('r'))
	m = updated.(model)
	if m.sessionsLoad == nil {
		t.Fatal("r should start a new session load")
	}
	if m.sessionsLoad.id == cancelledID {
		t.Error("Reload should use a new request ID")
	}
	if m.notice != "" {
		t.Errorf("Reload should clear the notice, got %q", m.notice)
	}
	if cmd == nil {
		t.Fatal("Expected a command for the reload")
	}

	m = update(t, m, SessionsLoadedMsg{RequestID: cancelledID, Sessions: schedule.DefaultSessions()})
	if len(m.sessions) != 0 {
		t.Error("The cancelled load's reply should be ignored")
	}

	reply := loadSessionsCmd(context.Background(), m.sessionsLoad.id, m.source)()
	m = update(t, m, reply)
	if len(m.sessions) != 4 {
		t.Errorf("Expected 4 sessions after reload, got %d", len(m.sessions))
	}
}

// TestAdviceDuringSessionLoad tests that asking the advisor while the
// schedule loads keeps both requests alive
func TestAdviceDuringSessionLoad(t *testing.T) {
	m := initialModel(Options{
		Mentors: directory.DefaultMentors(),
		Advisor: fakeMatcher{reply: "Elena Volkov is a great fit."},
		Now:     fixedNow,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, startLoadMsg{})
	loadID := m.sessionsLoad.id

	m = update(t, m, runeKey('2'))
	m.search.SetValue("learn kubernetes")
	m = update(t, m, runeKey('a'))
	if m.sessionsLoad == nil || m.sessionsLoad.id != loadID {
		t.Fatal("Asking the advisor should not cancel the session load")
	}
	if m.adviceLoad == nil {
		t.Fatal("An advice request should be running")
	}

	m = update(t, m, SessionsLoadedMsg{RequestID: loadID, Sessions: schedule.DefaultSessions()})
	m = update(t, m, AdviceLoadedMsg{RequestID: m.adviceLoad.id, Goal: "learn kubernetes", Reply: "Elena Volkov is a great fit."})

	if len(m.sessions) != 4 {
		t.Errorf("Expected 4 sessions, got %d", len(m.sessions))
	}
	if m.advice != "Elena Volkov is a great fit." {
		t.Errorf("Unexpected advice %q", m.advice)
	}
	if m.loading() {
		t.Error("Both requests should be finished")
	}
}

// TestLoadSessionsCmd tests the async command against the built-in schedule
func TestLoadSessionsCmd(t *testing.T) {
	msg := loadSessionsCmd(context.Background(), "req-1", schedule.Source{})()

	loaded, ok := msg.(SessionsLoadedMsg)
	if !ok {
		t.Fatalf("Expected SessionsLoadedMsg, got %T", msg)
	}
	if loaded.RequestID != "req-1" {
		t.Errorf("Unexpected request ID %q", loaded.RequestID)
	}
	if loaded.Error != nil {
		t.Fatalf("Unexpected error: %v", loaded.Error)
	}
	if len(loaded.Sessions) != 4 {
		t.Errorf("Expected 4 sessions, got %d", len(loaded.Sessions))
	}
}

// TestSearchFiltering tests typing into the mentor search box
func TestSearchFiltering(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runeKey('2'))
	m = update(t, m, runeKey('/'))
	if !m.searching {
		t.Fatal("/ should focus the search box")
	}

	for _, r := range "kuber" {
		m = update(t, m, runeKey(r))
	}
	if m.search.Value() != "kuber" {
		t.Fatalf("Unexpected search value %q", m.search.Value())
	}

	mentors := m.filteredMentors()
	if len(mentors) != 1 || mentors[0].Name != "Elena Volkov" {
		t.Errorf("Expected only Elena Volkov, got %v", mentors)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.searching {
		t.Error("Enter should leave the search box")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.search.Value() != "" {
		t.Error("Esc should clear the search")
	}
	if len(m.filteredMentors()) != 4 {
		t.Error("Clearing the search should show every mentor")
	}
}

// TestNoMentorsFound tests the empty search result
func TestNoMentorsFound(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m.currentTab = mentorsTab
	m.search.SetValue("underwater basket weaving")

	content := m.renderMentors()
	if !strings.Contains(content, "No mentors found") {
		t.Error("Expected the empty state")
	}
	if !strings.Contains(content, `"underwater basket weaving"`) {
		t.Error("Empty state should quote the search term")
	}
}

// TestMentorList tests the mentor cards
func TestMentorList(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})

	content := m.renderMentors()
	for _, want := range []string{"Showing 4 expert mentors", "Dr. Sarah Chen", "+1", "Mon 9-11 AM"} {
		if !strings.Contains(content, want) {
			t.Errorf("Mentor list should contain %q", want)
		}
	}
}

// TestAdviceDisabled tests the notice shown without an advisor
func TestAdviceDisabled(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runeKey('2'))

	m = update(t, m, runeKey('a'))
	if m.adviceLoad != nil {
		t.Error("No request should start without an advisor")
	}
	if !strings.Contains(m.notice, "disabled") {
		t.Errorf("Unexpected notice %q", m.notice)
	}
}

// TestAdviceRequest tests the advisor round trip
func TestAdviceRequest(t *testing.T) {
	m := initialModel(Options{
		Mentors: directory.DefaultMentors(),
		Advisor: fakeMatcher{reply: "Elena Volkov is a great fit."},
		Now:     fixedNow,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = update(t, m, runeKey('2'))

	m = update(t, m, runeKey('a'))
	if m.adviceLoad != nil || m.notice == "" {
		t.Error("Asking without a goal should only show a notice")
	}

	m.search.SetValue("learn kubernetes")
	updated, cmd := m.Update(runeKey('a'))
	m = updated.(model)
	if m.adviceLoad == nil {
		t.Fatal("An advice request should be running")
	}
	if cmd == nil {
		t.Fatal("Expected a command for the advisor request")
	}

	reply := matchMentorCmd(context.Background(), m.adviceLoad.id, m.advisor, "learn kubernetes", m.mentors)()
	m = update(t, m, reply)
	if m.adviceLoad != nil {
		t.Error("The advice request should be finished after the reply")
	}
	content := m.renderMentors()
	if !strings.Contains(content, "Elena Volkov is a great fit.") {
		t.Error("Mentor tab should show the advisor reply")
	}
	if !strings.Contains(content, `AI Recommendation for "learn kubernetes"`) {
		t.Error("Recommendation heading should name the goal")
	}
}

// TestCalendarRender tests the month grid view
func TestCalendarRender(t *testing.T) {
	m := update(t, testModel(), tea.WindowSizeMsg{Width: 160, Height: 50})
	m.sessions = schedule.DefaultSessions()

	content := m.renderCalendar()
	for _, want := range []string{"October 2024", "SUN", "SAT", "2:00 PM • James", "10:00 AM • Elena"} {
		if !strings.Contains(content, want) {
			t.Errorf("Calendar should contain %q", want)
		}
	}
	if strings.Contains(content, "Sarah") {
		t.Error("November sessions should not appear in October")
	}
}

// TestRenderCellMoreMarker tests that crowded days collapse into a counter
func TestRenderCellMoreMarker(t *testing.T) {
	cell := calendar.Cell{Day: 5, Sessions: []models.Session{
		{Time: "9:00 AM", Mentor: "A"},
		{Time: "10:00 AM", Mentor: "B"},
		{Time: "11:00 AM", Mentor: "C"},
		{Time: "12:00 PM", Mentor: "D"},
	}}

	out := renderCell(cell, 20, 4)
	if !strings.Contains(out, "9:00 AM • A") {
		t.Error("First session should be shown")
	}
	if !strings.Contains(out, "+2 more") {
		t.Errorf("Expected a +2 more marker, got %q", out)
	}
}

// TestSpinnerAnimation tests spinner tick updates
func TestSpinnerAnimation(t *testing.T) {
	spinner := NewSpinner()
	initialFrame := spinner.View()

	spinner.Next()
	if spinner.View() == initialFrame {
		t.Error("Spinner frame should change after Next()")
	}

	for i := 0; i < 7; i++ {
		spinner.Next()
	}
	if spinner.View() != initialFrame {
		t.Error("Spinner should return to initial frame after full rotation")
	}
}

// TestLoadingIndicator tests the loading indicator
func TestLoadingIndicator(t *testing.T) {
	started := fixedNow()
	indicator := NewLoadingIndicator("Testing...", started)

	view := indicator.View()
	if !strings.Contains(view, "Testing...") {
		t.Error("Loading indicator should show its message")
	}

	indicator.Tick(started.Add(500 * time.Millisecond))
	if strings.Contains(indicator.View(), "(0s)") {
		t.Error("Elapsed time should stay hidden under a second")
	}

	indicator.Tick(started.Add(3 * time.Second))
	if !strings.Contains(indicator.View(), "(3s)") {
		t.Errorf("Expected elapsed seconds, got %q", indicator.View())
	}
}

// TestWrapText tests text wrapping functionality
func TestWrapText(t *testing.T) {
	text := "This is a long text that should be wrapped at the specified width"

	wrapped := wrapText(text, 20)
	for _, line := range wrapped {
		if len(line) > 20 {
			t.Errorf("Line exceeds max width: %s", line)
		}
	}

	wrapped = wrapText(text, 0)
	if len(wrapped) != 1 {
		t.Error("Width 0 should return single line")
	}

	wrapped = wrapText("", 20)
	if len(wrapped) != 1 || wrapped[0] != "" {
		t.Error("Empty text should return single empty line")
	}

	wrapped = wrapText("first\n\nsecond", 20)
	if len(wrapped) != 3 {
		t.Errorf("Paragraph breaks should be kept, got %v", wrapped)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("2:00 PM • James", 10); got != "2:00 PM •…" {
		t.Errorf("got %q", got)
	}
}

// BenchmarkSpinnerAnimation benchmarks spinner performance
func BenchmarkSpinnerAnimation(b *testing.B) {
	spinner := NewSpinner()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		spinner.Next()
		_ = spinner.View()
	}
}
