package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/strrl/mentorlink/internal/calendar"
	"github.com/strrl/mentorlink/internal/directory"
	"github.com/strrl/mentorlink/internal/schedule"
	"github.com/strrl/mentorlink/pkg/models"
)

type tab int

const (
	dashboardTab tab = iota
	mentorsTab
	sessionsTab
)

var tabTitles = []string{"Dashboard", "Find Mentors", "My Sessions"}

type sessionLayout int

const (
	calendarLayout sessionLayout = iota
	listLayout
)

// request is one in-flight async operation. The schedule load and the
// advisor each own a slot, so neither can cancel the other.
type request struct {
	id        string
	cancel    context.CancelFunc
	indicator *LoadingIndicator
}

// MentorMatcher suggests a mentor for a free-text goal
type MentorMatcher interface {
	MatchMentor(ctx context.Context, goal string, mentors []models.Mentor) string
}

// Options configures the TUI
type Options struct {
	User    models.User
	Mentors []models.Mentor
	Source  schedule.Source
	Advisor MentorMatcher   // nil disables AI matching
	Now     func() time.Time // defaults to time.Now
}

type model struct {
	user     models.User
	mentors  []models.Mentor
	sessions []models.Session
	source   schedule.Source
	advisor  MentorMatcher
	now      func() time.Time

	currentTab tab
	layout     sessionLayout
	month      calendar.Month

	search     textinput.Model
	searching  bool
	advice     string
	adviceGoal string

	ctx          context.Context
	sessionsLoad *request
	adviceLoad   *request
	notice       string

	viewport viewport.Model
	ready    bool
	err      error
	width    int
	height   int
}

func initialModel(opts Options) model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	search := textinput.New()
	search.Placeholder = "Search by name, role, or skill..."
	search.Prompt = "🔍 "
	search.CharLimit = 64

	return model{
		user:         opts.User,
		mentors:      opts.Mentors,
		source:       opts.Source,
		advisor:      opts.Advisor,
		now:          now,
		currentTab:   dashboardTab,
		layout:       calendarLayout,
		month:        calendar.MonthOf(now()),
		search:     search,
		ctx:        context.Background(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg { return startLoadMsg{} }
}

// startLoadMsg kicks off the initial schedule load from inside Update, so the
// request bookkeeping lives on the model. The r key reloads the same way.
type startLoadMsg struct{}

// startRequest replaces whatever runs in slot and returns the new request's
// context and ID. The tick command is only returned when no other request was
// already animating.
func (m *model) startRequest(slot **request, message string) (context.Context, string, tea.Cmd) {
	wasLoading := m.loading()
	finishRequest(slot)

	ctx, cancel := context.WithCancel(m.ctx)
	*slot = &request{
		id:        uuid.New().String(),
		cancel:    cancel,
		indicator: NewLoadingIndicator(message, m.now()),
	}

	var tick tea.Cmd
	if !wasLoading {
		tick = tickCmd()
	}
	return ctx, (*slot).id, tick
}

func finishRequest(slot **request) {
	if *slot != nil && (*slot).cancel != nil {
		(*slot).cancel()
	}
	*slot = nil
}

// owns reports whether id belongs to the request running in slot
func owns(slot *request, id string) bool {
	return slot != nil && slot.id == id
}

func (m model) loading() bool {
	return m.sessionsLoad != nil || m.adviceLoad != nil
}

func (m *model) cancelPending() {
	finishRequest(&m.sessionsLoad)
	finishRequest(&m.adviceLoad)
}

func (m *model) reloadSessions() tea.Cmd {
	ctx, id, tick := m.startRequest(&m.sessionsLoad, "Loading sessions...")
	m.updateViewport()
	return tea.Batch(loadSessionsCmd(ctx, id, m.source), tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewHeight := msg.Height - 4

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewHeight
		}
		m.search.Width = msg.Width / 2
		m.updateViewport()

	case startLoadMsg:
		return m, m.reloadSessions()

	case TickMsg:
		if !m.loading() {
			return m, nil
		}
		for _, req := range []*request{m.sessionsLoad, m.adviceLoad} {
			if req != nil {
				req.indicator.Tick(time.Time(msg))
			}
		}
		m.updateViewport()
		return m, tickCmd()

	case SessionsLoadedMsg:
		if !owns(m.sessionsLoad, msg.RequestID) {
			return m, nil
		}
		finishRequest(&m.sessionsLoad)
		if msg.Error != nil {
			if !errors.Is(msg.Error, context.Canceled) {
				m.err = msg.Error
			}
		} else {
			m.sessions = msg.Sessions
			m.err = nil
		}
		m.updateViewport()
		return m, nil

	case AdviceLoadedMsg:
		if !owns(m.adviceLoad, msg.RequestID) {
			return m, nil
		}
		finishRequest(&m.adviceLoad)
		m.advice = msg.Reply
		m.adviceGoal = msg.Goal
		m.updateViewport()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelPending()
			return m, tea.Quit

		case "esc":
			if m.sessionsLoad != nil {
				finishRequest(&m.sessionsLoad)
				m.notice = "Loading cancelled (press r to reload)"
			} else if m.adviceLoad != nil {
				finishRequest(&m.adviceLoad)
				m.notice = "Request cancelled"
			} else if m.currentTab == mentorsTab && m.search.Value() != "" {
				m.search.SetValue("")
				m.advice = ""
				m.adviceGoal = ""
			}
			m.updateViewport()
			return m, nil

		case "r":
			m.notice = ""
			return m, m.reloadSessions()

		case "1", "2", "3":
			m.switchTab(tab(msg.String()[0] - '1'))
			return m, nil

		case "tab":
			m.switchTab((m.currentTab + 1) % tab(len(tabTitles)))
			return m, nil

		case "shift+tab":
			m.switchTab((m.currentTab + tab(len(tabTitles)) - 1) % tab(len(tabTitles)))
			return m, nil
		}

		switch m.currentTab {
		case sessionsTab:
			if handled := m.handleSessionsKey(msg.String()); handled {
				m.updateViewport()
				return m, nil
			}
		case mentorsTab:
			if cmd, handled := m.handleMentorsKey(msg.String()); handled {
				m.updateViewport()
				return m, cmd
			}
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) switchTab(t tab) {
	m.currentTab = t
	m.notice = ""
	m.viewport.GotoTop()
	m.updateViewport()
}

func (m *model) handleSessionsKey(key string) bool {
	switch key {
	case "left", "h":
		m.month = m.month.Prev()
	case "right", "l":
		m.month = m.month.Next()
	case "t":
		m.month = calendar.MonthOf(m.now())
	case "v":
		if m.layout == calendarLayout {
			m.layout = listLayout
		} else {
			m.layout = calendarLayout
		}
	default:
		return false
	}
	return true
}

func (m *model) handleMentorsKey(key string) (tea.Cmd, bool) {
	switch key {
	case "/":
		m.searching = true
		return m.search.Focus(), true
	case "a":
		if m.advisor == nil {
			m.notice = "AI matching is disabled (no API key configured)"
			return nil, true
		}
		goal := strings.TrimSpace(m.search.Value())
		if goal == "" {
			m.notice = "Type a goal in the search box first (press /)"
			return nil, true
		}
		ctx, id, tick := m.startRequest(&m.adviceLoad, "Asking the advisor...")
		m.notice = ""
		return tea.Batch(matchMentorCmd(ctx, id, m.advisor, goal, m.mentors), tick), true
	}
	return nil, false
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.cancelPending()
		return m, tea.Quit
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.advice = ""
	m.adviceGoal = ""
	m.updateViewport()
	return m, cmd
}

func (m *model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

func (m model) renderContent() string {
	switch m.currentTab {
	case mentorsTab:
		return m.renderMentors()
	case sessionsTab:
		if m.layout == listLayout {
			return m.renderSessionList()
		}
		return m.renderCalendar()
	default:
		return m.renderDashboard()
	}
}

func (m model) filteredMentors() []models.Mentor {
	return directory.Filter(m.mentors, m.search.Value())
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	footer := m.renderFooter()

	body := m.viewport.View()
	if m.sessionsLoad != nil {
		body = LoadingOverlay(m.viewport.Width, m.viewport.Height, m.sessionsLoad.indicator)
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabs, body, footer)
}

func (m model) renderHeader() string {
	title := "MentorLink Pro"
	if m.user.Name != "" {
		title = fmt.Sprintf("MentorLink Pro - %s (%s)", m.user.Name, m.user.Role)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	parts := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if tab(i) == m.currentTab {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	return strings.Join(parts, "   ")
}

func (m model) renderFooter() string {
	info := "tab/1-3: switch"
	switch m.currentTab {
	case sessionsTab:
		info += " • ←/→: month • t: today • v: calendar/list"
	case mentorsTab:
		if m.searching {
			info = "enter/esc: done"
		} else {
			info += " • /: search • a: AI match • esc: clear"
		}
	}
	if m.loading() {
		info += " • esc: cancel"
	} else {
		info += " • r: reload"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	if m.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		return noticeStyle.Render(m.notice) + "  " + style.Render(info)
	}
	return style.Render(info)
}

// ShowTUI runs the interactive application until the user quits
func ShowTUI(opts Options) error {
	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(model); ok {
		m.cancelPending()
	}
	return nil
}
