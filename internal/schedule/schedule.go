package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strrl/mentorlink/internal/db"
	"github.com/strrl/mentorlink/pkg/models"
)

// DefaultSessions returns the built-in demo schedule
func DefaultSessions() []models.Session {
	return []models.Session{
		{ID: "1", Title: "Career Strategy", Mentor: "James Wilson", Date: "Oct 18, 2024", Time: "2:00 PM", Status: models.StatusUpcoming},
		{ID: "2", Title: "Code Review: Golang Microservices", Mentor: "Elena Volkov", Date: "Oct 22, 2024", Time: "10:00 AM", Status: models.StatusPending},
		{ID: "3", Title: "Figma Prototyping Workshop", Mentor: "Marcus Rodriguez", Date: "Oct 30, 2024", Time: "4:00 PM", Status: models.StatusCompleted},
		{ID: "4", Title: "AI Ethics Discussion", Mentor: "Dr. Sarah Chen", Date: "Nov 05, 2024", Time: "11:00 AM", Status: models.StatusUpcoming},
	}
}

// queryTimeout bounds a single read of a sessions file
const queryTimeout = 30 * time.Second

// Source loads sessions from a newline-delimited JSON file. An empty Path
// means the built-in schedule.
type Source struct {
	Path   string
	Logger *zap.Logger
}

func (s Source) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Load reads every session from the source
func (s Source) Load(ctx context.Context) ([]models.Session, error) {
	if s.Path == "" {
		return DefaultSessions(), nil
	}

	database, err := db.GetDB()
	if err != nil {
		return nil, err
	}

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := database.QueryContext(queryCtx, sessionsQuery(s.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to execute sessions query: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var id, title, mentor, date, timeLabel, status sql.NullString
		if err := rows.Scan(&id, &title, &mentor, &date, &timeLabel, &status); err != nil {
			s.logger().Warn("skipping unreadable session row", zap.Error(err))
			continue
		}

		parsed, err := models.ParseStatus(strings.ToLower(strings.TrimSpace(status.String)))
		if err != nil {
			s.logger().Warn("skipping session with unknown status",
				zap.String("id", id.String),
				zap.String("status", status.String))
			continue
		}

		session := models.Session{
			ID:     id.String,
			Title:  title.String,
			Mentor: mentor.String,
			Date:   date.String,
			Time:   timeLabel.String,
			Status: parsed,
		}
		if session.ID == "" {
			session.ID = uuid.NewString()
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions from %s: %w", s.Path, err)
	}

	s.logger().Debug("sessions loaded", zap.String("path", s.Path), zap.Int("count", len(sessions)))
	return sessions, nil
}

// sessionsQuery reads the file with every column forced to VARCHAR so dates
// stay display strings
func sessionsQuery(path string) string {
	return fmt.Sprintf(`
		SELECT id, title, mentor, "date", "time", status
		FROM read_json('%s',
			format = 'newline_delimited',
			columns = {
				'id': 'VARCHAR',
				'title': 'VARCHAR',
				'mentor': 'VARCHAR',
				'date': 'VARCHAR',
				'time': 'VARCHAR',
				'status': 'VARCHAR'
			}
		)
	`, strings.ReplaceAll(path, "'", "''"))
}

// FilterByStatus returns the sessions with the given status, in order
func FilterByStatus(sessions []models.Session, status models.SessionStatus) []models.Session {
	var filtered []models.Session
	for _, s := range sessions {
		if s.Status == status {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Upcoming returns at most n upcoming sessions
func Upcoming(sessions []models.Session, n int) []models.Session {
	upcoming := FilterByStatus(sessions, models.StatusUpcoming)
	if n >= 0 && len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}

// Summary holds the dashboard counters
type Summary struct {
	Total     int
	Upcoming  int
	Pending   int
	Completed int
	Mentors   int // distinct counterparties
}

// Stats counts sessions per status
func Stats(sessions []models.Session) Summary {
	summary := Summary{Total: len(sessions)}
	mentors := make(map[string]struct{})
	for _, s := range sessions {
		switch s.Status {
		case models.StatusUpcoming:
			summary.Upcoming++
		case models.StatusPending:
			summary.Pending++
		case models.StatusCompleted:
			summary.Completed++
		}
		if s.Mentor != "" {
			mentors[s.Mentor] = struct{}{}
		}
	}
	summary.Mentors = len(mentors)
	return summary
}
