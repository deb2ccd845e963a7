package schedule

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/mentorlink/internal/db"
	"github.com/strrl/mentorlink/pkg/models"
)

func TestDefaultSessions(t *testing.T) {
	sessions := DefaultSessions()
	require.Len(t, sessions, 4)
	assert.Equal(t, "Oct 18, 2024", sessions[0].Date)
	assert.Equal(t, models.StatusCompleted, sessions[2].Status)

	// Callers get their own copy
	sessions[0].Title = "changed"
	assert.Equal(t, "Career Strategy", DefaultSessions()[0].Title)
}

func TestStats(t *testing.T) {
	summary := Stats(DefaultSessions())
	assert.Equal(t, Summary{Total: 4, Upcoming: 2, Pending: 1, Completed: 1, Mentors: 4}, summary)
	assert.Equal(t, Summary{}, Stats(nil))
}

func TestFilterByStatus(t *testing.T) {
	upcoming := FilterByStatus(DefaultSessions(), models.StatusUpcoming)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "1", upcoming[0].ID)
	assert.Equal(t, "4", upcoming[1].ID)
	assert.Empty(t, FilterByStatus(nil, models.StatusPending))
}

func TestUpcoming(t *testing.T) {
	assert.Len(t, Upcoming(DefaultSessions(), 1), 1)
	assert.Len(t, Upcoming(DefaultSessions(), 10), 2)
	assert.Len(t, Upcoming(DefaultSessions(), -1), 2)
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	sessions, err := Source{}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSessions(), sessions)
}

func TestLoadAsync(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sessions, err := Source{}.Await(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 4)
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	select {
	case result, ok := <-Source{}.LoadAsync(ctx):
		assert.False(t, ok, "no result expected after cancellation, got %+v", result)
	case <-time.After(5 * time.Second):
		t.Fatal("channel was not closed after cancellation")
	}

	_, err := Source{}.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromFile(t *testing.T) {
	if _, err := db.GetDB(); err != nil {
		t.Skipf("Skipping test, DuckDB unavailable: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sessions.jsonl")
	content := `{"id": "10", "title": "Mock Interview", "mentor": "Elena Volkov", "date": "2024-10-22", "time": "9:00 AM", "status": "pending"}
{"id": "11", "title": "Unknown", "mentor": "Nobody", "date": "Oct 23, 2024", "time": "1:00 PM", "status": "cancelled"}
{"title": "Portfolio Review", "mentor": "Marcus Rodriguez", "date": "Oct 24, 2024", "time": "3:00 PM", "status": "Upcoming"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sessions, err := Source{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	assert.Equal(t, "10", sessions[0].ID)
	assert.Equal(t, "2024-10-22", sessions[0].Date)
	assert.Equal(t, models.StatusPending, sessions[0].Status)

	assert.NotEmpty(t, sessions[1].ID)
	assert.Equal(t, models.StatusUpcoming, sessions[1].Status)
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := db.GetDB(); err != nil {
		t.Skipf("Skipping test, DuckDB unavailable: %v", err)
	}

	_, err := Source{Path: filepath.Join(t.TempDir(), "missing.jsonl")}.Load(context.Background())
	assert.Error(t, err)
}
