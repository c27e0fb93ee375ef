package database

import (
	"context"
	"testing"

	"github.com/example/langportal/pkg/models"
)

// setupTestDB connects to a fresh SQLite database in a temp directory
func setupTestDB(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("DB_TYPE", "sqlite")
	if err := Connect(); err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		Close()
		DB = nil
	})
}

func seedWord(t *testing.T, japanese, romaji, english string) *models.Word {
	t.Helper()
	word := &models.Word{Japanese: japanese, Romaji: romaji, English: english}
	if err := NewWordRepository().Create(context.Background(), word); err != nil {
		t.Fatalf("failed to seed word %q: %v", japanese, err)
	}
	return word
}

func seedGroup(t *testing.T, name string, words ...*models.Word) *models.Group {
	t.Helper()
	group := &models.Group{Name: name}
	repo := NewGroupRepository()
	if err := repo.Create(context.Background(), group); err != nil {
		t.Fatalf("failed to seed group %q: %v", name, err)
	}
	for _, w := range words {
		if err := repo.AddWord(context.Background(), group.ID, w.ID); err != nil {
			t.Fatalf("failed to add word to group: %v", err)
		}
	}
	return group
}

func seedActivity(t *testing.T, name string) *models.StudyActivity {
	t.Helper()
	activity := &models.StudyActivity{Name: name, Description: name + " practice"}
	if err := NewStudyActivityRepository().Create(context.Background(), activity); err != nil {
		t.Fatalf("failed to seed activity %q: %v", name, err)
	}
	return activity
}

func seedSession(t *testing.T, groupID, activityID int64) *models.StudySession {
	t.Helper()
	session, err := NewStudySessionRepository().Create(context.Background(), groupID, activityID)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

// insertSessionAt inserts a session row with an explicit creation timestamp,
// for tests that need control over dates.
func insertSessionAt(t *testing.T, groupID, activityID int64, createdAt string) int64 {
	t.Helper()
	result, err := DB.Exec(
		"INSERT INTO study_sessions (group_id, study_activity_id, created_at) VALUES (?, ?, ?)",
		groupID, activityID, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to insert session: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get session id: %v", err)
	}
	return id
}
