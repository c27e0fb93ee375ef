package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/langportal/pkg/models"
)

// DashboardRepository derives dashboard statistics from the ledger and the
// catalog. It is purely read-side: nothing here is persisted, every call
// recomputes from live data inside a single transaction so the caller never
// sees a torn view.
type DashboardRepository struct{}

// NewDashboardRepository creates a new repository instance
func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{}
}

// GetLastStudySession returns the most recently created session across all
// groups, ties broken by highest id. ErrNotFound when no sessions exist yet.
func (r *DashboardRepository) GetLastStudySession(ctx context.Context) (*models.LastStudySession, error) {
	var session models.LastStudySession
	err := DB.GetContext(ctx, &session, `
		SELECT
			ss.id, ss.group_id, ss.created_at, ss.study_activity_id,
			g.name AS group_name
		FROM study_sessions ss
		JOIN groups g ON ss.group_id = g.id
		ORDER BY ss.created_at DESC, ss.id DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last study session: %v", err)
	}
	return &session, nil
}

// GetStudyProgress returns how many distinct words have ever been reviewed
// against how many words exist in the catalog.
func (r *DashboardRepository) GetStudyProgress(ctx context.Context) (*models.StudyProgress, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	var progress models.StudyProgress
	if err := tx.GetContext(ctx, &progress.TotalAvailableWords, "SELECT COUNT(*) FROM words"); err != nil {
		return nil, fmt.Errorf("failed to count words: %v", err)
	}
	if err := tx.GetContext(ctx, &progress.TotalWordsStudied, "SELECT COUNT(DISTINCT word_id) FROM word_review_items"); err != nil {
		return nil, fmt.Errorf("failed to count studied words: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %v", err)
	}
	return &progress, nil
}

// GetQuickStats returns the dashboard's at-a-glance metrics. The success
// rate is a percentage rounded to one decimal and 0 when nothing has been
// reviewed yet.
func (r *DashboardRepository) GetQuickStats(ctx context.Context) (*models.QuickStats, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	var counts struct {
		Correct int `db:"correct"`
		Total   int `db:"total"`
	}
	err = tx.GetContext(ctx, &counts, `
		SELECT
			COUNT(CASE WHEN correct THEN 1 END) AS correct,
			COUNT(*) AS total
		FROM word_review_items
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count review items: %v", err)
	}

	stats := models.QuickStats{}
	if counts.Total > 0 {
		rate := float64(counts.Correct) * 100 / float64(counts.Total)
		stats.SuccessRate = math.Round(rate*10) / 10
	}

	if err := tx.GetContext(ctx, &stats.TotalStudySessions, "SELECT COUNT(*) FROM study_sessions"); err != nil {
		return nil, fmt.Errorf("failed to count study sessions: %v", err)
	}
	if err := tx.GetContext(ctx, &stats.TotalActiveGroups, "SELECT COUNT(DISTINCT group_id) FROM study_sessions"); err != nil {
		return nil, fmt.Errorf("failed to count active groups: %v", err)
	}

	days, err := sessionDays(ctx, tx)
	if err != nil {
		return nil, err
	}
	stats.StudyStreakDays = StreakDays(days, time.Now().UTC())

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %v", err)
	}
	return &stats, nil
}

// sessionDays returns the distinct calendar days with at least one session,
// newest first.
func sessionDays(ctx context.Context, tx *sqlx.Tx) ([]time.Time, error) {
	query := `SELECT DISTINCT date(created_at) FROM study_sessions ORDER BY 1 DESC`
	if DB.DriverName() == "postgres" {
		query = `SELECT DISTINCT to_char(created_at, 'YYYY-MM-DD') FROM study_sessions ORDER BY 1 DESC`
	}

	var raw []string
	if err := tx.SelectContext(ctx, &raw, query); err != nil {
		return nil, fmt.Errorf("failed to get session days: %v", err)
	}

	days := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session day %q: %v", s, err)
		}
		days = append(days, d)
	}
	return days, nil
}
