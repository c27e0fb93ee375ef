package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/langportal/pkg/models"
)

// StudyActivityRepository handles database operations for the activity catalog
type StudyActivityRepository struct{}

// NewStudyActivityRepository creates a new repository instance
func NewStudyActivityRepository() *StudyActivityRepository {
	return &StudyActivityRepository{}
}

// List returns all registered study activities, newest first
func (r *StudyActivityRepository) List(ctx context.Context) ([]models.StudyActivity, error) {
	var activities []models.StudyActivity
	err := DB.SelectContext(ctx, &activities, `
		SELECT id, name, description, thumbnail_url, launch_url, created_at
		FROM study_activities
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list study activities: %v", err)
	}
	return activities, nil
}

// GetByID returns a study activity by ID
func (r *StudyActivityRepository) GetByID(ctx context.Context, id int64) (*models.StudyActivity, error) {
	var activity models.StudyActivity
	query := DB.Rebind(`
		SELECT id, name, description, thumbnail_url, launch_url, created_at
		FROM study_activities
		WHERE id = ?
	`)
	err := DB.GetContext(ctx, &activity, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study activity: %v", err)
	}
	return &activity, nil
}

// Create registers a new study activity
func (r *StudyActivityRepository) Create(ctx context.Context, activity *models.StudyActivity) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO study_activities (name, description, thumbnail_url, launch_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		return DB.QueryRowContext(ctx, query,
			activity.Name, activity.Description, activity.ThumbnailURL, activity.LaunchURL,
		).Scan(&activity.ID, &activity.CreatedAt)
	}

	result, err := DB.ExecContext(ctx, `
		INSERT INTO study_activities (name, description, thumbnail_url, launch_url)
		VALUES (?, ?, ?, ?)
	`, activity.Name, activity.Description, activity.ThumbnailURL, activity.LaunchURL)
	if err != nil {
		return fmt.Errorf("failed to create study activity: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	activity.ID = id

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	activity.CreatedAt = created.CreatedAt
	return nil
}
