package models

import "time"

// LastStudySession summarizes the most recently created study session.
type LastStudySession struct {
	ID              int64     `json:"id" db:"id"`
	GroupID         int64     `json:"group_id" db:"group_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	StudyActivityID int64     `json:"study_activity_id" db:"study_activity_id"`
	GroupName       string    `json:"group_name" db:"group_name"`
}

// StudyProgress represents overall study progress.
// TotalWordsStudied counts distinct words with at least one review and is
// always <= TotalAvailableWords.
type StudyProgress struct {
	TotalWordsStudied   int `json:"total_words_studied" db:"total_words_studied"`
	TotalAvailableWords int `json:"total_available_words" db:"total_available_words"`
}

// QuickStats represents the dashboard's at-a-glance metrics
type QuickStats struct {
	SuccessRate        float64 `json:"success_rate"`
	TotalStudySessions int     `json:"total_study_sessions"`
	TotalActiveGroups  int     `json:"total_active_groups"`
	StudyStreakDays    int     `json:"study_streak_days"`
}
