package models

import "time"

// StudySession represents one run of a study activity against a group.
// Immutable after creation; it only accumulates word review items.
type StudySession struct {
	ID              int64     `json:"id" db:"id"`
	GroupID         int64     `json:"group_id" db:"group_id"`
	StudyActivityID int64     `json:"study_activity_id" db:"study_activity_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// StudySessionDetail is a session joined with display fields for listings.
// StartTime is the session's creation time; EndTime is the timestamp of the
// most recent review item, or StartTime when no reviews exist yet.
type StudySessionDetail struct {
	ID               int64     `json:"id" db:"id"`
	ActivityName     string    `json:"activity_name" db:"activity_name"`
	GroupName        string    `json:"group_name" db:"group_name"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
	ReviewItemsCount int       `json:"review_items_count" db:"review_items_count"`
}

// WordReviewItem is an immutable record of one correctness outcome for one
// word within one session.
type WordReviewItem struct {
	ID             int64     `json:"id" db:"id"`
	StudySessionID int64     `json:"study_session_id" db:"study_session_id"`
	WordID         int64     `json:"word_id" db:"word_id"`
	Correct        bool      `json:"correct" db:"correct"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ReviewConfirmation echoes a recorded review back to the caller.
type ReviewConfirmation struct {
	Success        bool  `json:"success"`
	WordID         int64 `json:"word_id"`
	StudySessionID int64 `json:"study_session_id"`
	Correct        bool  `json:"correct"`
}
