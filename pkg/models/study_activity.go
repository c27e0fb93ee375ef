package models

import "time"

// StudyActivity represents an external exercise application that can be
// launched against a group. The launch URL is a template parameterized by
// group id, e.g. "http://localhost:8081?group_id={group_id}".
type StudyActivity struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	LaunchURL    string    `json:"launch_url,omitempty" db:"launch_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
