package models

import "time"

// Group represents a named set of words
type Group struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	WordCount int       `json:"word_count" db:"word_count"` // Recomputed from membership, never stored
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
