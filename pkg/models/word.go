package models

import "time"

// Word represents a vocabulary word to be studied
type Word struct {
	ID           int64     `json:"id" db:"id"`
	Japanese     string    `json:"japanese" db:"japanese"`
	Romaji       string    `json:"romaji" db:"romaji"`
	English      string    `json:"english" db:"english"`
	CorrectCount int       `json:"correct_count" db:"correct_count"` // Running tally, incremented only by reviews
	WrongCount   int       `json:"wrong_count" db:"wrong_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SessionWord is a word reviewed within one study session, with the
// correctness tallies scoped to that session only.
type SessionWord struct {
	ID           int64  `json:"id" db:"id"`
	Japanese     string `json:"japanese" db:"japanese"`
	Romaji       string `json:"romaji" db:"romaji"`
	English      string `json:"english" db:"english"`
	CorrectCount int    `json:"correct_count" db:"correct_count"`
	WrongCount   int    `json:"wrong_count" db:"wrong_count"`
}
