package database

import (
	"context"
	"fmt"
)

// SystemRepository handles administrative wipes. These sit outside the
// normal append-only contract: study history is otherwise never deleted.
type SystemRepository struct{}

// NewSystemRepository creates a new repository instance
func NewSystemRepository() *SystemRepository {
	return &SystemRepository{}
}

// ResetHistory deletes all study sessions and review items and zeroes the
// word tallies, so counts stay equal to the number of surviving reviews.
func (r *SystemRepository) ResetHistory(ctx context.Context) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	statements := []string{
		"DELETE FROM word_review_items",
		"DELETE FROM study_sessions",
		"UPDATE words SET correct_count = 0, wrong_count = 0",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset history: %v", err)
		}
	}
	return tx.Commit()
}

// FullReset wipes the entire catalog and ledger
func (r *SystemRepository) FullReset(ctx context.Context) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	statements := []string{
		"DELETE FROM word_review_items",
		"DELETE FROM study_sessions",
		"DELETE FROM study_activities",
		"DELETE FROM words_groups",
		"DELETE FROM words",
		"DELETE FROM groups",
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset database: %v", err)
		}
	}
	return tx.Commit()
}
