package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/langportal/pkg/models"
	"github.com/example/langportal/pkg/pagination"
)

// GroupRepository handles database operations for groups and their
// membership edges
type GroupRepository struct{}

// NewGroupRepository creates a new repository instance
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{}
}

// List returns one page of groups with their word counts. Word counts are
// recomputed from membership on every call, never cached.
func (r *GroupRepository) List(ctx context.Context, page, perPage int, sortBy, order string) ([]models.Group, int, error) {
	col := textColumn("g.name")
	if sortBy == "word_count" {
		col = "word_count"
	}

	var total int
	if err := DB.GetContext(ctx, &total, "SELECT COUNT(*) FROM groups"); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %v", err)
	}

	query := fmt.Sprintf(`
		SELECT
			g.id, g.name, g.created_at, g.updated_at,
			COUNT(wg.word_id) AS word_count
		FROM groups g
		LEFT JOIN words_groups wg ON g.id = wg.group_id
		GROUP BY g.id, g.name, g.created_at, g.updated_at
		ORDER BY %s %s, g.id ASC
		LIMIT ? OFFSET ?
	`, col, sortDirection(order))

	var groups []models.Group
	err := DB.SelectContext(ctx, &groups, DB.Rebind(query), perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %v", err)
	}
	return groups, total, nil
}

// GetByID returns a group by ID with its current word count
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	query := DB.Rebind(`
		SELECT
			g.id, g.name, g.created_at, g.updated_at,
			COUNT(wg.word_id) AS word_count
		FROM groups g
		LEFT JOIN words_groups wg ON g.id = wg.group_id
		WHERE g.id = ?
		GROUP BY g.id, g.name, g.created_at, g.updated_at
	`)
	err := DB.GetContext(ctx, &group, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %v", err)
	}
	return &group, nil
}

// Create inserts a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO groups (name)
			VALUES ($1)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRowContext(ctx, query, group.Name).
			Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	}

	result, err := DB.ExecContext(ctx, "INSERT INTO groups (name) VALUES (?)", group.Name)
	if err != nil {
		return fmt.Errorf("failed to create group: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	group.ID = id
	return nil
}

// GetByName looks a group up by name, for the importer
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	var group models.Group
	query := DB.Rebind(`
		SELECT g.id, g.name, g.created_at, g.updated_at, 0 AS word_count
		FROM groups g
		WHERE g.name = ?
	`)
	err := DB.GetContext(ctx, &group, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %v", err)
	}
	return &group, nil
}

// ListWords returns one page of a group's member words
func (r *GroupRepository) ListWords(ctx context.Context, groupID int64, page, perPage int) ([]models.Word, int, error) {
	if _, err := r.GetByID(ctx, groupID); err != nil {
		return nil, 0, err
	}

	var total int
	countQuery := DB.Rebind("SELECT COUNT(*) FROM words_groups WHERE group_id = ?")
	if err := DB.GetContext(ctx, &total, countQuery, groupID); err != nil {
		return nil, 0, fmt.Errorf("failed to count group words: %v", err)
	}

	query := DB.Rebind(fmt.Sprintf(`
		SELECT w.id, w.japanese, w.romaji, w.english, w.correct_count, w.wrong_count, w.created_at, w.updated_at
		FROM words w
		JOIN words_groups wg ON w.id = wg.word_id
		WHERE wg.group_id = ?
		ORDER BY %s ASC, w.id ASC
		LIMIT ? OFFSET ?
	`, textColumn("w.japanese")))

	var words []models.Word
	err := DB.SelectContext(ctx, &words, query, groupID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list group words: %v", err)
	}
	return words, total, nil
}

// AddWord attaches a word to a group. Adding an existing member is a no-op.
func (r *GroupRepository) AddWord(ctx context.Context, groupID, wordID int64) error {
	if _, err := r.GetByID(ctx, groupID); err != nil {
		return err
	}
	var exists bool
	wordQuery := DB.Rebind("SELECT EXISTS(SELECT 1 FROM words WHERE id = ?)")
	if err := DB.GetContext(ctx, &exists, wordQuery, wordID); err != nil {
		return fmt.Errorf("failed to check word: %v", err)
	}
	if !exists {
		return ErrNotFound
	}

	insert := "INSERT INTO words_groups (word_id, group_id) VALUES (?, ?) ON CONFLICT DO NOTHING"
	if _, err := DB.ExecContext(ctx, DB.Rebind(insert), wordID, groupID); err != nil {
		return fmt.Errorf("failed to add word to group: %v", err)
	}
	return nil
}

// RemoveWord detaches a word from a group
func (r *GroupRepository) RemoveWord(ctx context.Context, groupID, wordID int64) error {
	query := DB.Rebind("DELETE FROM words_groups WHERE group_id = ? AND word_id = ?")
	result, err := DB.ExecContext(ctx, query, groupID, wordID)
	if err != nil {
		return fmt.Errorf("failed to remove word from group: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
