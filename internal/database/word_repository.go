package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/langportal/pkg/models"
	"github.com/example/langportal/pkg/pagination"
)

// WordRepository handles database operations for words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// wordSortColumns whitelists the sortable fields of a word listing. Ties are
// always broken by id so pages are deterministic.
var wordSortColumns = map[string]bool{
	"japanese":      true,
	"romaji":        true,
	"english":       true,
	"correct_count": false,
	"wrong_count":   false,
}

// List returns one page of words plus the total count. sortBy must be one of
// the whitelisted columns; anything else falls back to japanese.
func (r *WordRepository) List(ctx context.Context, page, perPage int, sortBy, order string) ([]models.Word, int, error) {
	textual, ok := wordSortColumns[sortBy]
	if !ok {
		sortBy = "japanese"
		textual = true
	}
	col := sortBy
	if textual {
		col = textColumn(col)
	}

	var total int
	if err := DB.GetContext(ctx, &total, "SELECT COUNT(*) FROM words"); err != nil {
		return nil, 0, fmt.Errorf("failed to count words: %v", err)
	}

	query := fmt.Sprintf(`
		SELECT id, japanese, romaji, english, correct_count, wrong_count, created_at, updated_at
		FROM words
		ORDER BY %s %s, id ASC
		LIMIT ? OFFSET ?
	`, col, sortDirection(order))

	var words []models.Word
	err := DB.SelectContext(ctx, &words, DB.Rebind(query), perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list words: %v", err)
	}
	return words, total, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind(`
		SELECT id, japanese, romaji, english, correct_count, wrong_count, created_at, updated_at
		FROM words
		WHERE id = ?
	`)
	err := DB.GetContext(ctx, &word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}

// Create inserts a new word with zero tallies
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO words (japanese, romaji, english)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRowContext(ctx, query, word.Japanese, word.Romaji, word.English).
			Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	}

	result, err := DB.ExecContext(ctx, `
		INSERT INTO words (japanese, romaji, english)
		VALUES (?, ?, ?)
	`, word.Japanese, word.Romaji, word.English)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id
	return nil
}

// UpdateTranslations modifies the translation fields of a word. Tallies are
// deliberately untouched; reviews are their only mutation path.
func (r *WordRepository) UpdateTranslations(ctx context.Context, word *models.Word) error {
	query := DB.Rebind(`
		UPDATE words
		SET romaji = ?, english = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	result, err := DB.ExecContext(ctx, query, word.Romaji, word.English, word.ID)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
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

// GetByJapanese looks a word up by its native form, for the importer
func (r *WordRepository) GetByJapanese(ctx context.Context, japanese string) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind(`
		SELECT id, japanese, romaji, english, correct_count, wrong_count, created_at, updated_at
		FROM words
		WHERE japanese = ?
	`)
	err := DB.GetContext(ctx, &word, query, japanese)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}
