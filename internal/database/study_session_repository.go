package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/langportal/pkg/models"
	"github.com/example/langportal/pkg/pagination"
)

// StudySessionRepository handles the append-only ledger of study sessions
// and their word review items
type StudySessionRepository struct{}

// NewStudySessionRepository creates a new repository instance
func NewStudySessionRepository() *StudySessionRepository {
	return &StudySessionRepository{}
}

// sessionSortExprs maps caller-facing sort fields onto SQL expressions over
// the listing query below. End time is the latest review timestamp, falling
// back to the session's start when no reviews exist yet.
func sessionSortExpr(sortBy string) string {
	switch sortBy {
	case "activity_name":
		return textColumn("activity_name")
	case "group_name":
		return textColumn("group_name")
	case "end_time":
		return "COALESCE(MAX(wri.created_at), ss.created_at)"
	case "review_items_count":
		return "COUNT(wri.id)"
	default:
		return "ss.created_at"
	}
}

// Create starts a new study session for a group and activity. Both ids must
// reference existing records.
func (r *StudySessionRepository) Create(ctx context.Context, groupID, activityID int64) (*models.StudySession, error) {
	var exists bool
	groupQuery := DB.Rebind("SELECT EXISTS(SELECT 1 FROM groups WHERE id = ?)")
	if err := DB.GetContext(ctx, &exists, groupQuery, groupID); err != nil {
		return nil, fmt.Errorf("failed to check group: %v", err)
	}
	if !exists {
		return nil, ErrNotFound
	}
	activityQuery := DB.Rebind("SELECT EXISTS(SELECT 1 FROM study_activities WHERE id = ?)")
	if err := DB.GetContext(ctx, &exists, activityQuery, activityID); err != nil {
		return nil, fmt.Errorf("failed to check study activity: %v", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	var id int64
	if DB.DriverName() == "postgres" {
		err := DB.QueryRowContext(ctx, `
			INSERT INTO study_sessions (group_id, study_activity_id)
			VALUES ($1, $2)
			RETURNING id
		`, groupID, activityID).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to create study session: %v", err)
		}
	} else {
		result, err := DB.ExecContext(ctx, `
			INSERT INTO study_sessions (group_id, study_activity_id)
			VALUES (?, ?)
		`, groupID, activityID)
		if err != nil {
			return nil, fmt.Errorf("failed to create study session: %v", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get last insert ID: %v", err)
		}
	}

	var session models.StudySession
	query := DB.Rebind(`
		SELECT id, group_id, study_activity_id, created_at
		FROM study_sessions
		WHERE id = ?
	`)
	if err := DB.GetContext(ctx, &session, query, id); err != nil {
		return nil, fmt.Errorf("failed to read back study session: %v", err)
	}
	return &session, nil
}

// GetByID returns a session joined with its display fields
func (r *StudySessionRepository) GetByID(ctx context.Context, id int64) (*models.StudySessionDetail, error) {
	var detail models.StudySessionDetail
	query := DB.Rebind(`
		SELECT
			ss.id,
			sa.name AS activity_name,
			g.name AS group_name,
			ss.created_at AS start_time,
			ss.created_at AS end_time
		FROM study_sessions ss
		JOIN groups g ON ss.group_id = g.id
		JOIN study_activities sa ON ss.study_activity_id = sa.id
		WHERE ss.id = ?
	`)
	err := DB.GetContext(ctx, &detail, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study session: %v", err)
	}
	if err := r.enrich(ctx, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns one page of sessions joined with group and activity names.
// The join happens at read time so renames never leave stale listings.
func (r *StudySessionRepository) List(ctx context.Context, page, perPage int, sortBy, order string) ([]models.StudySessionDetail, int, error) {
	var total int
	if err := DB.GetContext(ctx, &total, "SELECT COUNT(*) FROM study_sessions"); err != nil {
		return nil, 0, fmt.Errorf("failed to count study sessions: %v", err)
	}

	query := fmt.Sprintf(`
		SELECT
			ss.id,
			sa.name AS activity_name,
			g.name AS group_name,
			ss.created_at AS start_time,
			ss.created_at AS end_time
		FROM study_sessions ss
		JOIN groups g ON ss.group_id = g.id
		JOIN study_activities sa ON ss.study_activity_id = sa.id
		LEFT JOIN word_review_items wri ON wri.study_session_id = ss.id
		GROUP BY ss.id, sa.name, g.name, ss.created_at
		ORDER BY %s %s, ss.id ASC
		LIMIT ? OFFSET ?
	`, sessionSortExpr(sortBy), sortDirection(order))

	var sessions []models.StudySessionDetail
	err := DB.SelectContext(ctx, &sessions, DB.Rebind(query), perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list study sessions: %v", err)
	}
	for i := range sessions {
		if err := r.enrich(ctx, &sessions[i]); err != nil {
			return nil, 0, err
		}
	}
	return sessions, total, nil
}

// ListByGroup returns one page of a group's sessions, newest first
func (r *StudySessionRepository) ListByGroup(ctx context.Context, groupID int64, page, perPage int) ([]models.StudySessionDetail, int, error) {
	var exists bool
	groupQuery := DB.Rebind("SELECT EXISTS(SELECT 1 FROM groups WHERE id = ?)")
	if err := DB.GetContext(ctx, &exists, groupQuery, groupID); err != nil {
		return nil, 0, fmt.Errorf("failed to check group: %v", err)
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	var total int
	countQuery := DB.Rebind("SELECT COUNT(*) FROM study_sessions WHERE group_id = ?")
	if err := DB.GetContext(ctx, &total, countQuery, groupID); err != nil {
		return nil, 0, fmt.Errorf("failed to count group sessions: %v", err)
	}

	query := DB.Rebind(`
		SELECT
			ss.id,
			sa.name AS activity_name,
			g.name AS group_name,
			ss.created_at AS start_time,
			ss.created_at AS end_time
		FROM study_sessions ss
		JOIN groups g ON ss.group_id = g.id
		JOIN study_activities sa ON ss.study_activity_id = sa.id
		WHERE ss.group_id = ?
		ORDER BY ss.created_at DESC, ss.id DESC
		LIMIT ? OFFSET ?
	`)

	var sessions []models.StudySessionDetail
	err := DB.SelectContext(ctx, &sessions, query, groupID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list group sessions: %v", err)
	}
	for i := range sessions {
		if err := r.enrich(ctx, &sessions[i]); err != nil {
			return nil, 0, err
		}
	}
	return sessions, total, nil
}

// enrich fills the review count and end time of a session detail row. Both
// come from plain-column queries so timestamp scanning works on every driver.
func (r *StudySessionRepository) enrich(ctx context.Context, detail *models.StudySessionDetail) error {
	countQuery := DB.Rebind("SELECT COUNT(*) FROM word_review_items WHERE study_session_id = ?")
	if err := DB.GetContext(ctx, &detail.ReviewItemsCount, countQuery, detail.ID); err != nil {
		return fmt.Errorf("failed to count review items: %v", err)
	}

	var last models.WordReviewItem
	lastQuery := DB.Rebind(`
		SELECT id, study_session_id, word_id, correct, created_at
		FROM word_review_items
		WHERE study_session_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)
	err := DB.GetContext(ctx, &last, lastQuery, detail.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // no reviews yet, end time stays at start time
	}
	if err != nil {
		return fmt.Errorf("failed to get last review item: %v", err)
	}
	detail.EndTime = last.CreatedAt
	return nil
}

// AddReview appends a word review item to a session and bumps the word's
// tally. The insert and the increment are one transaction, and the increment
// is relative, so concurrent reviews of the same word never lose an update.
func (r *StudySessionRepository) AddReview(ctx context.Context, sessionID, wordID int64, correct bool) (*models.ReviewConfirmation, error) {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	var groupID int64
	sessionQuery := tx.Rebind("SELECT group_id FROM study_sessions WHERE id = ?")
	err = tx.GetContext(ctx, &groupID, sessionQuery, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study session: %v", err)
	}

	// The word must be a member of the session's group
	var member bool
	memberQuery := tx.Rebind("SELECT EXISTS(SELECT 1 FROM words_groups WHERE group_id = ? AND word_id = ?)")
	if err := tx.GetContext(ctx, &member, memberQuery, groupID, wordID); err != nil {
		return nil, fmt.Errorf("failed to check group membership: %v", err)
	}
	if !member {
		return nil, ErrInvalidReference
	}

	insert := tx.Rebind(`
		INSERT INTO word_review_items (study_session_id, word_id, correct)
		VALUES (?, ?, ?)
	`)
	if _, err := tx.ExecContext(ctx, insert, sessionID, wordID, correct); err != nil {
		return nil, fmt.Errorf("failed to insert review item: %v", err)
	}

	column := "wrong_count"
	if correct {
		column = "correct_count"
	}
	update := tx.Rebind(fmt.Sprintf(`
		UPDATE words
		SET %s = %s + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, column, column))
	if _, err := tx.ExecContext(ctx, update, wordID); err != nil {
		return nil, fmt.Errorf("failed to update word tally: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review: %v", err)
	}

	return &models.ReviewConfirmation{
		Success:        true,
		WordID:         wordID,
		StudySessionID: sessionID,
		Correct:        correct,
	}, nil
}

// ListSessionWords returns one page of the distinct words reviewed in a
// session, with tallies scoped to that session.
func (r *StudySessionRepository) ListSessionWords(ctx context.Context, sessionID int64, page, perPage int) ([]models.SessionWord, int, error) {
	var exists bool
	sessionQuery := DB.Rebind("SELECT EXISTS(SELECT 1 FROM study_sessions WHERE id = ?)")
	if err := DB.GetContext(ctx, &exists, sessionQuery, sessionID); err != nil {
		return nil, 0, fmt.Errorf("failed to check study session: %v", err)
	}
	if !exists {
		return nil, 0, ErrNotFound
	}

	var total int
	countQuery := DB.Rebind("SELECT COUNT(DISTINCT word_id) FROM word_review_items WHERE study_session_id = ?")
	if err := DB.GetContext(ctx, &total, countQuery, sessionID); err != nil {
		return nil, 0, fmt.Errorf("failed to count session words: %v", err)
	}

	query := DB.Rebind(fmt.Sprintf(`
		SELECT
			w.id, w.japanese, w.romaji, w.english,
			SUM(CASE WHEN wri.correct THEN 1 ELSE 0 END) AS correct_count,
			SUM(CASE WHEN wri.correct THEN 0 ELSE 1 END) AS wrong_count
		FROM words w
		JOIN word_review_items wri ON w.id = wri.word_id
		WHERE wri.study_session_id = ?
		GROUP BY w.id, w.japanese, w.romaji, w.english
		ORDER BY %s ASC, w.id ASC
		LIMIT ? OFFSET ?
	`, textColumn("w.japanese")))

	var words []models.SessionWord
	err := DB.SelectContext(ctx, &words, query, sessionID, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list session words: %v", err)
	}
	return words, total, nil
}
