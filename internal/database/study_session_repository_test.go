package database

import (
	"context"
	"errors"
	"testing"

	"github.com/example/langportal/pkg/models"
)

func TestCreateSessionValidatesReferences(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	word := seedWord(t, "始める", "hajimeru", "to begin")
	group := seedGroup(t, "Core Verbs", word)
	activity := seedActivity(t, "Adventure MUD")

	if _, err := repo.Create(ctx, group.ID+999, activity.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing group, got %v", err)
	}
	if _, err := repo.Create(ctx, group.ID, activity.ID+999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing activity, got %v", err)
	}

	session, err := repo.Create(ctx, group.ID, activity.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID == 0 || session.GroupID != group.ID || session.StudyActivityID != activity.ID {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.CreatedAt.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestAddReviewTallyInvariant(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()
	words := NewWordRepository()

	word := seedWord(t, "食べる", "taberu", "to eat")
	group := seedGroup(t, "Verbs", word)
	activity := seedActivity(t, "Typing Tutor")
	session := seedSession(t, group.ID, activity.ID)

	outcomes := []bool{true, false, true, true, false}
	for _, correct := range outcomes {
		if _, err := repo.AddReview(ctx, session.ID, word.ID, correct); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	got, err := words.GetByID(ctx, word.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CorrectCount != 3 || got.WrongCount != 2 {
		t.Fatalf("tallies = (%d, %d), want (3, 2)", got.CorrectCount, got.WrongCount)
	}

	var reviewCount int
	if err := DB.Get(&reviewCount, "SELECT COUNT(*) FROM word_review_items WHERE word_id = ?", word.ID); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got.CorrectCount+got.WrongCount != reviewCount {
		t.Fatalf("correct+wrong = %d, review items = %d", got.CorrectCount+got.WrongCount, reviewCount)
	}
}

func TestAddReviewMembershipGuard(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()
	words := NewWordRepository()

	member := seedWord(t, "会う", "au", "to meet")
	outsider := seedWord(t, "走る", "hashiru", "to run")
	group := seedGroup(t, "Social Verbs", member)
	activity := seedActivity(t, "Flashcards")
	session := seedSession(t, group.ID, activity.ID)

	_, err := repo.AddReview(ctx, session.ID, outsider.ID, true)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}

	// The failed review must leave no trace: no review record, no tally bump
	var reviewCount int
	if err := DB.Get(&reviewCount, "SELECT COUNT(*) FROM word_review_items"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if reviewCount != 0 {
		t.Fatalf("expected no review items, found %d", reviewCount)
	}
	got, err := words.GetByID(ctx, outsider.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CorrectCount != 0 || got.WrongCount != 0 {
		t.Fatalf("tallies changed on failed review: (%d, %d)", got.CorrectCount, got.WrongCount)
	}
}

func TestAddReviewMissingSession(t *testing.T) {
	setupTestDB(t)
	repo := NewStudySessionRepository()

	if _, err := repo.AddReview(context.Background(), 42, 1, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionEndTimeDefaultsToStart(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	word := seedWord(t, "見る", "miru", "to see")
	group := seedGroup(t, "Perception", word)
	activity := seedActivity(t, "Adventure MUD")
	session := seedSession(t, group.ID, activity.ID)

	detail, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !detail.EndTime.Equal(detail.StartTime) {
		t.Fatalf("end time %v != start time %v for a session without reviews",
			detail.EndTime, detail.StartTime)
	}
	if detail.ReviewItemsCount != 0 {
		t.Fatalf("expected 0 review items, got %d", detail.ReviewItemsCount)
	}
	if detail.GroupName != "Perception" || detail.ActivityName != "Adventure MUD" {
		t.Fatalf("unexpected display fields: %+v", detail)
	}
}

func TestListSessionsReviewCount(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	word := seedWord(t, "読む", "yomu", "to read")
	group := seedGroup(t, "Reading", word)
	activity := seedActivity(t, "Typing Tutor")
	session := seedSession(t, group.ID, activity.ID)

	for i := 0; i < 3; i++ {
		if _, err := repo.AddReview(ctx, session.ID, word.ID, i%2 == 0); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	sessions, total, err := repo.List(ctx, 1, 100, "", "desc")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(sessions) != 1 {
		t.Fatalf("expected one session, got total=%d len=%d", total, len(sessions))
	}
	if sessions[0].ReviewItemsCount != 3 {
		t.Fatalf("review count = %d, want 3", sessions[0].ReviewItemsCount)
	}
	if sessions[0].EndTime.Before(sessions[0].StartTime) {
		t.Fatalf("end time %v before start time %v", sessions[0].EndTime, sessions[0].StartTime)
	}
}

func TestListSessionWords(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	first := seedWord(t, "行く", "iku", "to go")
	second := seedWord(t, "来る", "kuru", "to come")
	group := seedGroup(t, "Movement", first, second)
	activity := seedActivity(t, "Flashcards")
	session := seedSession(t, group.ID, activity.ID)

	// first: 2 correct, 1 wrong; second: 1 wrong
	for _, r := range []struct {
		word    *models.Word
		correct bool
	}{
		{first, true}, {first, true}, {first, false}, {second, false},
	} {
		if _, err := repo.AddReview(ctx, session.ID, r.word.ID, r.correct); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	sessionWords, total, err := repo.ListSessionWords(ctx, session.ID, 1, 100)
	if err != nil {
		t.Fatalf("ListSessionWords failed: %v", err)
	}
	if total != 2 || len(sessionWords) != 2 {
		t.Fatalf("expected 2 distinct words, got total=%d len=%d", total, len(sessionWords))
	}

	byID := make(map[int64]models.SessionWord)
	for _, w := range sessionWords {
		byID[w.ID] = w
	}
	if w := byID[first.ID]; w.CorrectCount != 2 || w.WrongCount != 1 {
		t.Fatalf("first word tallies = (%d, %d), want (2, 1)", w.CorrectCount, w.WrongCount)
	}
	if w := byID[second.ID]; w.CorrectCount != 0 || w.WrongCount != 1 {
		t.Fatalf("second word tallies = (%d, %d), want (0, 1)", w.CorrectCount, w.WrongCount)
	}

	if _, _, err := repo.ListSessionWords(ctx, session.ID+999, 1, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing session, got %v", err)
	}
}

func TestListSessionsByGroup(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	word := seedWord(t, "書く", "kaku", "to write")
	groupA := seedGroup(t, "Writing", word)
	groupB := seedGroup(t, "Empty Group")
	activity := seedActivity(t, "Writing Practice")
	seedSession(t, groupA.ID, activity.ID)
	seedSession(t, groupA.ID, activity.ID)

	sessions, total, err := repo.ListByGroup(ctx, groupA.ID, 1, 100)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if total != 2 || len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got total=%d len=%d", total, len(sessions))
	}

	sessions, total, err = repo.ListByGroup(ctx, groupB.ID, 1, 100)
	if err != nil {
		t.Fatalf("ListByGroup failed for empty group: %v", err)
	}
	if total != 0 || len(sessions) != 0 {
		t.Fatalf("expected no sessions, got total=%d len=%d", total, len(sessions))
	}

	if _, _, err := repo.ListByGroup(ctx, 999, 1, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing group, got %v", err)
	}
}

func TestDuplicateReviewsCreateDistinctRecords(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewStudySessionRepository()

	word := seedWord(t, "聞く", "kiku", "to listen")
	group := seedGroup(t, "Listening", word)
	activity := seedActivity(t, "Listening Comp")
	session := seedSession(t, group.ID, activity.ID)

	for i := 0; i < 2; i++ {
		if _, err := repo.AddReview(ctx, session.ID, word.ID, true); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM word_review_items"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("duplicate review must not merge: got %d records, want 2", count)
	}
}
