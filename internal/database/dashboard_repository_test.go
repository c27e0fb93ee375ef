package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLastStudySessionEmpty(t *testing.T) {
	setupTestDB(t)

	_, err := NewDashboardRepository().GetLastStudySession(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no sessions, got %v", err)
	}
}

func TestLastStudySessionTieBreak(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	word := seedWord(t, "話す", "hanasu", "to speak")
	group := seedGroup(t, "Speaking", word)
	activity := seedActivity(t, "Conversation")

	// Two sessions created in the same instant: highest id wins
	at := "2026-08-30 10:00:00"
	insertSessionAt(t, group.ID, activity.ID, at)
	second := insertSessionAt(t, group.ID, activity.ID, at)

	last, err := NewDashboardRepository().GetLastStudySession(ctx)
	if err != nil {
		t.Fatalf("GetLastStudySession failed: %v", err)
	}
	if last.ID != second {
		t.Fatalf("last session id = %d, want %d", last.ID, second)
	}
	if last.GroupName != "Speaking" || last.GroupID != group.ID {
		t.Fatalf("unexpected last session: %+v", last)
	}
}

func TestStudyProgressBound(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewDashboardRepository()
	sessions := NewStudySessionRepository()

	first := seedWord(t, "始める", "hajimeru", "to begin")
	second := seedWord(t, "終わる", "owaru", "to end")
	group := seedGroup(t, "Core Verbs", first, second)
	activity := seedActivity(t, "Adventure MUD")
	session := seedSession(t, group.ID, activity.ID)

	progress, err := repo.GetStudyProgress(ctx)
	if err != nil {
		t.Fatalf("GetStudyProgress failed: %v", err)
	}
	if progress.TotalWordsStudied != 0 || progress.TotalAvailableWords != 2 {
		t.Fatalf("progress = %+v, want 0/2", progress)
	}

	// Reviewing the same word repeatedly still counts it once
	for i := 0; i < 3; i++ {
		if _, err := sessions.AddReview(ctx, session.ID, first.ID, true); err != nil {
			t.Fatalf("AddReview failed: %v", err)
		}
	}

	progress, err = repo.GetStudyProgress(ctx)
	if err != nil {
		t.Fatalf("GetStudyProgress failed: %v", err)
	}
	if progress.TotalWordsStudied != 1 || progress.TotalAvailableWords != 2 {
		t.Fatalf("progress = %+v, want 1/2", progress)
	}
	if progress.TotalWordsStudied > progress.TotalAvailableWords {
		t.Fatalf("studied words exceed available words: %+v", progress)
	}
}

func TestQuickStatsZeroReviews(t *testing.T) {
	setupTestDB(t)

	stats, err := NewDashboardRepository().GetQuickStats(context.Background())
	if err != nil {
		t.Fatalf("GetQuickStats failed: %v", err)
	}
	if stats.SuccessRate != 0 {
		t.Fatalf("success rate with zero reviews = %v, want 0", stats.SuccessRate)
	}
	if stats.TotalStudySessions != 0 || stats.TotalActiveGroups != 0 || stats.StudyStreakDays != 0 {
		t.Fatalf("expected all-zero stats, got %+v", stats)
	}
}

func TestQuickStatsValues(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	sessions := NewStudySessionRepository()

	word := seedWord(t, "使う", "tsukau", "to use")
	groupA := seedGroup(t, "Usage", word)
	groupB := seedGroup(t, "Spare", word)
	activity := seedActivity(t, "Quiz")

	sessionA := seedSession(t, groupA.ID, activity.ID)
	seedSession(t, groupA.ID, activity.ID)
	sessionB := seedSession(t, groupB.ID, activity.ID)

	// 2 correct, 1 wrong -> 66.666... -> 66.7
	if _, err := sessions.AddReview(ctx, sessionA.ID, word.ID, true); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if _, err := sessions.AddReview(ctx, sessionA.ID, word.ID, false); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if _, err := sessions.AddReview(ctx, sessionB.ID, word.ID, true); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}

	stats, err := NewDashboardRepository().GetQuickStats(ctx)
	if err != nil {
		t.Fatalf("GetQuickStats failed: %v", err)
	}
	if stats.SuccessRate != 66.7 {
		t.Fatalf("success rate = %v, want 66.7", stats.SuccessRate)
	}
	if stats.TotalStudySessions != 3 {
		t.Fatalf("session count = %d, want 3", stats.TotalStudySessions)
	}
	if stats.TotalActiveGroups != 2 {
		t.Fatalf("active groups = %d, want 2", stats.TotalActiveGroups)
	}
	if stats.StudyStreakDays < 1 {
		t.Fatalf("sessions created today must yield a streak, got %d", stats.StudyStreakDays)
	}
}

func TestQuickStatsStreakScenarios(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	word := seedWord(t, "学ぶ", "manabu", "to learn")
	group := seedGroup(t, "Study", word)
	activity := seedActivity(t, "Drills")

	dayStamp := func(offset int) string {
		return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02") + " 12:00:00"
	}

	// Sessions on D, D-1, D-2 and none on D-3
	insertSessionAt(t, group.ID, activity.ID, dayStamp(0))
	insertSessionAt(t, group.ID, activity.ID, dayStamp(-1))
	insertSessionAt(t, group.ID, activity.ID, dayStamp(-2))
	insertSessionAt(t, group.ID, activity.ID, dayStamp(-4))

	stats, err := NewDashboardRepository().GetQuickStats(ctx)
	if err != nil {
		t.Fatalf("GetQuickStats failed: %v", err)
	}
	if stats.StudyStreakDays != 3 {
		t.Fatalf("streak = %d, want 3", stats.StudyStreakDays)
	}
}

func TestQuickStatsStaleStreakIsZero(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	word := seedWord(t, "休む", "yasumu", "to rest")
	group := seedGroup(t, "Rest", word)
	activity := seedActivity(t, "Drills")

	// Most recent session two days ago: not a current streak
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02") + " 12:00:00"
	threeDaysAgo := time.Now().UTC().AddDate(0, 0, -3).Format("2006-01-02") + " 12:00:00"
	insertSessionAt(t, group.ID, activity.ID, twoDaysAgo)
	insertSessionAt(t, group.ID, activity.ID, threeDaysAgo)

	stats, err := NewDashboardRepository().GetQuickStats(ctx)
	if err != nil {
		t.Fatalf("GetQuickStats failed: %v", err)
	}
	if stats.StudyStreakDays != 0 {
		t.Fatalf("stale streak = %d, want 0", stats.StudyStreakDays)
	}
}
