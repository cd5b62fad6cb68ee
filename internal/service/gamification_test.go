package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

type gamificationFixture struct {
	svc          *GamificationService
	users        *fakeUserStore
	practices    *fakePracticeStore
	completions  *fakeCompletionStore
	journals     *fakeJournalStore
	achievements *fakeAchievementStore
}

func newGamificationFixture(users ...*model.User) *gamificationFixture {
	userStore := newFakeUserStore(users...)
	practiceStore := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "body", "Проверка тела"),
			activePractice(2, "emotion", "Назови чувство"),
		},
	}
	completionStore := &fakeCompletionStore{}
	journalStore := &fakeJournalStore{}
	achievementStore := newFakeAchievementStore(
		model.Achievement{Code: AchievementStreak7, Title: "7 дней подряд"},
		model.Achievement{Code: AchievementFirstJournal, Title: "Первая запись"},
	)

	matcher := NewMatcherService(practiceStore)
	matcher.rnd = func(n int) int { return 0 }

	svc := NewGamificationService(
		userStore, practiceStore, completionStore, journalStore, achievementStore, matcher,
	)

	return &gamificationFixture{
		svc:          svc,
		users:        userStore,
		practices:    practiceStore,
		completions:  completionStore,
		journals:     journalStore,
		achievements: achievementStore,
	}
}

func TestRecordCompletion_AwardsPointsAndLogs(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1, Points: 10})
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	result, err := f.svc.RecordCompletion(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, PointsPerPractice, result.PointsAwarded)
	assert.Equal(t, 13, result.TotalPoints)
	assert.Equal(t, 1, result.StreakDays)
	assert.Empty(t, result.NewBadges)
	require.Len(t, f.completions.records, 1)
	assert.Equal(t, now, f.completions.records[0].PerformedAt)
}

func TestRecordCompletion_UnknownUserOrPractice(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})

	_, err := f.svc.RecordCompletion(context.Background(), 999, 1)
	assert.ErrorIs(t, err, errs.UserNotFound)

	_, err = f.svc.RecordCompletion(context.Background(), 1, 999)
	assert.ErrorIs(t, err, errs.PracticeNotFound)
}

func TestRecordCompletion_GrantsStreakBadgeOnce(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	// 最近 6 天各有一条记录，今天的完成凑满 7 天
	for i := 1; i <= 6; i++ {
		f.completions.records = append(f.completions.records, model.CompletionRecord{
			UserID:      1,
			PracticeID:  1,
			PerformedAt: now.AddDate(0, 0, -i),
		})
	}

	result, err := f.svc.RecordCompletion(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, result.StreakDays)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, AchievementStreak7, result.NewBadges[0].Code)

	// 第二次完成不再重复授予
	result, err = f.svc.RecordCompletion(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, result.StreakDays)
	assert.Empty(t, result.NewBadges)
}

func TestStreakDays_CountsBackFromToday(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	for _, offset := range []int{0, -1, -2, -5} {
		f.completions.records = append(f.completions.records, model.CompletionRecord{
			UserID:      1,
			PerformedAt: now.AddDate(0, 0, offset),
		})
	}

	// -5 的记录被 -3/-4 的空档隔断
	streak, err := f.svc.StreakDays(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreakDays_ZeroWithoutTodayRecord(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	streak, err := f.svc.StreakDays(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)

	// 只有昨天的记录，今天断档
	f.completions.records = append(f.completions.records, model.CompletionRecord{
		UserID:      1,
		PerformedAt: now.AddDate(0, 0, -1),
	})
	streak, err = f.svc.StreakDays(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestRecordJournalEntry_FirstEntryBonus(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1, Points: 0})

	note := "тяжёлый день"
	result, err := f.svc.RecordJournalEntry(context.Background(), 1, model.StateSad, &note)
	require.NoError(t, err)

	assert.Equal(t, PointsFirstJournalBonus, result.PointsAwarded)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, AchievementFirstJournal, result.NewBadges[0].Code)
	require.NotNil(t, result.Suggestion)

	user, _ := f.users.GetByID(context.Background(), 1)
	assert.Equal(t, PointsFirstJournalBonus, user.Points)

	// 第二条日记没有奖励
	result, err = f.svc.RecordJournalEntry(context.Background(), 1, model.StateTired, nil)
	require.NoError(t, err)
	assert.Zero(t, result.PointsAwarded)
	assert.Empty(t, result.NewBadges)
	assert.Len(t, f.journals.entries, 2)
}

func TestRecordJournalEntry_InvalidState(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})

	_, err := f.svc.RecordJournalEntry(context.Background(), 1, model.EmotionalState("meh"), nil)
	assert.ErrorIs(t, err, errs.InvalidState)
	assert.Empty(t, f.journals.entries)
}

func TestRecordJournalEntry_EmptyLibraryStillSaves(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1})
	f.practices.practices = nil

	result, err := f.svc.RecordJournalEntry(context.Background(), 1, model.StateCalm, nil)
	require.NoError(t, err)
	assert.Nil(t, result.Suggestion)
	assert.Len(t, f.journals.entries, 1)
}

func TestAnswerSituation(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1, Points: 1})

	correct, points, err := f.svc.AnswerSituation(context.Background(), 1, "2")
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, PointsPerCorrectAnswer, points)

	correct, points, err = f.svc.AnswerSituation(context.Background(), 1, "1")
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Zero(t, points)

	user, _ := f.users.GetByID(context.Background(), 1)
	assert.Equal(t, 1+PointsPerCorrectAnswer, user.Points)

	_, _, err = f.svc.AnswerSituation(context.Background(), 999, "2")
	assert.ErrorIs(t, err, errs.UserNotFound)
}

func TestStats_Aggregates(t *testing.T) {
	f := newGamificationFixture(&model.User{TelegramID: 1, Points: 8})
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	f.completions.records = append(f.completions.records,
		model.CompletionRecord{UserID: 1, PerformedAt: now},
		model.CompletionRecord{UserID: 1, PerformedAt: now.AddDate(0, 0, -1)},
		model.CompletionRecord{UserID: 2, PerformedAt: now},
	)
	f.journals.entries = append(f.journals.entries, model.JournalEntry{UserID: 1, State: model.StateSad})
	_, err := f.achievements.Grant(context.Background(), 1, AchievementFirstJournal)
	require.NoError(t, err)

	stats, err := f.svc.Stats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 8, stats.Points)
	assert.Equal(t, int64(2), stats.Completions)
	assert.Equal(t, int64(1), stats.JournalCount)
	assert.Equal(t, 2, stats.StreakDays)
	require.Len(t, stats.Achievements, 1)
	assert.Equal(t, AchievementFirstJournal, stats.Achievements[0].Code)
}
