package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
	"Opora/pkg/logger"
	"Opora/pkg/metrics"
)

const (
	// 积分规则
	PointsPerPractice       = 3
	PointsPerCorrectAnswer  = 2
	PointsFirstJournalBonus = 5

	// 连续天数
	streakLookbackDays   = 21
	streakAchievementMin = 7

	AchievementStreak7      = "streak_7"
	AchievementFirstJournal = "first_journal"

	// 情景小游戏的正确选项
	minigameCorrectChoice = "2"
)

// CompletionResult 练习完成的结算结果
type CompletionResult struct {
	PointsAwarded int
	TotalPoints   int
	StreakDays    int
	NewBadges     []model.Achievement
}

// JournalResult 日记写入的结算结果
type JournalResult struct {
	PointsAwarded int
	NewBadges     []model.Achievement
	Suggestion    *model.Practice
}

// UserStats 用户统计快照
type UserStats struct {
	Points       int
	Completions  int64
	JournalCount int64
	StreakDays   int
	Achievements []model.Achievement
}

// GamificationService 积分、连续天数与成就结算
type GamificationService struct {
	users        UserStore
	practices    PracticeStore
	completions  CompletionStore
	journals     JournalStore
	achievements AchievementStore
	matcher      *MatcherService

	now func() time.Time
}

func NewGamificationService(
	users UserStore,
	practices PracticeStore,
	completions CompletionStore,
	journals JournalStore,
	achievements AchievementStore,
	matcher *MatcherService,
) *GamificationService {
	return &GamificationService{
		users:        users,
		practices:    practices,
		completions:  completions,
		journals:     journals,
		achievements: achievements,
		matcher:      matcher,
		now:          time.Now,
	}
}

// RecordCompletion 记录练习完成：写日志、加分、重算 streak、按需授予成就
func (s *GamificationService) RecordCompletion(ctx context.Context, userID, practiceID int64) (*CompletionResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}

	practice, err := s.practices.GetByID(ctx, practiceID)
	if err != nil {
		return nil, err
	}
	if practice == nil {
		return nil, errs.PracticeNotFound
	}

	if err := s.completions.Insert(ctx, &model.CompletionRecord{
		UserID:      userID,
		PracticeID:  practiceID,
		PerformedAt: s.now(),
	}); err != nil {
		return nil, err
	}

	total, err := s.users.AddPoints(ctx, userID, PointsPerPractice)
	if err != nil {
		return nil, err
	}

	streak, err := s.StreakDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{
		PointsAwarded: PointsPerPractice,
		TotalPoints:   total,
		StreakDays:    streak,
	}

	if streak >= streakAchievementMin {
		badge, err := s.grant(ctx, userID, AchievementStreak7)
		if err != nil {
			return nil, err
		}
		if badge != nil {
			result.NewBadges = append(result.NewBadges, *badge)
		}
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordPracticeCompleted(ctx, practice.CategoryCode)
	}

	logger.Logger.Info("Practice completion recorded",
		zap.Int64("user_id", userID),
		zap.Int64("practice_id", practiceID),
		zap.Int("streak_days", streak),
		zap.Int("total_points", total),
	)

	return result, nil
}

// RecordJournalEntry 记录日记；首条日记授予成就并加奖励分，附带一条随机练习建议
func (s *GamificationService) RecordJournalEntry(ctx context.Context, userID int64, state model.EmotionalState, note *string) (*JournalResult, error) {
	if !state.Valid() {
		return nil, errs.InvalidState
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}

	if err := s.journals.Insert(ctx, &model.JournalEntry{
		UserID:    userID,
		State:     state,
		Note:      note,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, err
	}

	result := &JournalResult{}

	count, err := s.journals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		badge, err := s.grant(ctx, userID, AchievementFirstJournal)
		if err != nil {
			return nil, err
		}
		if badge != nil {
			if _, err := s.users.AddPoints(ctx, userID, PointsFirstJournalBonus); err != nil {
				return nil, err
			}
			result.PointsAwarded = PointsFirstJournalBonus
			result.NewBadges = append(result.NewBadges, *badge)
		}
	}

	suggestion, err := s.matcher.Random(ctx)
	if err == nil {
		result.Suggestion = suggestion
	} else if err != errs.NoContentAvailable {
		return nil, err
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordJournalEntry(ctx, string(state))
	}

	return result, nil
}

// AnswerSituation 情景小游戏作答，选项 2 视为正确
func (s *GamificationService) AnswerSituation(ctx context.Context, userID int64, choice string) (correct bool, pointsAwarded int, err error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	if user == nil {
		return false, 0, errs.UserNotFound
	}

	if choice != minigameCorrectChoice {
		return false, 0, nil
	}

	if _, err := s.users.AddPoints(ctx, userID, PointsPerCorrectAnswer); err != nil {
		return false, 0, err
	}
	return true, PointsPerCorrectAnswer, nil
}

// StreakDays 从今天往回数连续有完成记录的天数，窗口 21 天
func (s *GamificationService) StreakDays(ctx context.Context, userID int64) (int, error) {
	now := s.now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -streakLookbackDays)

	records, err := s.completions.ListSince(ctx, userID, since)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	days := make(map[string]bool, len(records))
	for _, rec := range records {
		days[rec.PerformedAt.In(now.Location()).Format("2006-01-02")] = true
	}

	streak := 0
	current := now
	for days[current.Format("2006-01-02")] {
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak, nil
}

// Stats 用户统计
func (s *GamificationService) Stats(ctx context.Context, userID int64) (*UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}

	completions, err := s.completions.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	journals, err := s.journals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak, err := s.StreakDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		Points:       user.Points,
		Completions:  completions,
		JournalCount: journals,
		StreakDays:   streak,
		Achievements: achievements,
	}, nil
}

// grant 条件授予成就，重复授予返回 nil 徽章
func (s *GamificationService) grant(ctx context.Context, userID int64, code string) (*model.Achievement, error) {
	result, err := s.achievements.Grant(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if !result.Inserted {
		return nil, nil
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordAchievementGranted(ctx, code)
	}

	achievement, err := s.achievements.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if achievement == nil {
		achievement = &model.Achievement{Code: code, Title: code}
	}
	return achievement, nil
}
