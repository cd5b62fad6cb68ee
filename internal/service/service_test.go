package service

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"Opora/internal/model"
	"Opora/pkg/logger"
	"Opora/utils"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// 内存假实现，覆盖 stores.go 的全部接口

type fakeUserStore struct {
	users map[int64]*model.User

	addPointsErr error
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[int64]*model.User)}
	for _, u := range users {
		s.users[u.TelegramID] = u
	}
	return s
}

func (s *fakeUserStore) Upsert(ctx context.Context, user *model.User) (bool, error) {
	if existing, ok := s.users[user.TelegramID]; ok {
		existing.FirstName = user.FirstName
		existing.Username = user.Username
		return false, nil
	}
	clone := *user
	clone.DailyEnabled = true
	s.users[user.TelegramID] = &clone
	return true, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.users[userID], nil
}

func (s *fakeUserStore) UpdateDailySettings(ctx context.Context, userID int64, enabled bool, timezone *string) error {
	u, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.DailyEnabled = enabled
	if timezone != nil {
		u.Timezone = timezone
	}
	return nil
}

func (s *fakeUserStore) AddPoints(ctx context.Context, userID int64, delta int) (int, error) {
	if s.addPointsErr != nil {
		return 0, s.addPointsErr
	}
	u := s.users[userID]
	u.Points += delta
	return u.Points, nil
}

func (s *fakeUserStore) ListDailyEnabled(ctx context.Context, date time.Time) ([]model.User, error) {
	dateKey := utils.DateKey(date)

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.User
	for _, id := range ids {
		u := s.users[id]
		if !u.DailyEnabled {
			continue
		}
		if u.LastDailySent != nil && utils.DateKey(*u.LastDailySent) >= dateKey {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) SetLastDailySent(ctx context.Context, userID int64, date time.Time) error {
	if u, ok := s.users[userID]; ok {
		d := date
		u.LastDailySent = &d
	}
	return nil
}

type fakePracticeStore struct {
	practices  []model.Practice
	categories []model.Category

	listErr error
}

func (s *fakePracticeStore) GetByID(ctx context.Context, id int64) (*model.Practice, error) {
	for i := range s.practices {
		if s.practices[i].ID == id {
			return &s.practices[i], nil
		}
	}
	return nil, nil
}

func (s *fakePracticeStore) ListActive(ctx context.Context) ([]model.Practice, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.Practice
	for _, p := range s.practices {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePracticeStore) ListActiveByCategory(ctx context.Context, categoryCode string) ([]model.Practice, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.Practice
	for _, p := range s.practices {
		if p.IsActive && p.CategoryCode == categoryCode {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePracticeStore) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories, nil
}

func (s *fakePracticeStore) GetCategory(ctx context.Context, code string) (*model.Category, error) {
	for i := range s.categories {
		if s.categories[i].Code == code {
			return &s.categories[i], nil
		}
	}
	return nil, nil
}

type fakeJournalStore struct {
	entries []model.JournalEntry
}

func (s *fakeJournalStore) Insert(ctx context.Context, entry *model.JournalEntry) error {
	entry.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *fakeJournalStore) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, e := range s.entries {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeCompletionStore struct {
	records []model.CompletionRecord
}

func (s *fakeCompletionStore) Insert(ctx context.Context, rec *model.CompletionRecord) error {
	rec.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *rec)
	return nil
}

func (s *fakeCompletionStore) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, r := range s.records {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *fakeCompletionStore) ListSince(ctx context.Context, userID int64, since time.Time) ([]model.CompletionRecord, error) {
	var out []model.CompletionRecord
	for _, r := range s.records {
		if r.UserID == userID && !r.PerformedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeChecklistStore struct {
	checklists []model.Checklist
	items      []model.ChecklistItem
	progress   map[int64]map[int64]bool // userID -> itemID -> done
}

func newFakeChecklistStore() *fakeChecklistStore {
	return &fakeChecklistStore{progress: make(map[int64]map[int64]bool)}
}

func (s *fakeChecklistStore) ListChecklists(ctx context.Context) ([]model.Checklist, error) {
	return s.checklists, nil
}

func (s *fakeChecklistStore) ListItems(ctx context.Context, checklistCode string) ([]model.ChecklistItem, error) {
	var out []model.ChecklistItem
	for _, item := range s.items {
		if item.ChecklistCode == checklistCode {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeChecklistStore) GetItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error) {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s *fakeChecklistStore) GetProgress(ctx context.Context, userID int64, itemIDs []int64) (map[int64]bool, error) {
	done := make(map[int64]bool)
	for _, id := range itemIDs {
		if s.progress[userID][id] {
			done[id] = true
		}
	}
	return done, nil
}

func (s *fakeChecklistStore) Toggle(ctx context.Context, userID, itemID int64) (bool, error) {
	if s.progress[userID] == nil {
		s.progress[userID] = make(map[int64]bool)
	}
	s.progress[userID][itemID] = !s.progress[userID][itemID]
	return s.progress[userID][itemID], nil
}

type fakeAchievementStore struct {
	defs    map[string]model.Achievement
	granted map[int64]map[string]bool
}

func newFakeAchievementStore(defs ...model.Achievement) *fakeAchievementStore {
	s := &fakeAchievementStore{
		defs:    make(map[string]model.Achievement),
		granted: make(map[int64]map[string]bool),
	}
	for _, d := range defs {
		s.defs[d.Code] = d
	}
	return s
}

func (s *fakeAchievementStore) Grant(ctx context.Context, userID int64, code string) (model.GrantResult, error) {
	if s.granted[userID] == nil {
		s.granted[userID] = make(map[string]bool)
	}
	if s.granted[userID][code] {
		return model.GrantResult{Code: code, Inserted: false}, nil
	}
	s.granted[userID][code] = true
	return model.GrantResult{Code: code, Inserted: true}, nil
}

func (s *fakeAchievementStore) ListByUser(ctx context.Context, userID int64) ([]model.Achievement, error) {
	var out []model.Achievement
	for code := range s.granted[userID] {
		if def, ok := s.defs[code]; ok {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *fakeAchievementStore) GetByCode(ctx context.Context, code string) (*model.Achievement, error) {
	if def, ok := s.defs[code]; ok {
		return &def, nil
	}
	return nil, nil
}

type fakeMarkers struct {
	scheduled  map[string]bool
	processing map[string]bool
	processed  map[string]bool
}

func newFakeMarkers() *fakeMarkers {
	return &fakeMarkers{
		scheduled:  make(map[string]bool),
		processing: make(map[string]bool),
		processed:  make(map[string]bool),
	}
}

func (m *fakeMarkers) IsDailyScheduled(ctx context.Context, date string) (bool, error) {
	return m.scheduled[date], nil
}

func (m *fakeMarkers) MarkDailyScheduled(ctx context.Context, date string) error {
	m.scheduled[date] = true
	return nil
}

func (m *fakeMarkers) UnmarkDailyScheduled(ctx context.Context, date string) error {
	delete(m.scheduled, date)
	return nil
}

func (m *fakeMarkers) TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	if m.processing[messageID] {
		return false, nil
	}
	m.processing[messageID] = true
	return true, nil
}

func (m *fakeMarkers) UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	delete(m.processing, messageID)
	return nil
}

func (m *fakeMarkers) MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	m.processed[messageID] = true
	return nil
}

// 测试数据构造

func activePractice(id int64, category, title string) model.Practice {
	p := model.Practice{
		CategoryCode: category,
		Title:        title,
		Description:  "desc",
		IsActive:     true,
	}
	p.ID = id
	return p
}
