package service

import (
	"context"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

// LibraryService 内容库浏览
type LibraryService struct {
	practices PracticeStore
	matcher   *MatcherService
}

func NewLibraryService(practices PracticeStore, matcher *MatcherService) *LibraryService {
	return &LibraryService{practices: practices, matcher: matcher}
}

func (s *LibraryService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.practices.ListCategories(ctx)
}

func (s *LibraryService) PracticesByCategory(ctx context.Context, code string) ([]model.Practice, error) {
	category, err := s.practices.GetCategory(ctx, code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errs.CategoryNotFound
	}
	return s.practices.ListActiveByCategory(ctx, code)
}

func (s *LibraryService) Get(ctx context.Context, id int64) (*model.Practice, error) {
	practice, err := s.practices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if practice == nil {
		return nil, errs.PracticeNotFound
	}
	return practice, nil
}

// RandomOfTheDay 练习之日随机抽取
func (s *LibraryService) RandomOfTheDay(ctx context.Context) (*model.Practice, error) {
	return s.matcher.Random(ctx)
}
