package service

import (
	"context"
	"math/rand"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

// 状态到分类的静态映射；strange 走引导练习，calm/good 不匹配练习
var stateCategory = map[model.EmotionalState]string{
	model.StateAngry:    "emotion",
	model.StateConfused: "mind",
	model.StateAnxious:  "attention",
	model.StateSad:      "emotion",
	model.StateTired:    "body",
}

// 精选标题优先级，按顺序在分类的启用练习中解析
var curatedTitles = map[model.EmotionalState][]string{
	model.StateAngry:   {"Назови чувство"},
	model.StateAnxious: {"Пять ощущений"},
	model.StateTired:   {"Проверка тела"},
	model.StateSad:     {"Назови чувство"},
}

// MatcherService 状态到练习的匹配
type MatcherService struct {
	practices PracticeStore
	rnd       func(n int) int
}

func NewMatcherService(practices PracticeStore) *MatcherService {
	return &MatcherService{
		practices: practices,
		rnd:       rand.Intn,
	}
}

// Match 为状态挑选练习
// 解析顺序：精选标题 -> 分类内随机 -> 全库随机 -> NoContentAvailable
// calm/good/strange 不匹配练习，返回 (nil, nil)
func (s *MatcherService) Match(ctx context.Context, state model.EmotionalState) (*model.Practice, error) {
	if !state.Valid() {
		return nil, errs.InvalidState
	}

	category, ok := stateCategory[state]
	if !ok {
		return nil, nil
	}

	// 精选标题在全库启用练习里解析，练习改挂分类后依然命中
	if titles := curatedTitles[state]; len(titles) > 0 {
		active, err := s.practices.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		for _, title := range titles {
			for i := range active {
				if active[i].Title == title {
					return &active[i], nil
				}
			}
		}
	}

	practices, err := s.practices.ListActiveByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(practices) > 0 {
		return &practices[s.rnd(len(practices))], nil
	}

	return s.Random(ctx)
}

// Random 全库随机取一条启用练习
func (s *MatcherService) Random(ctx context.Context) (*model.Practice, error) {
	practices, err := s.practices.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(practices) == 0 {
		return nil, errs.NoContentAvailable
	}
	return &practices[s.rnd(len(practices))], nil
}
