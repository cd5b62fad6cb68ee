package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

func TestMatcher_CuratedTitleWins(t *testing.T) {
	store := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "emotion", "Другая практика"),
			activePractice(2, "emotion", "Назови чувство"),
			activePractice(3, "body", "Проверка тела"),
		},
	}
	matcher := NewMatcherService(store)
	// 固定随机，走到随机分支就会暴露
	matcher.rnd = func(n int) int { return 0 }

	practice, err := matcher.Match(context.Background(), model.StateAngry)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, "Назови чувство", practice.Title)
	assert.Equal(t, int64(2), practice.ID)

	practice, err = matcher.Match(context.Background(), model.StateSad)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, "Назови чувство", practice.Title)

	practice, err = matcher.Match(context.Background(), model.StateTired)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, "Проверка тела", practice.Title)
}

func TestMatcher_CuratedTitleFoundOutsideMappedCategory(t *testing.T) {
	// 精选练习被改挂到别的分类，仍然按标题命中
	store := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "emotion", "Другая практика"),
			activePractice(2, "body", "Назови чувство"),
		},
	}
	matcher := NewMatcherService(store)
	matcher.rnd = func(n int) int { return 0 }

	practice, err := matcher.Match(context.Background(), model.StateAngry)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, "Назови чувство", practice.Title)
	assert.Equal(t, int64(2), practice.ID)
}

func TestMatcher_CategoryRandomFallback(t *testing.T) {
	store := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "mind", "Разбор мыслей"),
			activePractice(2, "mind", "Пауза"),
		},
	}
	matcher := NewMatcherService(store)
	matcher.rnd = func(n int) int { return 1 }

	// confused 没有精选标题，在 mind 分类里随机
	practice, err := matcher.Match(context.Background(), model.StateConfused)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, int64(2), practice.ID)
}

func TestMatcher_GlobalFallbackWhenCategoryEmpty(t *testing.T) {
	store := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "body", "Проверка тела"),
		},
	}
	matcher := NewMatcherService(store)
	matcher.rnd = func(n int) int { return 0 }

	// emotion 分类为空，落到全库随机
	practice, err := matcher.Match(context.Background(), model.StateAngry)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, int64(1), practice.ID)
}

func TestMatcher_NoContentAvailable(t *testing.T) {
	matcher := NewMatcherService(&fakePracticeStore{})

	_, err := matcher.Match(context.Background(), model.StateAngry)
	assert.ErrorIs(t, err, errs.NoContentAvailable)

	_, err = matcher.Random(context.Background())
	assert.ErrorIs(t, err, errs.NoContentAvailable)
}

func TestMatcher_RestStatesReturnNoPractice(t *testing.T) {
	store := &fakePracticeStore{
		practices: []model.Practice{activePractice(1, "body", "Проверка тела")},
	}
	matcher := NewMatcherService(store)

	for _, state := range []model.EmotionalState{model.StateCalm, model.StateGood, model.StateStrange} {
		practice, err := matcher.Match(context.Background(), state)
		require.NoError(t, err, "state %s", state)
		assert.Nil(t, practice, "state %s", state)
	}
}

func TestMatcher_InvalidState(t *testing.T) {
	matcher := NewMatcherService(&fakePracticeStore{})

	_, err := matcher.Match(context.Background(), model.EmotionalState("furious"))
	assert.ErrorIs(t, err, errs.InvalidState)
}

func TestMatcher_IgnoresInactivePractices(t *testing.T) {
	inactive := activePractice(1, "attention", "Пять ощущений")
	inactive.IsActive = false

	store := &fakePracticeStore{
		practices: []model.Practice{
			inactive,
			activePractice(2, "attention", "Дыхание"),
		},
	}
	matcher := NewMatcherService(store)
	matcher.rnd = func(n int) int { return 0 }

	// 精选标题被停用，退到分类内随机
	practice, err := matcher.Match(context.Background(), model.StateAnxious)
	require.NoError(t, err)
	require.NotNil(t, practice)
	assert.Equal(t, int64(2), practice.ID)
}
