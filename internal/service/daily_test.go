package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
	"Opora/pkg/snowflake"
	"Opora/pkg/telegram"
	"Opora/utils"
)

type publishRecorder struct {
	messages []model.DailyPracticeMessage
	fail     bool
}

func (r *publishRecorder) publish(msg model.DailyPracticeMessage) error {
	if r.fail {
		return assert.AnError
	}
	r.messages = append(r.messages, msg)
	return nil
}

type dailyFixture struct {
	svc       *DailyService
	users     *fakeUserStore
	practices *fakePracticeStore
	markers   *fakeMarkers
	deliverer *telegram.MockClient
	publisher *publishRecorder
}

func newDailyFixture(t *testing.T, users ...*model.User) *dailyFixture {
	t.Helper()
	require.NoError(t, snowflake.Init(1, 1))

	userStore := newFakeUserStore(users...)
	practiceStore := &fakePracticeStore{
		practices: []model.Practice{
			activePractice(1, "body", "Проверка тела"),
			activePractice(2, "emotion", "Назови чувство"),
		},
	}
	markers := newFakeMarkers()
	deliverer := telegram.NewMockClient()
	publisher := &publishRecorder{}

	svc := NewDailyService(userStore, practiceStore, markers, deliverer, publisher.publish)
	svc.rnd = func(n int) int { return 0 }

	return &dailyFixture{
		svc:       svc,
		users:     userStore,
		practices: practiceStore,
		markers:   markers,
		deliverer: deliverer,
		publisher: publisher,
	}
}

func TestRunDaily_PublishesSingleBatch(t *testing.T) {
	f := newDailyFixture(t,
		&model.User{TelegramID: 1, DailyEnabled: true},
		&model.User{TelegramID: 2, DailyEnabled: true},
		&model.User{TelegramID: 3, DailyEnabled: false},
	)

	firedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.RunDaily(context.Background(), firedAt))

	require.Len(t, f.publisher.messages, 1)
	msg := f.publisher.messages[0]
	assert.Equal(t, "2026-03-10", msg.Date)
	assert.Equal(t, int64(1), msg.PracticeID)
	assert.Equal(t, []int64{1, 2}, msg.UserIDs)
	assert.NotEmpty(t, msg.MessageID)
	assert.NotEmpty(t, msg.BatchID)
	assert.True(t, f.markers.scheduled["2026-03-10"])
}

func TestRunDaily_SkipsWhenAlreadyScheduled(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: true})
	f.markers.scheduled["2026-03-10"] = true

	firedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.RunDaily(context.Background(), firedAt))
	assert.Empty(t, f.publisher.messages)
}

func TestRunDaily_SkipsUsersAlreadySentToday(t *testing.T) {
	sent := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	f := newDailyFixture(t,
		&model.User{TelegramID: 1, DailyEnabled: true, LastDailySent: &sent},
		&model.User{TelegramID: 2, DailyEnabled: true},
	)

	firedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.RunDaily(context.Background(), firedAt))

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, []int64{2}, f.publisher.messages[0].UserIDs)
}

func TestRunDaily_NoUsersNoBatch(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: false})

	firedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.RunDaily(context.Background(), firedAt))
	assert.Empty(t, f.publisher.messages)
	assert.False(t, f.markers.scheduled["2026-03-10"])
}

func TestRunDaily_UnmarksOnPublishFailure(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: true})
	f.publisher.fail = true

	firedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	err := f.svc.RunDaily(context.Background(), firedAt)
	require.Error(t, err)

	// 标记被撤回，下一个 tick 可以重试
	assert.False(t, f.markers.scheduled["2026-03-10"])
}

func TestProcessDailyBatch_DeliversAndMarks(t *testing.T) {
	f := newDailyFixture(t,
		&model.User{TelegramID: 1, DailyEnabled: true},
		&model.User{TelegramID: 2, DailyEnabled: true},
		&model.User{TelegramID: 3, DailyEnabled: true},
	)
	f.deliverer.FailFor[2] = true

	msg := &model.DailyPracticeMessage{
		MessageID:  "msg-1",
		BatchID:    "batch-1",
		Date:       "2026-03-10",
		PracticeID: 1,
		UserIDs:    []int64{1, 2, 3},
	}
	require.NoError(t, f.svc.ProcessDailyBatch(context.Background(), msg))

	// 单个用户失败不影响其余投递
	assert.True(t, f.deliverer.SentTo(1))
	assert.True(t, f.deliverer.SentTo(3))

	u1, _ := f.users.GetByID(context.Background(), 1)
	require.NotNil(t, u1.LastDailySent)
	assert.Equal(t, "2026-03-10", utils.DateKey(*u1.LastDailySent))

	u2, _ := f.users.GetByID(context.Background(), 2)
	assert.Nil(t, u2.LastDailySent)

	assert.True(t, f.markers.processed["msg-1"])
}

func TestProcessDailyBatch_DuplicateMessageSkipped(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: true})

	msg := &model.DailyPracticeMessage{
		MessageID:  "msg-1",
		BatchID:    "batch-1",
		Date:       "2026-03-10",
		PracticeID: 1,
		UserIDs:    []int64{1},
	}
	require.NoError(t, f.svc.ProcessDailyBatch(context.Background(), msg))
	require.NoError(t, f.svc.ProcessDailyBatch(context.Background(), msg))

	assert.Len(t, f.deliverer.Calls, 1)
}

func TestProcessDailyBatch_PracticeGone(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: true})

	msg := &model.DailyPracticeMessage{
		MessageID:  "msg-1",
		BatchID:    "batch-1",
		Date:       "2026-03-10",
		PracticeID: 999,
		UserIDs:    []int64{1},
	}
	err := f.svc.ProcessDailyBatch(context.Background(), msg)

	var skip *errs.SkipMessageError
	require.ErrorAs(t, err, &skip)
	assert.Empty(t, f.deliverer.Calls)
}

func TestProcessDailyBatch_RechecksSettingsBeforeSend(t *testing.T) {
	f := newDailyFixture(t,
		&model.User{TelegramID: 1, DailyEnabled: true},
		&model.User{TelegramID: 2, DailyEnabled: true},
	)

	msg := &model.DailyPracticeMessage{
		MessageID:  "msg-1",
		BatchID:    "batch-1",
		Date:       "2026-03-10",
		PracticeID: 1,
		UserIDs:    []int64{1, 2},
	}

	// 发布之后用户 2 关掉了每日推送
	require.NoError(t, f.users.UpdateDailySettings(context.Background(), 2, false, nil))

	require.NoError(t, f.svc.ProcessDailyBatch(context.Background(), msg))
	assert.True(t, f.deliverer.SentTo(1))
	assert.False(t, f.deliverer.SentTo(2))
}

func TestProcessDailyBatch_MessageTextIncludesPractice(t *testing.T) {
	f := newDailyFixture(t, &model.User{TelegramID: 1, DailyEnabled: true})

	msg := &model.DailyPracticeMessage{
		MessageID:  "msg-1",
		BatchID:    "batch-1",
		Date:       "2026-03-10",
		PracticeID: 1,
		UserIDs:    []int64{1},
	}
	require.NoError(t, f.svc.ProcessDailyBatch(context.Background(), msg))

	require.Len(t, f.deliverer.Calls, 1)
	text := f.deliverer.Calls[0].Text
	assert.Contains(t, text, "Практика дня")
	assert.Contains(t, text, "<b>Проверка тела</b>")
}
