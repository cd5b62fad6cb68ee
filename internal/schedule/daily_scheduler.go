package schedule

// 每日练习调度器：在配置的本地时间触发，发布一条全体批次消息

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"Opora/config"
	"Opora/internal/service"
	"Opora/pkg/logger"
	"Opora/utils"
)

type DailyScheduler struct {
	logger *zap.Logger
	daily  *service.DailyService

	loc   *time.Location
	clock string // HH:MM

	jobRunning  bool
	jobMu       sync.Mutex
	lastJobTime time.Time
}

func NewDailyScheduler(daily *service.DailyService) (*DailyScheduler, error) {
	loc, err := time.LoadLocation(config.Cfg.DailyTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", config.Cfg.DailyTimezone, err)
	}

	return &DailyScheduler{
		logger: logger.Logger,
		daily:  daily,
		loc:    loc,
		clock:  config.Cfg.DailyTime,
	}, nil
}

// NextFire 计算下一次触发时刻：今天的配置时间，已过则顺延到明天
func (s *DailyScheduler) NextFire(now time.Time) (time.Time, error) {
	local := now.In(s.loc)

	fire, err := utils.ParseClock(s.clock, local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid daily time %q: %w", s.clock, err)
	}

	if !fire.After(local) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire, nil
}

// Run 阻塞运行调度循环，ctx 取消后退出
// 开发模式下每分钟触发一次，方便联调
func (s *DailyScheduler) Run(ctx context.Context) error {
	s.logger.Info("Daily scheduler started",
		zap.String("time", s.clock),
		zap.String("timezone", s.loc.String()),
		zap.Bool("development", config.Cfg.IsDevelopment()),
	)

	for {
		var wait time.Duration
		if config.Cfg.IsDevelopment() {
			wait = time.Minute
		} else {
			fire, err := s.NextFire(time.Now())
			if err != nil {
				return err
			}
			wait = time.Until(fire)
			s.logger.Info("Next daily batch scheduled",
				zap.Time("fire_at", fire),
				zap.Duration("wait", wait),
			)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Daily scheduler stopping",
				zap.Time("last_run", s.lastJobTime),
			)
			return ctx.Err()
		case <-timer.C:
			s.tick(ctx)
		}
	}
}

// tick 执行一次调度，running 标志防止上一轮还没跑完又进一轮
func (s *DailyScheduler) tick(ctx context.Context) {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Daily job already running, skipping tick")
		return
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	firedAt := time.Now().In(s.loc)
	s.lastJobTime = firedAt

	if err := s.daily.RunDaily(ctx, firedAt); err != nil {
		s.logger.Error("Daily batch run failed",
			zap.String("date", utils.DateKey(firedAt)),
			zap.Error(err),
		)
	}
}
