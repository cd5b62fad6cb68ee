package service

import (
	"context"
	"sync"
	"time"

	"Opora/internal/model"
)

// 引导练习阶段
const (
	FlowStageIntro    = "intro"
	FlowStageStep1    = "step1"
	FlowStageStep2    = "step2"
	FlowStageStep3    = "step3"
	FlowStageFinished = "finished"
	FlowStageEnded    = "ended"
)

var flowAdvance = map[string]string{
	FlowStageIntro: FlowStageStep1,
	FlowStageStep1: FlowStageStep2,
	FlowStageStep2: FlowStageStep3,
	FlowStageStep3: FlowStageFinished,
}

var flowTexts = map[string]string{
	FlowStageIntro: "Ты выбрал «Мне странно» 🌱\n" +
		"Давай сделаем короткую практику, чтобы почувствовать тело и заземлиться.  \n" +
		"Просто следуй шагам и двигайся в своём ритме.  \n" +
		"⏱️ Это займёт всего 2–3 минуты.",
	FlowStageStep1: "1️⃣ Сканирование тела\n" +
		"Сядь или встань удобно.  \n" +
		"Закрой глаза, если хочется.  \n" +
		"Проведи внимание от стоп до головы:\n" +
		"• Стопы — чувствую, как они стоят на земле.\n" +
		"• Ноги — есть ли напряжение или расслабление?\n" +
		"• Таз и живот — лёгкое дыхание, мягкая осознанность.\n" +
		"• Грудная клетка и плечи — как они себя чувствуют?\n" +
		"• Руки и кисти — ощущение покоя или лёгкого напряжения.\n" +
		"• Шея, челюсть, лицо — расслабляем, если есть скованность.",
	FlowStageStep2: "2️⃣ Заземление через ощущения\n" +
		"Посмотри вокруг и найди:\n" +
		"• 5 вещей, которые видишь 👀\n" +
		"• 4 вещи, которые можешь потрогать ✋\n" +
		"• 3 звука, которые слышишь 👂\n" +
		"• 2 запаха, которые ощущаешь 👃\n" +
		"• 1 вкус, который чувствуешь 👅\n\n" +
		"Просто замечай, без оценки.  \n" +
		"⏱️ Таймер: 90 секунд",
	FlowStageStep3: "3️⃣ Дыхание и пауза\n" +
		"Сделай 3 глубоких вдоха и выдоха:\n" +
		"• Вдох — медленно через нос, наполняя живот.  \n" +
		"• Выдох — мягко через рот, отпускание напряжения.  \n\n" +
		"Просто наблюдай за ощущениями в теле. 🌿\n" +
		"⏱️ Таймер: 60 секунд",
	FlowStageFinished: "Отлично! Ты сделал небольшую паузу для себя 🌱  \n" +
		"Хочешь сделать ещё одну короткую практику или заканчиваем на сегодня?",
	FlowStageEnded: "Хорошо. Если захочешь — я рядом 🌿",
}

// FlowAnotherPrefix another 分支的引导语
const FlowAnotherPrefix = "Попробуем ещё одну 👉\n\n"

// FlowStep 单步结果
type FlowStep struct {
	Stage string
	Text  string
}

type flowSession struct {
	stage     string
	touchedAt time.Time
}

// FlowService 引导练习会话 FSM，会话仅存内存，进程重启即消失
type FlowService struct {
	mu       sync.Mutex
	sessions map[int64]*flowSession
	ttl      time.Duration
	now      func() time.Time

	matcher *MatcherService
}

func NewFlowService(matcher *MatcherService, ttl time.Duration) *FlowService {
	return &FlowService{
		sessions: make(map[int64]*flowSession),
		ttl:      ttl,
		now:      time.Now,
		matcher:  matcher,
	}
}

// Start 开始引导练习，已有会话被替换
func (s *FlowService) Start(userID int64) FlowStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = &flowSession{
		stage:     FlowStageIntro,
		touchedAt: s.now(),
	}

	return FlowStep{Stage: FlowStageIntro, Text: flowTexts[FlowStageIntro]}
}

// Advance 推进一步；无会话（或已过期）视作重新开始，回到 intro
func (s *FlowService) Advance(userID int64) FlowStep {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.activeSession(userID)
	if sess == nil {
		s.sessions[userID] = &flowSession{
			stage:     FlowStageIntro,
			touchedAt: s.now(),
		}
		return FlowStep{Stage: FlowStageIntro, Text: flowTexts[FlowStageIntro]}
	}

	if next, ok := flowAdvance[sess.stage]; ok {
		sess.stage = next
	}
	sess.touchedAt = s.now()

	return FlowStep{Stage: sess.stage, Text: flowTexts[sess.stage]}
}

// Another 结束会话并随机给一条练习
func (s *FlowService) Another(ctx context.Context, userID int64) (*model.Practice, error) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	return s.matcher.Random(ctx)
}

// End 结束会话，返回告别语
func (s *FlowService) End(userID int64) FlowStep {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	return FlowStep{Stage: FlowStageEnded, Text: flowTexts[FlowStageEnded]}
}

// Stage 当前阶段，无活动会话返回空串
func (s *FlowService) Stage(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.activeSession(userID)
	if sess == nil {
		return ""
	}
	return sess.stage
}

// activeSession 取未过期会话，过期的顺手清掉；调用方必须持锁
func (s *FlowService) activeSession(userID int64) *flowSession {
	sess, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(sess.touchedAt) > s.ttl {
		delete(s.sessions, userID)
		return nil
	}
	return sess
}
