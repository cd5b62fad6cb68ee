package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"Opora/internal/handler"
	"Opora/internal/middleware"
)

// Handlers 由 cmd/server 显式装配
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	State     *handler.StateHandler
	Flow      *handler.FlowHandler
	Practice  *handler.PracticeHandler
	Checklist *handler.ChecklistHandler
	Journal   *handler.JournalHandler
	Minigame  *handler.MinigameHandler
}

func Register(h *server.Hertz, hs *Handlers) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/token", hs.Auth.ExchangeToken)
	}

	// 业务路由，全部需要服务 token
	api := v1.Group("")
	api.Use(middleware.AuthMiddleware())
	api.Use(middleware.GeneralRateLimitMiddleware())
	{
		users := api.Group("/users")
		{
			users.POST("/start", hs.User.Start)
			users.PUT("/:user_id/daily", hs.User.UpdateDailySettings)
			users.GET("/:user_id/stats", hs.User.Stats)
		}

		states := api.Group("/states")
		{
			states.POST("/select", hs.State.SelectState)
		}

		flow := api.Group("/flow")
		{
			flow.POST("/advance", hs.Flow.Advance)
			flow.POST("/another", hs.Flow.Another)
			flow.POST("/end", hs.Flow.End)
		}

		library := api.Group("/library")
		{
			library.GET("/categories", hs.Practice.Categories)
			library.GET("/categories/:code/practices", hs.Practice.PracticesByCategory)
		}

		practices := api.Group("/practices")
		{
			practices.GET("/random", hs.Practice.RandomPractice)
			practices.GET("/:id", hs.Practice.GetPractice)
			practices.POST("/:id/complete", hs.Practice.Complete)
		}

		checklists := api.Group("/checklists")
		{
			checklists.GET("", hs.Checklist.List)
			checklists.POST("/items/:id/toggle", hs.Checklist.Toggle)
		}

		api.POST("/journal", hs.Journal.Create)
		api.POST("/minigame/answer", hs.Minigame.Answer)
	}
}
