package app

import (
	"word_duel_backend/docs"
	"word_duel_backend/internal/config"
	"word_duel_backend/internal/middleware"
	"word_duel_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/users/me", c.user.Me)
		authGroup.POST("/friends/add", c.user.AddFriend)
		authGroup.GET("/friends", c.user.ListFriends)

		// 词表
		authGroup.POST("/wordlists", c.wordlist.Create)
		authGroup.GET("/wordlists", c.wordlist.List)
		authGroup.POST("/wordlists/preview", c.wordlist.Preview)
		authGroup.GET("/wordlists/:id/words", c.wordlist.Words)
		authGroup.POST("/wordlists/:id/words", c.wordlist.AppendWords)
		authGroup.POST("/wordlists/:id/import", c.wordlist.Import)

		// 图片提取
		authGroup.POST("/extract/image", c.extract.ExtractImage)
		authGroup.POST("/extract/batch", c.extract.ExtractBatch)
		authGroup.GET("/extract/tasks/:id", c.extract.TaskStatus)

		// 对战会话
		authGroup.POST("/sessions", c.session.Create)
		authGroup.GET("/sessions/:id", c.session.Get)
		authGroup.GET("/sessions/:id/next_word", c.session.NextWord)
		authGroup.POST("/sessions/:id/attempts", c.session.SubmitAttempt)
		authGroup.GET("/sessions/:id/scoreboard", c.session.Scoreboard)
		authGroup.GET("/sessions/:id/progress", c.session.Progress)
		authGroup.GET("/sessions/:id/wrongbook", c.session.Wrongbook)

		// 战绩
		authGroup.GET("/leaderboard", c.report.Leaderboard)
		authGroup.GET("/reports/weekly", c.report.Weekly)
	}
}
