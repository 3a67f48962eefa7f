package app

import (
	"aws_quiz_backend/docs"
	"aws_quiz_backend/internal/middleware"
	"aws_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/questions/count", c.quiz.QuestionCount)
	}

	// All quiz routes are scoped to the browser session cookie.
	quiz := router.Group("/api/quiz")
	quiz.Use(middleware.QuizSession(a.Config.Session.CookieName, int(a.Config.Session.TTL.Seconds())))
	{
		quiz.POST("/start", c.quiz.Start)
		quiz.GET("/current", c.quiz.Current)
		quiz.POST("/answer", c.quiz.SubmitAnswer)
		quiz.POST("/finish", c.quiz.Finish)
		quiz.GET("/results", c.quiz.Results)
		quiz.GET("/history", c.quiz.History)
	}
}
