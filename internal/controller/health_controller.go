package controller

import (
	"aws_quiz_backend/internal/repository"
	"aws_quiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB        *gorm.DB
	Questions *repository.QuestionRepository
}

func NewHealthController(db *gorm.DB, questions *repository.QuestionRepository) *HealthController {
	return &HealthController{DB: db, Questions: questions}
}

// @Summary Health check
// @Description Service liveness plus component status
// @Tags system
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{
		"questionBank": "up",
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			util.InternalServerError(ctx)
			return
		}
		if err := sqlDB.Ping(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		components["database"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"questions":  c.Questions.Count(),
		"components": components,
	})
}
