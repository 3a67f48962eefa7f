package controller

import (
	"aws_quiz_backend/internal/middleware"
	"aws_quiz_backend/internal/model"
	"aws_quiz_backend/internal/service"
	"aws_quiz_backend/internal/util"
	"aws_quiz_backend/pkg/monitoring"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary Question bank size
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Router /questions/count [get]
func (c *QuizController) QuestionCount(ctx *gin.Context) {
	util.Success(ctx, gin.H{"total": c.Service.Questions.Count()})
}

// @Summary Start a quiz run
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body service.StartConfig true "mode, selection and bounds"
// @Success 201 {object} util.Response
// @Router /quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	var cfg service.StartConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.Start(ctx.Request.Context(), middleware.GetSessionID(ctx), cfg)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	monitoring.QuizStartedCounter.WithLabelValues(string(session.Mode)).Inc()

	util.Created(ctx, gin.H{
		"sessionId":     session.ID,
		"mode":          session.Mode,
		"status":        session.Status,
		"questionCount": len(session.Questions),
	})
}

// @Summary Current question and progress
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Router /quiz/current [get]
func (c *QuizController) Current(ctx *gin.Context) {
	current, err := c.Service.CurrentQuestion(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, current)
}

type submitAnswerReq struct {
	QuestionNumber int               `json:"questionNumber" binding:"required"`
	Selected       []string          `json:"selected"`
	Mapping        map[string]string `json:"mapping"`
}

// @Summary Submit an answer
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body submitAnswerReq true "question number plus selected letters or mapping"
// @Success 200 {object} util.Response
// @Router /quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req submitAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer := model.Answer{Selected: req.Selected, Mapping: req.Mapping}
	result, err := c.Service.SubmitAnswer(ctx.Request.Context(), middleware.GetSessionID(ctx), req.QuestionNumber, answer)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	monitoring.AnswerSubmittedCounter.WithLabelValues(answerOutcome(result)).Inc()

	util.Success(ctx, result)
}

// @Summary Finish the run
// @Tags quiz
// @Produce json
// @Param force query bool false "score unanswered exam questions as incorrect"
// @Success 200 {object} util.Response
// @Router /quiz/finish [post]
func (c *QuizController) Finish(ctx *gin.Context) {
	force, _ := strconv.ParseBool(ctx.DefaultQuery("force", "false"))

	summary, err := c.Service.Finish(ctx.Request.Context(), middleware.GetSessionID(ctx), force)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	monitoring.QuizFinishedCounter.WithLabelValues(string(summary.Mode)).Inc()

	util.Success(ctx, summary)
}

// @Summary Results of the completed run
// @Tags quiz
// @Produce json
// @Success 200 {object} util.Response
// @Router /quiz/results [get]
func (c *QuizController) Results(ctx *gin.Context) {
	summary, err := c.Service.Results(ctx.Request.Context(), middleware.GetSessionID(ctx))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Recent completed runs
// @Tags quiz
// @Produce json
// @Param limit query int false "max rows" default(20)
// @Success 200 {object} util.Response
// @Router /quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	runs, err := c.Service.History(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": runs, "total": len(runs)})
}

func (c *QuizController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidConfiguration),
		errors.Is(err, util.ErrIncompleteSession),
		errors.Is(err, util.ErrQuestionNotCurrent):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrUnknownQuestion):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyAnswered),
		errors.Is(err, util.ErrSessionCompleted),
		errors.Is(err, util.ErrVersionConflict):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func answerOutcome(result *service.SubmitResult) string {
	switch {
	case result.IsCorrect == nil:
		return "recorded"
	case *result.IsCorrect:
		return "correct"
	default:
		return "incorrect"
	}
}
