package controller

import (
	"errors"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// History godoc
// @Summary The caller's attempt history
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param quizId query int false "filter by quiz"
// @Param passed query bool false "filter by outcome"
// @Success 200 {object} map[string]interface{}
// @Router /api/user-attempts/history [get]
func (c *AttemptController) History(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	f := repository.AttemptFilter{Page: page, Limit: limit}
	if qid := ctx.Query("quizId"); qid != "" {
		f.QuizID = util.MustParseUint(qid)
	}
	if p := ctx.Query("passed"); p == "true" || p == "false" {
		passed := p == "true"
		f.Passed = &passed
	}

	claims := util.GetUserFromContext(ctx)
	attempts, total, err := c.AttemptService.History(claims.UserID, f)
	if err != nil {
		util.LogInternalError(ctx, "Attempt history failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"attempts":   attempts,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// QuizAttempts godoc
// @Summary The caller's attempts at one quiz
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "quiz id"
// @Success 200 {object} map[string]interface{}
// @Router /api/user-attempts/quiz/{quizId}/attempts [get]
func (c *AttemptController) QuizAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, best, err := c.AttemptService.QuizAttempts(claims.UserID, util.MustParseUint(ctx.Param("quizId")))
	if err != nil {
		util.LogInternalError(ctx, "Attempt lookup failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"attempts":  attempts,
		"bestScore": best,
		"total":     len(attempts),
	})
}

// Check godoc
// @Summary Whether the caller has attempted a quiz
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "quiz id"
// @Success 200 {object} map[string]interface{}
// @Router /api/user-attempts/quiz/{quizId}/check [get]
func (c *AttemptController) Check(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempted, latest, err := c.AttemptService.Check(claims.UserID, util.MustParseUint(ctx.Param("quizId")))
	if err != nil {
		util.LogInternalError(ctx, "Attempt check failed", err)
		return
	}

	body := gin.H{"attempted": attempted}
	if latest != nil {
		body["latestAttempt"] = latest
	}
	util.Success(ctx, body)
}

// Detail godoc
// @Summary One attempt with per-question answers
// @Description Owner-only; other users' attempts read as forbidden
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "attempt id"
// @Success 200 {object} model.QuizAttempt
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/user-attempts/attempt/{attemptId} [get]
func (c *AttemptController) Detail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.Detail(claims.UserID, util.MustParseUint(ctx.Param("attemptId")))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx, "Attempt not found")
		} else if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx, "You do not have access to this attempt")
		} else {
			util.LogInternalError(ctx, "Attempt lookup failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"attempt": attempt})
}

// Stats godoc
// @Summary The caller's aggregate attempt stats
// @Tags attempts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.AggregateStats
// @Router /api/user-attempts/stats [get]
func (c *AttemptController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.AttemptService.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Attempt stats failed", err)
		return
	}
	util.Success(ctx, stats)
}
