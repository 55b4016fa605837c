package controller

import (
	"errors"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController handles the admin side of the quiz catalog. User-facing
// reads live in UserQuizController so the answer key never leaks there.
type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model QuizRequest
type QuizRequest struct {
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	SubjectID         uint                    `json:"subjectId"`
	TimeLimit         int                     `json:"timeLimit"`
	Difficulty        string                  `json:"difficulty"`
	PassingScore      *int                    `json:"passingScore"`
	SubscriptionLevel string                  `json:"subscriptionLevel"`
	IsActive          *bool                   `json:"isActive"`
	Questions         []service.QuestionInput `json:"questions"`
}

func (r QuizRequest) toInput() service.QuizInput {
	return service.QuizInput{
		Title:             r.Title,
		Description:       r.Description,
		SubjectID:         r.SubjectID,
		TimeLimit:         r.TimeLimit,
		Difficulty:        r.Difficulty,
		PassingScore:      r.PassingScore,
		SubscriptionLevel: r.SubscriptionLevel,
		IsActive:          r.IsActive,
		Questions:         r.Questions,
	}
}

// Create godoc
// @Summary Create a quiz with its questions
// @Tags admin-quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizRequest true "quiz data"
// @Success 201 {object} model.Quiz
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.Create(req.toInput(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Quiz creation failed", err)
		}
		return
	}

	util.Created(ctx, gin.H{"message": "Quiz created", "quiz": quiz})
}

// List godoc
// @Summary List quizzes
// @Tags admin-quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param subjectId query int false "filter by subject"
// @Param difficulty query string false "filter by difficulty"
// @Param subscriptionLevel query string false "filter by plan"
// @Param search query string false "title search"
// @Param sort query string false "field:asc|desc"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	f := repository.QuizFilter{
		Difficulty:        ctx.Query("difficulty"),
		SubscriptionLevel: ctx.Query("subscriptionLevel"),
		Search:            ctx.Query("search"),
		Sort:              ctx.DefaultQuery("sort", "createdAt:desc"),
		Page:              page,
		Limit:             limit,
	}
	if sid := ctx.Query("subjectId"); sid != "" {
		f.SubjectID = util.MustParseUint(sid)
	}
	if ctx.Query("active") == "true" {
		f.ActiveOnly = true
	}

	quizzes, total, err := c.QuizService.List(f)
	if err != nil {
		util.LogInternalError(ctx, "Quiz listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"quizzes":    quizzes,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// ListBySubject godoc
// @Summary List quizzes of one subject
// @Tags admin-quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path int true "subject id"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/quizzes/subject/{subjectId} [get]
func (c *QuizController) ListBySubject(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	quizzes, total, err := c.QuizService.List(repository.QuizFilter{
		SubjectID: util.MustParseUint(ctx.Param("subjectId")),
		Sort:      ctx.DefaultQuery("sort", "createdAt:desc"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		util.LogInternalError(ctx, "Quiz listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"quizzes":    quizzes,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// Get godoc
// @Summary Get one quiz with questions and answer key
// @Tags admin-quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} model.Quiz
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, "Quiz lookup failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz})
}

// Update godoc
// @Summary Update a quiz
// @Description Supplying questions replaces the question list wholesale
// @Tags admin-quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Param body body QuizRequest true "fields to update"
// @Success 200 {object} model.Quiz
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(util.MustParseUint(ctx.Param("id")), req.toInput())
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Quiz update failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Quiz updated", "quiz": quiz})
}

// Delete godoc
// @Summary Delete a quiz and its questions
// @Tags admin-quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	if err := c.QuizService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, "Quiz deletion failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Quiz deleted"})
}

// Stats godoc
// @Summary Quiz counts grouped by difficulty, plan, and subject
// @Tags admin-quizzes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.QuizStats
// @Router /api/admin/quizzes/stats [get]
func (c *QuizController) Stats(ctx *gin.Context) {
	stats, err := c.QuizService.Stats()
	if err != nil {
		util.LogInternalError(ctx, "Quiz stats failed", err)
		return
	}
	util.Success(ctx, stats)
}
