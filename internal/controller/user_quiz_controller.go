package controller

import (
	"errors"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"
	"mcquiz_backend/pkg/monitoring"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserQuizController is the learner-facing quiz surface. Listings are
// scoped to the caller's subscription levels and attempt payloads never
// carry the answer key.
type UserQuizController struct {
	QuizService    *service.QuizService
	AttemptService *service.AttemptService
	AttemptRepo    *repository.AttemptRepository
}

func NewUserQuizController(quizService *service.QuizService, attemptService *service.AttemptService, attemptRepo *repository.AttemptRepository) *UserQuizController {
	return &UserQuizController{
		QuizService:    quizService,
		AttemptService: attemptService,
		AttemptRepo:    attemptRepo,
	}
}

// List godoc
// @Summary List quizzes the caller can take
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param subjectId query int false "filter by subject"
// @Param difficulty query string false "filter by difficulty"
// @Param search query string false "title search"
// @Success 200 {object} map[string]interface{}
// @Router /api/user-quizzes [get]
func (c *UserQuizController) List(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	f := repository.QuizFilter{
		Difficulty:         ctx.Query("difficulty"),
		Search:             ctx.Query("search"),
		SubscriptionLevels: util.GetSubscriptionLevels(ctx),
		ActiveOnly:         true,
		Sort:               ctx.DefaultQuery("sort", "createdAt:desc"),
		Page:               page,
		Limit:              limit,
	}
	if sid := ctx.Query("subjectId"); sid != "" {
		f.SubjectID = util.MustParseUint(sid)
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
// @Summary List a subject's quizzes the caller can take
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId path int true "subject id"
// @Success 200 {object} map[string]interface{}
// @Router /api/user-quizzes/subject/{subjectId} [get]
func (c *UserQuizController) ListBySubject(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	quizzes, total, err := c.QuizService.List(repository.QuizFilter{
		SubjectID:          util.MustParseUint(ctx.Param("subjectId")),
		SubscriptionLevels: util.GetSubscriptionLevels(ctx),
		ActiveOnly:         true,
		Sort:               ctx.DefaultQuery("sort", "createdAt:desc"),
		Page:               page,
		Limit:              limit,
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

// AttemptQuestion is a question as shown while taking a quiz: no correct
// answer, no explanation.
type AttemptQuestion struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Position int      `json:"position"`
}

// GetForAttempt godoc
// @Summary Fetch a quiz to take it
// @Description Questions are stripped of the answer key and explanations
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/user-quizzes/{id}/attempt [get]
func (c *UserQuizController) GetForAttempt(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil || !quiz.IsActive {
		if err == nil || errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, "Quiz lookup failed", err)
		}
		return
	}

	levels := util.GetSubscriptionLevels(ctx)
	if !containsLevel(levels, quiz.SubscriptionLevel) {
		ctx.JSON(http.StatusForbidden, gin.H{
			"message":        "Subscription upgrade required",
			"requiredLevels": []string{quiz.SubscriptionLevel},
			"userLevels":     levels,
		})
		return
	}

	claims := util.GetUserFromContext(ctx)
	previous, err := c.AttemptRepo.CountByUserAndQuiz(claims.UserID, quiz.ID)
	if err != nil {
		util.LogInternalError(ctx, "Quiz lookup failed", err)
		return
	}

	questions := make([]AttemptQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, AttemptQuestion{
			ID:       q.ID,
			Question: q.Text,
			Options:  []string(q.Options),
			Position: q.Position,
		})
	}

	util.Success(ctx, gin.H{
		"quiz": gin.H{
			"id":                quiz.ID,
			"title":             quiz.Title,
			"description":       quiz.Description,
			"subject":           quiz.Subject,
			"timeLimit":         quiz.TimeLimit,
			"difficulty":        quiz.Difficulty,
			"passingScore":      quiz.PassingScore,
			"subscriptionLevel": quiz.SubscriptionLevel,
			"questions":         questions,
		},
		"previousAttempts": previous,
	})
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers   []service.SubmittedAnswer `json:"answers" binding:"required"`
	TimeSpent int                       `json:"timeSpent"`
}

// Submit godoc
// @Summary Submit quiz answers for scoring
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "quiz id"
// @Param body body SubmitQuizRequest true "answers"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/user-quizzes/{id}/submit [post]
func (c *UserQuizController) Submit(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	attempt, result, err := c.AttemptService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Answers, req.TimeSpent)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "Quiz not found")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Quiz submission failed", err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()

	util.Success(ctx, gin.H{
		"message":        "Quiz submitted",
		"attemptId":      attempt.ID,
		"score":          result.Score,
		"correctAnswers": result.Correct,
		"totalQuestions": result.TotalQuestions,
		"passed":         result.Passed,
		"results":        result.Results,
	})
}

func containsLevel(levels []string, want string) bool {
	for _, l := range levels {
		if l == want {
			return true
		}
	}
	return false
}
