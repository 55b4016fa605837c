package controller

import (
	"errors"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackService *service.FeedbackService
}

func NewFeedbackController(feedbackService *service.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackService: feedbackService}
}

// swagger:model FeedbackRequest
type FeedbackRequest struct {
	Text string `json:"text" binding:"required"`
}

// Submit godoc
// @Summary Submit feedback
// @Description The text is sentiment-classified before it is stored
// @Tags feedback
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body FeedbackRequest true "feedback text"
// @Success 201 {object} model.Feedback
// @Failure 400 {object} util.ErrorResponse
// @Router /api/feedback/submit [post]
func (c *FeedbackController) Submit(ctx *gin.Context) {
	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	feedback, err := c.FeedbackService.Submit(ctx.Request.Context(), claims.UserID, req.Text)
	if err != nil {
		if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Feedback submission failed", err)
		}
		return
	}

	util.Created(ctx, gin.H{"message": "Feedback submitted", "feedback": feedback})
}

// ListMine godoc
// @Summary The caller's feedback
// @Tags feedback
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/feedback/user [get]
func (c *FeedbackController) ListMine(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	claims := util.GetUserFromContext(ctx)

	feedback, total, err := c.FeedbackService.ListByUser(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, "Feedback listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"feedback":   feedback,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// ListAll godoc
// @Summary All feedback across users
// @Tags admin-feedback
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/feedback/all [get]
func (c *FeedbackController) ListAll(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)

	feedback, total, err := c.FeedbackService.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, "Feedback listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"feedback":   feedback,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// Delete godoc
// @Summary Remove feedback
// @Description Owners remove their own; admins remove any
// @Tags feedback
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "feedback id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/feedback/{id} [delete]
func (c *FeedbackController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	err := c.FeedbackService.Delete(util.MustParseUint(ctx.Param("id")), claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, util.ErrFeedbackNotFound) {
			util.NotFound(ctx, "Feedback not found")
		} else if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx, "You cannot delete this feedback")
		} else {
			util.LogInternalError(ctx, "Feedback deletion failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Feedback deleted"})
}

// Stats godoc
// @Summary Sentiment split, all time and trailing week
// @Tags feedback
// @Produce json
// @Success 200 {object} service.FeedbackStats
// @Router /api/feedback/public-stats [get]
func (c *FeedbackController) Stats(ctx *gin.Context) {
	stats, err := c.FeedbackService.Stats()
	if err != nil {
		util.LogInternalError(ctx, "Feedback stats failed", err)
		return
	}
	util.Success(ctx, stats)
}
