package controller

import (
	"errors"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// swagger:model SubjectRequest
type SubjectRequest struct {
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// Create godoc
// @Summary Create a subject
// @Tags admin-subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubjectRequest true "subject data"
// @Success 201 {object} model.Subject
// @Failure 400 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /api/admin/subjects [post]
func (c *SubjectController) Create(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	subject, err := c.SubjectService.Create(service.SubjectInput{
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSubjectExists) {
			util.Conflict(ctx, "Subject with this name and level already exists")
		} else if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Subject creation failed", err)
		}
		return
	}

	util.Created(ctx, gin.H{"message": "Subject created", "subject": subject})
}

// List godoc
// @Summary List subjects
// @Tags admin-subjects
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param level query string false "filter by level"
// @Param search query string false "name search"
// @Param sort query string false "field:asc|desc"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/subjects [get]
func (c *SubjectController) List(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	f := repository.SubjectFilter{
		Level:  ctx.Query("level"),
		Search: ctx.Query("search"),
		Sort:   ctx.DefaultQuery("sort", "createdAt:desc"),
		Page:   page,
		Limit:  limit,
	}
	if ctx.Query("active") == "true" {
		f.ActiveOnly = true
	}

	subjects, total, err := c.SubjectService.List(f)
	if err != nil {
		util.LogInternalError(ctx, "Subject listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"subjects":   subjects,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// ListPublic serves the unauthenticated catalog: active subjects only.
func (c *SubjectController) ListPublic(ctx *gin.Context) {
	page, limit := util.ParsePageQuery(ctx)
	f := repository.SubjectFilter{
		Level:      ctx.Query("level"),
		Search:     ctx.Query("search"),
		Sort:       ctx.DefaultQuery("sort", "createdAt:desc"),
		ActiveOnly: true,
		Page:       page,
		Limit:      limit,
	}

	subjects, total, err := c.SubjectService.List(f)
	if err != nil {
		util.LogInternalError(ctx, "Subject listing failed", err)
		return
	}

	util.Success(ctx, gin.H{
		"subjects":   subjects,
		"pagination": util.NewPagination(total, page, limit),
	})
}

// ListByLevel godoc
// @Summary List subjects for one level
// @Tags subjects
// @Produce json
// @Param level path string true "subject level"
// @Success 200 {object} map[string]interface{}
// @Router /api/subjects/level/{level} [get]
func (c *SubjectController) ListByLevel(ctx *gin.Context) {
	subjects, total, err := c.SubjectService.List(repository.SubjectFilter{
		Level:      ctx.Param("level"),
		ActiveOnly: true,
	})
	if err != nil {
		util.LogInternalError(ctx, "Subject listing failed", err)
		return
	}
	util.Success(ctx, gin.H{"subjects": subjects, "total": total})
}

// Get godoc
// @Summary Get one subject
// @Tags subjects
// @Produce json
// @Param id path int true "subject id"
// @Success 200 {object} model.Subject
// @Failure 404 {object} util.ErrorResponse
// @Router /api/subjects/{id} [get]
func (c *SubjectController) Get(ctx *gin.Context) {
	subject, err := c.SubjectService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else {
			util.LogInternalError(ctx, "Subject lookup failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"subject": subject})
}

// Update godoc
// @Summary Update a subject
// @Tags admin-subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "subject id"
// @Param body body SubjectRequest true "fields to update"
// @Success 200 {object} model.Subject
// @Failure 404 {object} util.ErrorResponse
// @Failure 409 {object} util.ErrorResponse
// @Router /api/admin/subjects/{id} [put]
func (c *SubjectController) Update(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(util.MustParseUint(ctx.Param("id")), service.SubjectInput{
		Name:        req.Name,
		Level:       req.Level,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else if errors.Is(err, util.ErrSubjectExists) {
			util.Conflict(ctx, "Subject with this name and level already exists")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Subject update failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Subject updated", "subject": subject})
}

// Delete godoc
// @Summary Delete a subject
// @Description Fails while quizzes still reference the subject
// @Tags admin-subjects
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "subject id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/subjects/{id} [delete]
func (c *SubjectController) Delete(ctx *gin.Context) {
	err := c.SubjectService.Delete(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, "Subject not found")
		} else if errors.Is(err, util.ErrSubjectNotEmpty) {
			util.BadRequest(ctx, "Cannot delete a subject that still has quizzes")
		} else {
			util.LogInternalError(ctx, "Subject deletion failed", err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "Subject deleted"})
}

// Stats godoc
// @Summary Subject counts grouped by level
// @Tags admin-subjects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/subjects/stats [get]
func (c *SubjectController) Stats(ctx *gin.Context) {
	stats, err := c.SubjectService.StatsByLevel()
	if err != nil {
		util.LogInternalError(ctx, "Subject stats failed", err)
		return
	}
	util.Success(ctx, gin.H{"byLevel": stats})
}
