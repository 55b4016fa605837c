package controller

import (
	"errors"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	AdminRepo        *repository.AdminRepository
}

func NewDashboardController(dashboardService *service.DashboardService, adminRepo *repository.AdminRepository) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		AdminRepo:        adminRepo,
	}
}

// UserStats godoc
// @Summary The caller's dashboard
// @Description Score rollups, weekly and six-month activity, per-subject performance
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.UserDashboard
// @Router /api/dashboard/stats [get]
func (c *DashboardController) UserStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	dash, err := c.DashboardService.UserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Dashboard stats failed", err)
		return
	}
	util.Success(ctx, dash)
}

// RecentQuizzes godoc
// @Summary The caller's most recent attempts
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "how many, default 5"
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard/recent-quizzes [get]
func (c *DashboardController) RecentQuizzes(ctx *gin.Context) {
	n, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	claims := util.GetUserFromContext(ctx)
	attempts, err := c.DashboardService.RecentQuizzes(claims.UserID, n)
	if err != nil {
		util.LogInternalError(ctx, "Recent quizzes failed", err)
		return
	}
	util.Success(ctx, gin.H{"attempts": attempts})
}

// Recommendations godoc
// @Summary Subjects worth trying next
// @Description Unattempted subjects first, then the ones with the most quizzes
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard/recommendations [get]
func (c *DashboardController) Recommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	recs, err := c.DashboardService.Recommendations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Recommendations failed", err)
		return
	}
	util.Success(ctx, gin.H{"recommendations": recs})
}

// EnrolledCourses godoc
// @Summary Active subjects at the caller's accessible levels
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard/enrolled-courses [get]
func (c *DashboardController) EnrolledCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.DashboardService.EnrolledCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Enrolled courses failed", err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// AdminStats godoc
// @Summary Platform-wide totals for the admin console
// @Tags admin-dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.AdminDashboard
// @Router /api/admin/dashboard [get]
func (c *DashboardController) AdminStats(ctx *gin.Context) {
	dash, err := c.DashboardService.AdminStats()
	if err != nil {
		util.LogInternalError(ctx, "Admin dashboard failed", err)
		return
	}
	util.Success(ctx, dash)
}

// AdminProfile godoc
// @Summary The calling admin's profile
// @Tags admin-dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.Admin
// @Failure 404 {object} util.ErrorResponse
// @Router /api/admin/profile [get]
func (c *DashboardController) AdminProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	admin, err := c.AdminRepo.FindByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx, "Admin not found")
		return
	} else if err != nil {
		util.LogInternalError(ctx, "Admin profile lookup failed", err)
		return
	}
	util.Success(ctx, gin.H{"admin": admin})
}
