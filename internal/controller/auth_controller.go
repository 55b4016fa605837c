package controller

import (
	"errors"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	GoogleAuth  *service.GoogleAuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, googleAuth *service.GoogleAuthService, cfg *config.Config) *AuthController {
	return &AuthController{
		AuthService: authService,
		GoogleAuth:  googleAuth,
		Cfg:         cfg,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, "Email already registered")
		} else {
			util.LogInternalError(ctx, "Registration failed", err)
		}
		return
	}

	util.Created(ctx, gin.H{"message": "Registration successful", "user": user})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.BadRequest(ctx, "Invalid email or password")
		} else {
			util.LogInternalError(ctx, "Login failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// AdminLogin godoc
// @Summary Log in as an admin
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Router /api/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, admin, err := c.AuthService.AdminLogin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.BadRequest(ctx, "Invalid email or password")
		} else {
			util.LogInternalError(ctx, "Admin login failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "admin": admin})
}

// GoogleLogin redirects the browser to the Google consent screen.
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	state := model.GenerateUUID()
	// The state cookie closes the loop against forged callbacks.
	ctx.SetCookie("oauth_state", state, 600, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect, c.GoogleAuth.AuthURL(state))
}

// GoogleCallback exchanges the code, upserts the user, and bounces back
// to the frontend with a session token.
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	state, err := ctx.Cookie("oauth_state")
	if err != nil || state == "" || ctx.Query("state") != state {
		util.BadRequest(ctx, "Invalid OAuth state")
		return
	}

	code := ctx.Query("code")
	if code == "" {
		util.BadRequest(ctx, "Missing authorization code")
		return
	}

	info, err := c.GoogleAuth.Exchange(ctx.Request.Context(), code)
	if err != nil {
		util.LogInternalError(ctx, "Google login failed", err)
		return
	}

	token, _, err := c.AuthService.UpsertGoogleUser(info.ID, info.Email, info.GivenName, info.FamilyName)
	if err != nil {
		util.LogInternalError(ctx, "Google login failed", err)
		return
	}

	redirect := c.Cfg.Server.FrontendURL + "/auth/callback?token=" + url.QueryEscape(token)
	ctx.Redirect(http.StatusTemporaryRedirect, redirect)
}

// CurrentUser godoc
// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.User
// @Failure 401 {object} util.ErrorResponse
// @Router /auth/user [get]
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Authentication required")
		return
	}
	util.Success(ctx, gin.H{"user": user})
}

// Logout acknowledges the logout; tokens are stateless so the client
// just drops its copy.
func (c *AuthController) Logout(ctx *gin.Context) {
	util.Success(ctx, gin.H{"message": "Logged out"})
}
