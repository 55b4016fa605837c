package controller

import (
	"errors"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} model.User
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.NotFound(ctx, "User not found")
		return
	}
	util.Success(ctx, gin.H{"user": user})
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Gender    *string `json:"gender"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProfileRequest true "fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} util.ErrorResponse
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
	})
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(ctx, "Email already in use")
		} else {
			util.LogInternalError(ctx, "Profile update failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Profile updated", "user": user})
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param picture formData file true "image file, max 5MB"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Router /api/profile/picture [post]
func (c *UserController) UploadProfilePicture(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("picture")
	if err != nil {
		util.BadRequest(ctx, "Picture file is required")
		return
	}

	if fileHeader.Size > util.MaxProfilePictureBytes {
		util.BadRequest(ctx, "Picture exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, "Picture upload failed", err)
		return
	}
	mimeType, err := util.ValidateMimeType(file, []string{util.MimeImage})
	file.Close()
	if err != nil || !util.IsImage(mimeType) {
		util.BadRequest(ctx, "Only image files are allowed")
		return
	}

	claims := util.GetUserFromContext(ctx)
	url, err := c.UserService.UploadProfilePicture(ctx.Request.Context(), claims.UserID, fileHeader)
	if err != nil {
		util.LogInternalError(ctx, "Picture upload failed", err)
		return
	}

	util.Success(ctx, gin.H{"message": "Profile picture updated", "profilePicture": url})
}
