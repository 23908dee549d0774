package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
)

// AuthController handles registration, login and password reset endpoints
type AuthController struct {
	authService *services.AuthService
	fileStorage *filestorage.LocalStorage
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, fileStorage *filestorage.LocalStorage) *AuthController {
	return &AuthController{
		authService: authService,
		fileStorage: fileStorage,
	}
}

// Register handles college registration
// @Summary Register a new college
// @Description Creates a new college account and returns it with a session token. Accepts JSON or multipart form data with an optional "logo" file part (max 5MB).
// @Tags auth
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "College registered"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Name or email already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	logoPath := ""
	if logoFile, err := ctx.FormFile("logo"); err == nil && logoFile != nil {
		if !filestorage.IsImage(logoFile) {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Logo must be an image file"))
			return
		}
		if logoFile.Size > filestorage.MaxLogoSize {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("Logo file exceeds the 5MB limit"))
			return
		}
		logoPath, err = c.fileStorage.SaveFile(logoFile)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	college, token, err := c.authService.Register(ctx.Request.Context(), &req, logoPath)
	if err != nil {
		if logoPath != "" {
			_ = c.fileStorage.DeleteFile(logoPath)
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   token,
		College: dto.ToCollegeResponse(college),
	}))
}

// Login handles college authentication
// @Summary Log in a college
// @Description Authenticates a college by email and password and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	college, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   token,
		College: dto.ToCollegeResponse(college),
	}))
}

// ForgotPassword starts the password reset flow
// @Summary Request a password reset link
// @Description Issues a single-use reset token valid for 10 minutes and emails the reset link to the account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Reset email sent"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "No account with that email"
// @Failure 502 {object} dto.ErrorResponse "Reset email could not be sent"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{
		Message: "Password reset email sent",
	}))
}

// ResetPassword completes the password reset flow
// @Summary Reset the password with a token
// @Description Consumes the reset token from the emailed link and replaces the account password
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token from the emailed link"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/reset-password/{token} [put]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), ctx.Param("token"), req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{
		Message: "Password has been reset successfully",
	}))
}
