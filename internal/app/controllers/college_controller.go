package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// CollegeController handles college profile and directory endpoints
type CollegeController struct {
	collegeService *services.CollegeService
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService *services.CollegeService) *CollegeController {
	return &CollegeController{collegeService: collegeService}
}

// GetMyProfile returns the logged-in college's own profile
// @Summary Get own profile
// @Description Returns the profile of the authenticated college
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CollegeResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /colleges/me [get]
func (c *CollegeController) GetMyProfile(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCollegeResponse(college)))
}

// UpdateMyProfile applies a partial update to the logged-in college's profile
// @Summary Update own profile
// @Description Partially updates the authenticated college's profile. Fields present in the request overwrite stored values; absent fields are kept. Accepts JSON, or multipart form data with an optional "logo" file part (max 5MB). Sending logo as an empty string restores the default placeholder.
// @Tags colleges
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCollegeRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Profile updated, fresh token returned"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /colleges/me [put]
func (c *CollegeController) UpdateMyProfile(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.UpdateCollegeRequest
	var logoFile *multipart.FileHeader

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := bindUpdateCollegeForm(ctx, &req); err != nil {
			middleware.HandleAPIError(ctx, middleware.BindingError(err))
			return
		}
		if file, err := ctx.FormFile("logo"); err == nil {
			logoFile = file
		}
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	updated, token, err := c.collegeService.UpdateProfile(ctx.Request.Context(), college.ID, &req, logoFile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{
		Token:   token,
		College: dto.ToCollegeResponse(updated),
	}))
}

// GetCollegeByID returns another college's public profile
// @Summary Get a college by ID
// @Description Returns the profile of a specific college
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Param id path int true "College ID"
// @Success 200 {object} dto.APIResponse{data=dto.CollegeResponse} "College retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Router /colleges/{id} [get]
func (c *CollegeController) GetCollegeByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	college, err := c.collegeService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	college.Password = ""
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCollegeResponse(college)))
}

// GetAllColleges returns the college directory
// @Summary List all colleges
// @Description Returns every registered college ordered by name
// @Tags colleges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CollegeResponse} "Colleges retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /colleges [get]
func (c *CollegeController) GetAllColleges(ctx *gin.Context) {
	colleges, err := c.collegeService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.CollegeResponse, 0, len(colleges))
	for _, college := range colleges {
		college.Password = ""
		responses = append(responses, dto.ToCollegeResponse(college))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// bindUpdateCollegeForm fills the patch struct from multipart form fields.
// Only fields that were actually submitted become non-nil, preserving the
// absent-versus-empty distinction that JSON binding gives for free.
func bindUpdateCollegeForm(ctx *gin.Context, req *dto.UpdateCollegeRequest) error {
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		return err
	}

	form := ctx.Request.MultipartForm
	if form == nil {
		return nil
	}

	get := func(key string) *string {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	req.Name = get("name")
	req.Address = get("address")
	req.City = get("city")
	req.State = get("state")
	req.Country = get("country")
	req.Description = get("description")
	req.Logo = get("logo")
	req.Website = get("website")
	req.ContactNumber = get("contactNumber")
	return nil
}

// parseIDParam parses the ":id" path parameter as a positive int64.
func parseIDParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid ID parameter")
	}
	return id, nil
}
