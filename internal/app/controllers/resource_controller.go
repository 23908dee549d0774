package controllers

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// ResourceController handles resource upload and download endpoints
type ResourceController struct {
	resourceService *services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService) *ResourceController {
	return &ResourceController{resourceService: resourceService}
}

// UploadResource uploads a new resource
// @Summary Upload a resource
// @Description Stores an uploaded file (multipart part "resourceFile", max 20MB) with its metadata and notifies every other college
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Resource title"
// @Param description formData string true "Resource description"
// @Param category formData string true "Resource category" Enums(Official Documents, Event Materials, Reports & Academic Content, Administrative Documents)
// @Param resourceFile formData file true "The file to upload"
// @Success 201 {object} dto.APIResponse{data=models.Resource} "Resource uploaded"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or file missing"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /resources [post]
func (c *ResourceController) UploadResource(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	file, err := ctx.FormFile("resourceFile")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFileUploaded)
		return
	}

	resource, err := c.resourceService.Create(ctx.Request.Context(), college, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// GetResources lists all resources
// @Summary List all resources
// @Description Returns every shared resource, newest first
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Resource} "Resources retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /resources [get]
func (c *ResourceController) GetResources(ctx *gin.Context) {
	resources, err := c.resourceService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// GetResourceByID returns a single resource
// @Summary Get a resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=models.Resource} "Resource retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResourceByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resource, err := c.resourceService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// UpdateResource partially updates resource metadata
// @Summary Update a resource
// @Description Partially updates resource metadata. The stored file is immutable. Only the uploading college may update it.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Resource} "Resource updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the uploading college"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	resource, err := c.resourceService.Update(ctx.Request.Context(), college.ID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// DeleteResource removes a resource and its stored file
// @Summary Delete a resource
// @Description Deletes a resource record and its file. Only the uploading college may delete it.
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Resource deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the uploading college"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.resourceService.Delete(ctx.Request.Context(), college.ID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource removed"}))
}

// DownloadResourceFile streams the stored file back under its original name
// @Summary Download a resource file
// @Description Streams the stored file as an attachment named after the originally uploaded filename
// @Tags resources
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {file} binary "File content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Resource or file not found"
// @Router /resources/download/{id} [get]
func (c *ResourceController) DownloadResourceFile(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resource, path, err := c.resourceService.ResolveDownload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Percent-encode the original filename so special characters survive the
	// Content-Disposition header.
	ctx.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(resource.OriginalFileName)))
	ctx.Header("Content-Type", downloadContentType(path))
	ctx.File(path)
}

// downloadContentType derives the response MIME type from the stored file's
// extension, falling back to a generic binary type for unknown extensions.
func downloadContentType(path string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}
