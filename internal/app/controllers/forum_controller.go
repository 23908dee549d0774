package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// ForumController handles forum post endpoints
type ForumController struct {
	forumService *services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

// CreateForumPost creates a new forum post
// @Summary Create a forum post
// @Description Creates a forum post, notifies every other college and sends a dedicated mention notification to each mentioned college
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateForumPostRequest true "Post data"
// @Success 201 {object} dto.APIResponse{data=models.ForumPost} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /forum [post]
func (c *ForumController) CreateForumPost(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.CreateForumPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	post, err := c.forumService.Create(ctx.Request.Context(), college, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// GetForumPosts lists all forum posts
// @Summary List all forum posts
// @Description Returns every forum post, newest first, with mentions expanded into college summaries
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ForumPost} "Posts retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /forum [get]
func (c *ForumController) GetForumPosts(ctx *gin.Context) {
	posts, err := c.forumService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetForumPostByID returns a single forum post
// @Summary Get a forum post by ID
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=models.ForumPost} "Post retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /forum/{id} [get]
func (c *ForumController) GetForumPostByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	post, err := c.forumService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// UpdateForumPost partially updates a forum post
// @Summary Update a forum post
// @Description Partially updates a forum post. Only the posting college may update it. Mention changes do not emit or retract notifications.
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdateForumPostRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.ForumPost} "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the posting college"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /forum/{id} [put]
func (c *ForumController) UpdateForumPost(ctx *gin.Context) {
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

	var req dto.UpdateForumPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	post, err := c.forumService.Update(ctx.Request.Context(), college.ID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeleteForumPost removes a forum post
// @Summary Delete a forum post
// @Description Deletes a forum post. Only the posting college may delete it.
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the posting college"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /forum/{id} [delete]
func (c *ForumController) DeleteForumPost(ctx *gin.Context) {
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

	if err := c.forumService.Delete(ctx.Request.Context(), college.ID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Forum post removed"}))
}
