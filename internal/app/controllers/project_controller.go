package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/helpers"
)

// ProjectController handles research project operations
type ProjectController struct {
	projectService services.ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		logger:         logger,
	}
}

// Create handles project creation
// @Summary Create a research project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.APIResponse{data=dto.ProjectResponse} "Project created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid project creation payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.Create(ctx.Request.Context(), middleware.ProfessorID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// List returns published projects
// @Summary Browse published projects
// @Description Lists published, visible projects with optional category filter and free-text search. Public endpoint.
// @Tags projects
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Free-text search over title and description"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProjectResponse}
// @Router /projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ProjectFilterRequest{Page: page, PageSize: size}
	if v := ctx.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	projects, total, err := c.projectService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(projects, helpers.NewPaginationInfo(total, page, size)))
}

// ListOwn returns the authenticated professor's projects
// @Summary List own projects
// @Description Lists the professor's own projects, in every status unless a status filter is given.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(DRAFT, PUBLISHED, CLOSED)
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]dto.ProjectResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /professors/me/projects [get]
func (c *ProjectController) ListOwn(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.ProjectFilterRequest{Page: page, PageSize: size}
	if v := ctx.Query("status"); v != "" {
		if !models.ProjectStatus(v).IsValid() {
			middleware.RespondValidationError(ctx, fmt.Errorf("unknown project status: %s", v))
			return
		}
		filter.Status = &v
	}

	projects, total, err := c.projectService.ListOwn(ctx.Request.Context(), middleware.ProfessorID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(projects, helpers.NewPaginationInfo(total, page, size)))
}

// Get returns a single project
// @Summary Get a project
// @Description Returns a published project. Owners also see their drafts and closed projects.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	resp, err := c.projectService.GetByID(ctx.Request.Context(), ctx.Param("id"), middleware.ProfessorID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Update handles partial project updates by the owner
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [put]
func (c *ProjectController) Update(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid project update payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.Update(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Delete removes a project and its files
// @Summary Delete a project
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204 "Project deleted"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	if err := c.projectService.Delete(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddFile attaches a document to a project
// @Summary Upload a project file
// @Description Attaches a PDF or Word document (max 5MB) to an owned project
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "Document to attach"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized, or unsupported file"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/files [post]
func (c *ProjectController) AddFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		c.logger.Warn().Err(err).Msg("Missing file part in upload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.AddFile(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id"), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RemoveFile detaches a document from a project
// @Summary Remove a project file
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param fileName path string true "Stored file name"
// @Success 204 "File removed"
// @Failure 404 {object} dto.ErrorResponse "Project or file not found"
// @Router /projects/{id}/files/{fileName} [delete]
func (c *ProjectController) RemoveFile(ctx *gin.Context) {
	if err := c.projectService.RemoveFile(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id"), ctx.Param("fileName")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
