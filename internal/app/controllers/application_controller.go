package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
)

// validate checks the JSON part of multipart submissions, which bypasses
// gin's binding.
var validate = validator.New()

// ApplicationController handles student application operations
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// Create handles a student application submission
// @Summary Submit an application
// @Description Submits a student application to a published project. The request is multipart/form-data with an "application" JSON part and a "resume" file part (PDF or Word, max 5MB). Public endpoint.
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param application formData string true "Application details as JSON"
// @Param resume formData file true "Resume file"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, closed project, passed deadline, or bad file"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /projects/{id}/applications [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	payload := ctx.PostForm("application")
	if payload == "" {
		c.logger.Warn().Msg("Missing application part in submission")
		middleware.RespondValidationError(ctx, errMissingPart("application"))
		return
	}

	var req dto.CreateApplicationRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Warn().Err(err).Msg("Malformed application JSON")
		middleware.RespondValidationError(ctx, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid application payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resume, err := ctx.FormFile("resume")
	if err != nil {
		c.logger.Warn().Err(err).Msg("Missing resume part in submission")
		middleware.RespondValidationError(ctx, errMissingPart("resume"))
		return
	}

	resp, err := c.applicationService.Create(ctx.Request.Context(), ctx.Param("id"), &req, resume)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// List returns an owned project's applications
// @Summary List a project's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param status query string false "Status filter" Enums(PENDING, ACCEPTED, REJECTED, WITHDRAWN)
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	var status *models.ApplicationStatus
	if v := ctx.Query("status"); v != "" {
		s := models.ApplicationStatus(v)
		if !s.IsValid() {
			middleware.RespondValidationError(ctx, errUnknownStatus(v))
			return
		}
		status = &s
	}

	resp, err := c.applicationService.FindProjectApplications(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id"), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateStatus changes an application's status
// @Summary Update an application's status
// @Description Moves an application along the review workflow. PENDING may become ACCEPTED, REJECTED, or WITHDRAWN; ACCEPTED may still become REJECTED or WITHDRAWN; REJECTED and WITHDRAWN are final.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param applicationId path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid status or transition"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Project or application not found"
// @Router /projects/{id}/applications/{applicationId}/status [put]
func (c *ApplicationController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid status update payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.applicationService.UpdateStatus(ctx.Request.Context(),
		middleware.ProfessorID(ctx), ctx.Param("id"), ctx.Param("applicationId"),
		models.ApplicationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DownloadResume serves an application's resume
// @Summary Download a resume
// @Description Serves the applicant's resume. Callers authenticate with a bearer token, or with the signed download token from the notification email passed as the "token" query parameter.
// @Tags applications
// @Produce application/octet-stream
// @Param id path string true "Project ID"
// @Param applicationId path string true "Application ID"
// @Param token query string false "Signed download token"
// @Success 200 {file} binary "Resume content"
// @Failure 401 {object} dto.ErrorResponse "Missing, invalid, or expired credentials"
// @Failure 404 {object} dto.ErrorResponse "Project, application, or resume not found"
// @Router /projects/{id}/applications/{applicationId}/resume [get]
func (c *ApplicationController) DownloadResume(ctx *gin.Context) {
	projectID := ctx.Param("id")
	applicationID := ctx.Param("applicationId")

	var resume *services.ResumeDownload
	var err error
	if professorID := middleware.ProfessorID(ctx); professorID != "" {
		resume, err = c.applicationService.GetResume(ctx.Request.Context(), professorID, projectID, applicationID)
	} else {
		resume, err = c.applicationService.GetResumeByToken(ctx.Request.Context(), projectID, applicationID, ctx.Query("token"))
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+resume.FileName+`"`)
	ctx.Data(http.StatusOK, resume.MimeType, resume.Content)
}

func errMissingPart(name string) error {
	return fmt.Errorf("missing required form part: %s", name)
}

func errUnknownStatus(value string) error {
	return fmt.Errorf("unknown application status: %s", value)
}
