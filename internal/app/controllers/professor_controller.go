package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
)

// ProfessorController handles professor account operations
type ProfessorController struct {
	professorService services.ProfessorService
	logger           zerolog.Logger
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService, logger zerolog.Logger) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
		logger:           logger,
	}
}

// Register handles professor registration
// @Summary Register a new professor
// @Description Creates a professor account. Registration is gated by the admin password and restricted to university email addresses.
// @Tags professors
// @Accept json
// @Produce json
// @Param request body dto.RegisterProfessorRequest true "Professor registration information"
// @Success 201 {object} dto.APIResponse{data=dto.ProfessorResponse} "Professor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or email domain"
// @Failure 401 {object} dto.ErrorResponse "Invalid admin password"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /professors [post]
func (c *ProfessorController) Register(ctx *gin.Context) {
	var req dto.RegisterProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.professorService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetProfile returns the authenticated professor's profile
// @Summary Get own profile
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfessorResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professors/me [get]
func (c *ProfessorController) GetProfile(ctx *gin.Context) {
	resp, err := c.professorService.GetProfile(ctx.Request.Context(), middleware.ProfessorID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateProfile updates the authenticated professor's profile
// @Summary Update own profile
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfessorResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /professors/me [put]
func (c *ProfessorController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid profile update payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	resp, err := c.professorService.UpdateProfile(ctx.Request.Context(), middleware.ProfessorID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ChangePassword changes the authenticated professor's password
// @Summary Change own password
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Router /professors/me/password [put]
func (c *ProfessorController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid password change payload")
		middleware.RespondValidationError(ctx, err)
		return
	}

	if err := c.professorService.ChangePassword(ctx.Request.Context(), middleware.ProfessorID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Deactivate disables the authenticated professor's account
// @Summary Deactivate own account
// @Tags professors
// @Security BearerAuth
// @Success 204 "Account deactivated"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /professors/me [delete]
func (c *ProfessorController) Deactivate(ctx *gin.Context) {
	if err := c.professorService.SetActive(ctx.Request.Context(), middleware.ProfessorID(ctx), false); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
