package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
)

// AnalyticsController handles application analytics operations
type AnalyticsController struct {
	analyticsService services.AnalyticsService
	logger           zerolog.Logger
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService, logger zerolog.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetProjectAnalytics returns one project's metrics
// @Summary Get a project's analytics
// @Description Returns application counters, funnel rates, and email engagement for an owned project
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectAnalyticsResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/analytics [get]
func (c *AnalyticsController) GetProjectAnalytics(ctx *gin.Context) {
	resp, err := c.analyticsService.GetProjectAnalytics(ctx.Request.Context(), middleware.ProfessorID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetGlobalAnalytics returns portal-wide metrics
// @Summary Get global analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GlobalAnalyticsResponse}
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /analytics [get]
func (c *AnalyticsController) GetGlobalAnalytics(ctx *gin.Context) {
	resp, err := c.analyticsService.GetGlobalAnalytics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
