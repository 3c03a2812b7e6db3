package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
)

// TrackingController handles email click tracking operations
type TrackingController struct {
	trackingService services.TrackingService
	portalURL       string
	logger          zerolog.Logger
}

// NewTrackingController creates a new TrackingController. portalURL is the
// frontend base that tracked clicks redirect to.
func NewTrackingController(trackingService services.TrackingService, portalURL string, logger zerolog.Logger) *TrackingController {
	return &TrackingController{
		trackingService: trackingService,
		portalURL:       strings.TrimRight(portalURL, "/"),
		logger:          logger,
	}
}

// TrackClick records a click on an emailed link and redirects to the portal
// @Summary Record an email click
// @Description Records one click against the token's tracking record and redirects the professor to the application in the portal. Public endpoint, hit from email clients.
// @Tags tracking
// @Param token path string true "Tracking token"
// @Success 302 "Redirect to the portal"
// @Failure 404 {object} dto.ErrorResponse "Unknown tracking token"
// @Router /track/{token} [get]
func (c *TrackingController) TrackClick(ctx *gin.Context) {
	tracking, err := c.trackingService.TrackClick(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	target := fmt.Sprintf("%s/projects/%s/applications/%s",
		c.portalURL, tracking.ProjectID.Hex(), tracking.ApplicationID.Hex())
	ctx.Redirect(http.StatusFound, target)
}

// GetClickStats returns global email engagement figures
// @Summary Get email click statistics
// @Tags tracking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /analytics/clicks [get]
func (c *TrackingController) GetClickStats(ctx *gin.Context) {
	global, perProject, err := c.trackingService.GetGlobalClickStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"global":   global,
		"projects": perProject,
	}))
}
