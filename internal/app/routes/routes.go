package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/controllers"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/middleware"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	professorController *controllers.ProfessorController,
	projectController *controllers.ProjectController,
	applicationController *controllers.ApplicationController,
	analyticsController *controllers.AnalyticsController,
	trackingController *controllers.TrackingController,
	jwtService *auth.JWTService,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	v1.POST("/auth/login", authController.Login)
	v1.POST("/professors", professorController.Register)

	// Tracked email clicks, hit from mail clients
	v1.GET("/track/:token", trackingController.TrackClick)

	projects := v1.Group("/projects")
	{
		projects.GET("", projectController.List)
		projects.GET("/:id", middleware.OptionalJWTAuth(jwtService), projectController.Get)

		// Student application submission needs no account
		projects.POST("/:id/applications", applicationController.Create)

		// Resume download accepts a bearer token or the signed token from
		// the notification email
		projects.GET("/:id/applications/:applicationId/resume",
			middleware.OptionalJWTAuth(jwtService), applicationController.DownloadResume)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		me := authenticated.Group("/professors/me")
		{
			me.GET("", professorController.GetProfile)
			me.PUT("", professorController.UpdateProfile)
			me.DELETE("", professorController.Deactivate)
			me.PUT("/password", professorController.ChangePassword)
			me.GET("/projects", projectController.ListOwn)
		}

		ownedProjects := authenticated.Group("/projects")
		{
			ownedProjects.POST("", projectController.Create)
			ownedProjects.PUT("/:id", projectController.Update)
			ownedProjects.DELETE("/:id", projectController.Delete)
			ownedProjects.POST("/:id/files", projectController.AddFile)
			ownedProjects.DELETE("/:id/files/:fileName", projectController.RemoveFile)

			ownedProjects.GET("/:id/applications", applicationController.List)
			ownedProjects.PUT("/:id/applications/:applicationId/status", applicationController.UpdateStatus)

			ownedProjects.GET("/:id/analytics", analyticsController.GetProjectAnalytics)
		}

		analytics := authenticated.Group("/analytics")
		{
			analytics.GET("", analyticsController.GetGlobalAnalytics)
			analytics.GET("/clicks", trackingController.GetClickStats)
		}
	}
}
