package handlers

import (
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	profileHandler   *ProfileHandler
	studyLogHandler  *StudyLogHandler
	mockTestHandler  *MockTestHandler
	readinessHandler *ReadinessHandler
	exportHandler    *ExportHandler
	auth             gin.HandlerFunc
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	auth gin.HandlerFunc,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		profileHandler:   NewProfileHandler(serviceManager.Profile(), serviceManager.Catalog(), logger),
		studyLogHandler:  NewStudyLogHandler(serviceManager.StudyLog(), logger),
		mockTestHandler:  NewMockTestHandler(serviceManager.MockTest(), logger),
		readinessHandler: NewReadinessHandler(serviceManager.Readiness(), serviceManager.Progress(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), logger),
		auth:             auth,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(hm.auth)
	{
		v1.GET("/catalog/topics", hm.profileHandler.GetCatalog)

		profile := v1.Group("/profile")
		{
			profile.GET("", hm.profileHandler.GetProfile)
			profile.PUT("", hm.profileHandler.UpsertProfile)
			profile.POST("/onboarding", hm.profileHandler.CompleteOnboarding)
		}

		studyLogs := v1.Group("/study-logs")
		{
			studyLogs.POST("", hm.studyLogHandler.CreateStudyLog)
			studyLogs.GET("", hm.studyLogHandler.ListStudyLogs)
			studyLogs.DELETE("/:id", hm.studyLogHandler.DeleteStudyLog)
		}

		mockTests := v1.Group("/mock-tests")
		{
			mockTests.GET("", hm.mockTestHandler.ListMockTests)
			mockTests.GET("/summary", hm.mockTestHandler.GetSummary)
			mockTests.POST("/attempts", hm.mockTestHandler.RecordAttempt)
			mockTests.GET("/attempts", hm.mockTestHandler.ListAttempts)
		}

		readinessGroup := v1.Group("/readiness")
		{
			readinessGroup.GET("", hm.readinessHandler.GetReadiness)
			readinessGroup.POST("/recompute", hm.readinessHandler.Recompute)
			readinessGroup.GET("/breakdown", hm.readinessHandler.GetBreakdown)
		}

		v1.GET("/dashboard", hm.readinessHandler.GetDashboard)
		v1.GET("/progress", hm.readinessHandler.GetProgress)

		v1.GET("/export/progress.xlsx", hm.exportHandler.ExportProgress)
	}
}
