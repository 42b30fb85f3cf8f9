package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReadinessHandler struct {
	BaseHandler
	readinessService services.ReadinessService
	progressService  services.ProgressService
}

func NewReadinessHandler(readinessService services.ReadinessService, progressService services.ProgressService, logger utils.Logger) *ReadinessHandler {
	return &ReadinessHandler{
		BaseHandler:      NewBaseHandler(logger),
		readinessService: readinessService,
		progressService:  progressService,
	}
}

// GetReadiness returns the caller's readiness score and weak areas
// @Summary Get readiness
// @Tags readiness
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ReadinessResponse}
// @Router /readiness [get]
func (h *ReadinessHandler) GetReadiness(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	result, err := h.readinessService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Readiness retrieved", result)
}

// Recompute scores the caller's history again, bypassing the cache
// @Summary Recompute readiness
// @Tags readiness
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ReadinessResponse}
// @Router /readiness/recompute [post]
func (h *ReadinessHandler) Recompute(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Recomputing readiness")

	result, err := h.readinessService.Compute(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Readiness recomputed", result)
}

// GetBreakdown returns the per-topic factors behind the score
// @Summary Readiness breakdown
// @Tags readiness
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ReadinessBreakdown}
// @Router /readiness/breakdown [get]
func (h *ReadinessHandler) GetBreakdown(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	breakdown, err := h.readinessService.Breakdown(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Readiness breakdown retrieved", breakdown)
}

// GetDashboard returns the dashboard summary
// @Summary Dashboard
// @Tags progress
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.DashboardResponse}
// @Router /dashboard [get]
func (h *ReadinessHandler) GetDashboard(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	dashboard, err := h.progressService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

// GetProgress returns study totals, activity and readiness history
// @Summary Progress
// @Tags progress
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.ProgressResponse}
// @Router /progress [get]
func (h *ReadinessHandler) GetProgress(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	progress, err := h.progressService.Progress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Progress retrieved", progress)
}
