package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudyLogHandler struct {
	BaseHandler
	studyLogService services.StudyLogService
}

func NewStudyLogHandler(studyLogService services.StudyLogService, logger utils.Logger) *StudyLogHandler {
	return &StudyLogHandler{
		BaseHandler:     NewBaseHandler(logger),
		studyLogService: studyLogService,
	}
}

// CreateStudyLog records a study session
// @Summary Log study session
// @Tags study-logs
// @Accept json
// @Produce json
// @Param log body services.CreateStudyLogRequest true "Study session"
// @Success 201 {object} SuccessResponse{data=services.StudyLogResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /study-logs [post]
func (h *StudyLogHandler) CreateStudyLog(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Creating study log")

	var req services.CreateStudyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	log, err := h.studyLogService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Study session logged", log)
}

// ListStudyLogs lists the caller's study sessions, newest first
// @Summary List study sessions
// @Tags study-logs
// @Produce json
// @Param category query string false "Category"
// @Param topic_id query string false "Topic"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param page query int false "Page" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} SuccessResponse{data=services.StudyLogListResponse}
// @Router /study-logs [get]
func (h *StudyLogHandler) ListStudyLogs(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	logs, err := h.studyLogService.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Study sessions retrieved", logs)
}

// DeleteStudyLog removes one of the caller's study sessions
// @Summary Delete study session
// @Tags study-logs
// @Param id path uint true "Study log ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /study-logs/{id} [delete]
func (h *StudyLogHandler) DeleteStudyLog(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	id := parseIDParam(c, "id")
	if id == 0 {
		return
	}
	h.LogRequest(c, "Deleting study log", "study_log_id", id)

	if err := h.studyLogService.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StudyLogHandler) parseFilters(c *gin.Context) (repositories.StudyLogFilters, bool) {
	var filters repositories.StudyLogFilters
	filters.Limit, filters.Offset = parsePage(c)
	filters.SortBy = c.Query("sort_by")
	filters.SortOrder = c.Query("sort_order")
	filters.TopicID = optionalQuery(c, "topic_id")

	if category := optionalQuery(c, "category"); category != nil {
		value := models.TopicCategory(*category)
		filters.Category = &value
	}

	var ok bool
	if filters.DateFrom, ok = parseDateQuery(c, "date_from"); !ok {
		return filters, false
	}
	if filters.DateTo, ok = parseDateQuery(c, "date_to"); !ok {
		return filters, false
	}
	return filters, true
}
