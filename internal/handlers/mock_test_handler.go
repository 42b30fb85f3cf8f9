package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-service/internal/repositories"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type MockTestHandler struct {
	BaseHandler
	mockTestService services.MockTestService
}

func NewMockTestHandler(mockTestService services.MockTestService, logger utils.Logger) *MockTestHandler {
	return &MockTestHandler{
		BaseHandler:     NewBaseHandler(logger),
		mockTestService: mockTestService,
	}
}

// ListMockTests lists catalog mock tests with the caller's latest result
// @Summary List mock tests
// @Tags mock-tests
// @Produce json
// @Param company query string false "Company"
// @Success 200 {object} SuccessResponse{data=[]services.MockTestResponse}
// @Router /mock-tests [get]
func (h *MockTestHandler) ListMockTests(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	tests, err := h.mockTestService.ListTests(c.Request.Context(), userID, c.Query("company"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Mock tests retrieved", tests)
}

// RecordAttempt stores the result of a mock test
// @Summary Record mock test attempt
// @Tags mock-tests
// @Accept json
// @Produce json
// @Param attempt body services.RecordAttemptRequest true "Attempt"
// @Success 201 {object} SuccessResponse{data=services.MockAttemptResponse}
// @Failure 400 {object} ErrorResponse
// @Router /mock-tests/attempts [post]
func (h *MockTestHandler) RecordAttempt(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Recording mock attempt")

	var req services.RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	attempt, err := h.mockTestService.RecordAttempt(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Mock attempt recorded", attempt)
}

// ListAttempts lists the caller's mock attempts, newest first
// @Summary List mock attempts
// @Tags mock-tests
// @Produce json
// @Param mock_test_id query string false "Mock test"
// @Param company query string false "Company"
// @Param page query int false "Page" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} SuccessResponse{data=services.MockAttemptListResponse}
// @Router /mock-tests/attempts [get]
func (h *MockTestHandler) ListAttempts(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	filters := repositories.MockAttemptFilters{
		MockTestID: optionalQuery(c, "mock_test_id"),
		CompanyTag: optionalQuery(c, "company"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	filters.Limit, filters.Offset = parsePage(c)
	if filters.DateFrom, ok = parseDateQuery(c, "date_from"); !ok {
		return
	}
	if filters.DateTo, ok = parseDateQuery(c, "date_to"); !ok {
		return
	}

	attempts, err := h.mockTestService.ListAttempts(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Mock attempts retrieved", attempts)
}

// GetSummary returns the caller's mock test totals
// @Summary Mock test summary
// @Tags mock-tests
// @Produce json
// @Success 200 {object} SuccessResponse{data=services.MockTestSummary}
// @Router /mock-tests/summary [get]
func (h *MockTestHandler) GetSummary(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	summary, err := h.mockTestService.Summary(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Mock test summary retrieved", summary)
}
