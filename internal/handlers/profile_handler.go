package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/readiness-service/internal/readiness"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/SAP-F-2025/readiness-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	BaseHandler
	profileService services.ProfileService
	catalog        *readiness.Catalog
}

func NewProfileHandler(profileService services.ProfileService, catalog *readiness.Catalog, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    NewBaseHandler(logger),
		profileService: profileService,
		catalog:        catalog,
	}
}

// CatalogResponse lists what a student can pick during onboarding and logging.
type CatalogResponse struct {
	Categories []string             `json:"categories"`
	Topics     []readiness.Topic    `json:"topics"`
	MockTests  []readiness.MockTest `json:"mock_tests"`
	Companies  []string             `json:"companies"`
}

// GetProfile returns the caller's profile
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.UserProfile}
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Profile retrieved", profile)
}

// UpsertProfile creates or replaces the caller's profile
// @Summary Save profile
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body services.UpsertProfileRequest true "Profile"
// @Success 200 {object} SuccessResponse{data=models.UserProfile}
// @Failure 400 {object} ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Saving profile")

	var req services.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Profile saved", profile)
}

// CompleteOnboarding marks onboarding as finished
// @Summary Complete onboarding
// @Tags profile
// @Produce json
// @Success 200 {object} SuccessResponse{data=models.UserProfile}
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /profile/onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Completing onboarding")

	profile, err := h.profileService.CompleteOnboarding(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Onboarding completed", profile)
}

// GetCatalog lists topics, mock tests and companies
// @Summary Catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} SuccessResponse{data=CatalogResponse}
// @Router /catalog/topics [get]
func (h *ProfileHandler) GetCatalog(c *gin.Context) {
	h.RespondWithSuccess(c, http.StatusOK, "Catalog retrieved", CatalogResponse{
		Categories: h.catalog.Categories(),
		Topics:     h.catalog.Topics,
		MockTests:  h.catalog.MockTests,
		Companies:  validator.KnownCompanies,
	})
}
