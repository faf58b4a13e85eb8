package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/service"
)

// PreferenceHandler manages per-user notification preferences.
type PreferenceHandler struct {
	prefService service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(prefService service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

type preferenceRequest struct {
	IncludedShops  []string `json:"included_shops"`
	ExcludedShops  []string `json:"excluded_shops"`
	TrackedItems   []string `json:"tracked_items"`
	WantsPDFUpdate bool     `json:"wants_pdf_updates"`
}

// Set handles PUT /api/v1/preferences/:userID
// @Summary Create or replace a user's preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Param body body preferenceRequest true "Preferences"
// @Success 200 {object} APIResponse{data=domain.UserPreference} "Stored preferences"
// @Failure 400 {object} APIResponse "Malformed body or unknown shop"
// @Security BearerAuth
// @Router /preferences/{userID} [put]
func (h *PreferenceHandler) Set(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "user ID must be an integer")
		return
	}
	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}

	pref := &domain.UserPreference{
		UserID:         userID,
		IncludedShops:  req.IncludedShops,
		ExcludedShops:  req.ExcludedShops,
		TrackedItems:   req.TrackedItems,
		WantsPDFUpdate: req.WantsPDFUpdate,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.prefService.Set(c.Request.Context(), pref); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pref)
}

// Get handles GET /api/v1/preferences/:userID
// @Summary Get a user's preferences
// @Tags preferences
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} APIResponse{data=domain.UserPreference} "Preferences"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /preferences/{userID} [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "user ID must be an integer")
		return
	}
	pref, err := h.prefService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, pref)
}

// List handles GET /api/v1/preferences
// @Summary List all user preferences
// @Tags preferences
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.UserPreference} "All preferences"
// @Security BearerAuth
// @Router /preferences [get]
func (h *PreferenceHandler) List(c *gin.Context) {
	prefs, err := h.prefService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, prefs)
}

// Delete handles DELETE /api/v1/preferences/:userID
// @Summary Delete a user's preferences
// @Tags preferences
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} APIResponse "Deleted"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /preferences/{userID} [delete]
func (h *PreferenceHandler) Delete(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "user ID must be an integer")
		return
	}
	if err := h.prefService.Delete(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": userID})
}
