package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"flyerwatch/internal/service"
)

// ValidityHandler triggers validity scans on demand.
type ValidityHandler struct {
	validityService service.ValidityService
}

// NewValidityHandler creates a new ValidityHandler.
func NewValidityHandler(validityService service.ValidityService) *ValidityHandler {
	return &ValidityHandler{validityService: validityService}
}

// Scan handles POST /api/v1/validity/scan
// @Summary Run a validity scan now
// @Description Re-evaluate every flyer's validity against the given date and deliver digests for flips
// @Tags validity
// @Produce json
// @Param date query string false "Scan date (YYYY-MM-DD); defaults to today"
// @Success 200 {object} APIResponse{data=service.ScanSummary} "Scan summary"
// @Failure 400 {object} APIResponse "Bad date"
// @Security BearerAuth
// @Router /validity/scan [post]
func (h *ValidityHandler) Scan(c *gin.Context) {
	today := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
		today = parsed
	}

	summary, err := h.validityService.RunScan(c.Request.Context(), today)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}
