package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flyerwatch/internal/domain"
	"flyerwatch/internal/service"
)

// IngestHandler accepts raw detection batches from the OCR pipeline.
type IngestHandler struct {
	ingestService service.IngestService
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(ingestService service.IngestService) *IngestHandler {
	return &IngestHandler{ingestService: ingestService}
}

type ingestRequest struct {
	FlyerID    uuid.UUID             `json:"flyer_id" binding:"required"`
	ShopName   string                `json:"shop_name" binding:"required"`
	Detections []domain.RawDetection `json:"detections" binding:"required"`
}

// Ingest handles POST /api/v1/detections
// @Summary Ingest raw detections
// @Description Accept one flyer's OCR detections and assemble them into detection records
// @Tags detections
// @Accept json
// @Produce json
// @Param body body ingestRequest true "Detections for one flyer"
// @Success 200 {object} APIResponse{data=service.IngestSummary} "Ingest summary"
// @Failure 400 {object} APIResponse "Malformed body or unknown shop"
// @Security BearerAuth
// @Router /detections [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body: "+err.Error())
		return
	}
	if len(req.Detections) == 0 {
		RespondError(c, http.StatusBadRequest, "EMPTY_BATCH", "detections must not be empty")
		return
	}

	summary, err := h.ingestService.ProcessDetections(c.Request.Context(), service.IngestInput{
		FlyerID:    req.FlyerID,
		ShopName:   req.ShopName,
		Detections: req.Detections,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}
