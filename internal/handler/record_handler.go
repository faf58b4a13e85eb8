package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flyerwatch/internal/service"
)

// RecordHandler exposes read access to detection records.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// Get handles GET /api/v1/records/:imageID
// @Summary Get one detection record
// @Tags records
// @Produce json
// @Param imageID path string true "Image ID"
// @Success 200 {object} APIResponse{data=domain.DetectionRecord} "Record"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /records/{imageID} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.recordService.GetByImageID(c.Request.Context(), c.Param("imageID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// List handles GET /api/v1/records
// @Summary List detection records
// @Tags records
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 200)" default(50)
// @Success 200 {object} APIResponse{data=[]domain.DetectionRecord,meta=PagMeta} "List of records"
// @Security BearerAuth
// @Router /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, total, err := h.recordService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListByFlyer handles GET /api/v1/flyers/:id/records
// @Summary List detection records of one flyer
// @Tags records
// @Produce json
// @Param id path string true "Flyer ID"
// @Success 200 {object} APIResponse{data=[]domain.DetectionRecord} "Records"
// @Security BearerAuth
// @Router /flyers/{id}/records [get]
func (h *RecordHandler) ListByFlyer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid flyer ID format")
		return
	}
	records, err := h.recordService.ListByFlyer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, records)
}

// Export handles GET /api/v1/flyers/:id/records/export
// @Summary Export one flyer's records as XLSX
// @Tags records
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Flyer ID"
// @Success 200 {file} binary "XLSX workbook"
// @Security BearerAuth
// @Router /flyers/{id}/records/export [get]
func (h *RecordHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid flyer ID format")
		return
	}
	data, err := h.recordService.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("records_%s.xlsx", id)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
