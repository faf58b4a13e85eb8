package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"flyerwatch/internal/service"
)

const dateLayout = "2006-01-02"

// FlyerHandler handles flyer upload and lookup endpoints.
type FlyerHandler struct {
	flyerService service.FlyerService
}

// NewFlyerHandler creates a new FlyerHandler.
func NewFlyerHandler(flyerService service.FlyerService) *FlyerHandler {
	return &FlyerHandler{flyerService: flyerService}
}

// Upload handles POST /api/v1/flyers
// @Summary Upload a flyer PDF
// @Description Upload a flyer PDF (max 50MB) with its shop and validity window
// @Tags flyers
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Flyer PDF"
// @Param shop_name formData string true "Shop the flyer belongs to"
// @Param valid_from formData string true "First day of validity (YYYY-MM-DD)"
// @Param valid_to formData string true "Last day of validity (YYYY-MM-DD)"
// @Success 201 {object} APIResponse{data=domain.Flyer} "Flyer created"
// @Failure 400 {object} APIResponse "Missing field, unknown shop or bad date range"
// @Failure 413 {object} APIResponse "File too large"
// @Security BearerAuth
// @Router /flyers [post]
func (h *FlyerHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	shopName := c.PostForm("shop_name")
	if shopName == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_SHOP", "shop_name field is required")
		return
	}
	validFrom, err := time.Parse(dateLayout, c.PostForm("valid_from"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DATE", "valid_from must be YYYY-MM-DD")
		return
	}
	validTo, err := time.Parse(dateLayout, c.PostForm("valid_to"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DATE", "valid_to must be YYYY-MM-DD")
		return
	}

	flyer, err := h.flyerService.Upload(c.Request.Context(), service.FlyerUploadInput{
		File:      file,
		Header:    header,
		ShopName:  shopName,
		ValidFrom: validFrom,
		ValidTo:   validTo,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, flyer)
}

// Get handles GET /api/v1/flyers/:id
// @Summary Get a flyer
// @Tags flyers
// @Produce json
// @Param id path string true "Flyer ID"
// @Success 200 {object} APIResponse{data=domain.Flyer} "Flyer"
// @Failure 404 {object} APIResponse "Not found"
// @Security BearerAuth
// @Router /flyers/{id} [get]
func (h *FlyerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid flyer ID format")
		return
	}
	flyer, err := h.flyerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, flyer)
}

// List handles GET /api/v1/flyers
// @Summary List flyers
// @Tags flyers
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Flyer,meta=PagMeta} "List of flyers"
// @Security BearerAuth
// @Router /flyers [get]
func (h *FlyerHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	flyers, total, err := h.flyerService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, flyers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// PageURL handles GET /api/v1/flyers/:id/pages/:page
// @Summary Get a presigned URL for one flyer page
// @Tags flyers
// @Produce json
// @Param id path string true "Flyer ID"
// @Param page path int true "Page number (1-based)"
// @Success 200 {object} APIResponse "Presigned URL"
// @Failure 404 {object} APIResponse "Flyer or page not found"
// @Security BearerAuth
// @Router /flyers/{id}/pages/{page} [get]
func (h *FlyerHandler) PageURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid flyer ID format")
		return
	}
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", "page must be an integer")
		return
	}
	url, err := h.flyerService.GetPageURL(c.Request.Context(), id, page)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}
