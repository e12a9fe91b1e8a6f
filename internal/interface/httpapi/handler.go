package httpapi

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"claimdesk-service/internal/domain/entity"
	"claimdesk-service/internal/usecase"
	"claimdesk-service/pkg/logger"
	"claimdesk-service/pkg/utils"
)

// Handler exposes the claim operations as the JSON API the dashboard calls
type Handler struct {
	service *usecase.ClaimService
	logger  logger.Logger
}

// NewHandler creates a new claims API handler
func NewHandler(service *usecase.ClaimService, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the claim routes on the router
func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.GET("/claims", h.listClaims)
	api.POST("/claims", h.createClaim)
	api.GET("/claims/:id", h.getClaim)
	api.PATCH("/claims/:id/status", h.updateStatus)
	api.PATCH("/claims/:id/notes", h.updateNotes)
	api.POST("/claims/:id/documents", h.uploadDocuments)
}

// claimRow decorates a claim with the display fields the table renders
type claimRow struct {
	entity.Claim
	StatusDisplay entity.StatusDescriptor `json:"statusDisplay"`
	AmountDisplay string                  `json:"amountDisplay"`
	SubmittedOn   string                  `json:"submittedOn"`
	IncidentOn    string                  `json:"incidentOn"`
}

func toRow(claim entity.Claim) claimRow {
	return claimRow{
		Claim:         claim,
		StatusDisplay: claim.Status.Display(),
		AmountDisplay: utils.FormatCurrency(claim.Amount),
		SubmittedOn:   utils.FormatDate(claim.SubmissionDate),
		IncidentOn:    utils.FormatDate(claim.IncidentDate),
	}
}

func (h *Handler) listClaims(c *gin.Context) {
	pagination := entity.PaginationParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 10),
	}

	sortParams := entity.SortParams{
		Field:     c.DefaultQuery("sortField", "submissionDate"),
		Direction: entity.SortDirection(c.DefaultQuery("sortDirection", string(entity.SortDesc))),
	}

	filters := entity.ClaimFilters{
		Search:           c.Query("search"),
		Status:           entity.ClaimStatus(c.Query("status")),
		PolicyholderName: c.Query("policyholderName"),
	}
	if start, end := c.Query("startDate"), c.Query("endDate"); start != "" && end != "" {
		filters.DateRange = &entity.DateRange{Start: start, End: end}
	}

	page, err := h.service.ListPage(c.Request.Context(), filters, sortParams, pagination)
	if err != nil {
		h.renderError(c, err)
		return
	}

	rows := make([]claimRow, 0, len(page.Claims))
	for _, claim := range page.Claims {
		rows = append(rows, toRow(claim))
	}

	totalPages := 0
	if pagination.PageSize > 0 {
		totalPages = int(math.Ceil(float64(page.Total) / float64(pagination.PageSize)))
	}

	c.JSON(http.StatusOK, gin.H{
		"claims":     rows,
		"total":      page.Total,
		"page":       pagination.Page,
		"pageSize":   pagination.PageSize,
		"totalPages": totalPages,
		"pageItems":  utils.PaginationItems(pagination.Page, totalPages),
	})
}

func (h *Handler) getClaim(c *gin.Context) {
	claim, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"claim":              toRow(*claim),
		"allowedTransitions": entity.AllowedTransitions[claim.Status],
	})
}

func (h *Handler) createClaim(c *gin.Context) {
	var input entity.ClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	claim, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"claim": toRow(*claim)})
}

func (h *Handler) updateStatus(c *gin.Context) {
	var body struct {
		Status entity.ClaimStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	claim, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": toRow(*claim)})
}

func (h *Handler) updateNotes(c *gin.Context) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	claim, err := h.service.UpdateNotes(c.Request.Context(), c.Param("id"), body.Notes)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": toRow(*claim)})
}

func (h *Handler) uploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid multipart form"}})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "no files provided"}})
		return
	}

	files := make([]usecase.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, file := range opened {
			file.Close()
		}
	}()
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "failed to read uploaded file"}})
			return
		}
		opened = append(opened, file)
		files = append(files, usecase.UploadFile{Name: header.Filename, Content: file})
	}

	results := h.service.UploadDocuments(c.Request.Context(), c.Param("id"), files)

	type uploadRow struct {
		Filename string `json:"filename"`
		URL      string `json:"url,omitempty"`
		Error    string `json:"error,omitempty"`
	}
	rows := make([]uploadRow, 0, len(results))
	failed := 0
	for _, result := range results {
		row := uploadRow{Filename: result.Filename, URL: result.URL}
		if result.Err != nil {
			row.Error = result.Err.Error()
			failed++
		}
		rows = append(rows, row)
	}

	status := http.StatusOK
	if failed == len(results) {
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"uploads": rows, "failed": failed})
}

// renderError maps normalized errors to HTTP responses
func (h *Handler) renderError(c *gin.Context, err error) {
	var apiErr *entity.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case entity.CodeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": apiErr})
			return
		case entity.CodeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": apiErr})
			return
		}
		h.logger.Error("backend request failed", "error", apiErr)
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr})
		return
	}

	h.logger.Error("unexpected error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
