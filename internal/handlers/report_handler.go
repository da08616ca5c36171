package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/internal/services"
	"github.com/SIH-2025/edusafe-service/internal/utils"
)

// maxReportImageSize caps uploaded report photos at 5 MiB.
const maxReportImageSize = 5 << 20

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
	uploadDir     string
}

func NewReportHandler(reportService services.ReportService, uploadDir string, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
		uploadDir:     uploadDir,
	}
}

// CreateReport files a new incident report. Accepts either a JSON body or a
// multipart form with an optional image attachment.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	var (
		req      services.CreateReportRequest
		imageURL *string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var err error
		req, imageURL, err = h.parseMultipartReport(c)
		if err != nil {
			h.respondError(c, http.StatusBadRequest, "Validation failed", []string{err.Error()})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), &req, imageURL, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondCreated(c, report, "Report submitted successfully")
}

// parseMultipartReport reads the report fields from form values and stores
// the image attachment, if any, under the upload directory.
func (h *ReportHandler) parseMultipartReport(c *gin.Context) (services.CreateReportRequest, *string, error) {
	req := services.CreateReportRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
		Category:    c.PostForm("category"),
		Priority:    c.PostForm("priority"),
		IsAnonymous: c.PostForm("isAnonymous") == "true",
		IsPublic:    c.PostForm("isPublic") == "true",
	}
	if tags := c.PostForm("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}
	for name, dst := range map[string]**float64{
		"geoLat":      &req.GeoLat,
		"geoLng":      &req.GeoLng,
		"geoAccuracy": &req.GeoAccuracy,
	} {
		if raw := c.PostForm(name); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return req, nil, fmt.Errorf("%s must be a number", name)
			}
			*dst = &v
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		// No attachment is fine.
		return req, nil, nil
	}

	imageURL, err := h.saveReportImage(c, file)
	if err != nil {
		return req, nil, err
	}
	return req, &imageURL, nil
}

func (h *ReportHandler) saveReportImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxReportImageSize {
		return "", fmt.Errorf("image must be at most 5MB")
	}
	if contentType := file.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image uploads are allowed")
	}

	filename := "report-" + uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to store image")
	}
	return "/uploads/" + filename, nil
}

// ListReports returns every report, for staff triage.
func (h *ReportHandler) ListReports(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	params, ok := h.parseListParams(c)
	if !ok {
		return
	}

	result, err := h.reportService.List(c.Request.Context(), params, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, result)
}

// ListMyReports returns the caller's own reports.
func (h *ReportHandler) ListMyReports(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	params, ok := h.parseListParams(c)
	if !ok {
		return
	}

	result, err := h.reportService.ListMine(c.Request.Context(), params, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, result)
}

func (h *ReportHandler) parseListParams(c *gin.Context) (services.ListReportsParams, bool) {
	params := services.ListReportsParams{
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 0),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("status"); raw != "" {
		status := models.ReportStatus(raw)
		if !models.IsValidReportStatus(status) {
			h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid status. Must be one of: Pending, Investigating, Resolved"})
			return params, false
		}
		params.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := models.ReportCategory(raw)
		if !models.IsValidReportCategory(category) {
			h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid category. Must be one of: Safety, Bullying, Infrastructure, Academic, Behavioral, Other"})
			return params, false
		}
		params.Category = &category
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.ReportPriority(raw)
		if !models.IsValidReportPriority(priority) {
			h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid priority. Must be one of: Low, Medium, High, Critical"})
			return params, false
		}
		params.Priority = &priority
	}
	if raw := c.Query("search"); raw != "" {
		params.Search = &raw
	}

	return params, true
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, report)
}

// ResolveReport marks the report resolved. Resolving again is a no-op that
// keeps the original resolution.
func (h *ReportHandler) ResolveReport(c *gin.Context) {
	id := h.requireIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.respondError(c, http.StatusBadRequest, "Validation failed", []string{"Invalid request payload"})
		return
	}

	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	result, err := h.reportService.Resolve(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	message := "Report resolved successfully"
	if result.AlreadyResolved {
		message = "Report already resolved"
	}
	h.respondMessage(c, result.Report, message)
}

// GetStats returns the aggregate report statistics.
func (h *ReportHandler) GetStats(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	stats, err := h.reportService.Stats(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, stats)
}

// ExportStats downloads the statistics as an xlsx workbook.
func (h *ReportHandler) ExportStats(c *gin.Context) {
	actor := h.requireUser(c)
	if actor == nil {
		return
	}

	workbook, err := h.reportService.ExportStats(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report-stats.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
