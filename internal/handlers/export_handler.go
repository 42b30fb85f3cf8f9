package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/readiness-service/internal/models"
	"github.com/SAP-F-2025/readiness-service/internal/services"
	"github.com/SAP-F-2025/readiness-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportProgress downloads the caller's history as an xlsx workbook
// @Summary Export progress
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {file} binary
// @Router /export/progress.xlsx [get]
func (h *ExportHandler) ExportProgress(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Exporting progress")

	req := &models.ExportRequest{Format: "xlsx"}
	if req.DateFrom, ok = parseDateQuery(c, "date_from"); !ok {
		return
	}
	if req.DateTo, ok = parseDateQuery(c, "date_to"); !ok {
		return
	}

	data, err := h.exportService.ExportProgress(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("progress-%s.xlsx", time.Now().UTC().Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
