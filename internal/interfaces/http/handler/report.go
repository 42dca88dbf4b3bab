package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/application/report"
)

// ArchiveKeyHeader carries the storage key of an archived export
const ArchiveKeyHeader = "X-Archive-Key"

// ReportHandler serves the production report
type ReportHandler struct {
	BaseHandler
	reportService *report.ProductionReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *report.ProductionReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Production godoc
// @ID           getProductionReport
// @Summary      Production report
// @Description  Costs every active product (or all with include_inactive) at quantity 1 with the current rates and constants
// @Tags         reports
// @Produce      json
// @Param        include_inactive query bool false "Include inactive products"
// @Success      200 {object} dto.Response{data=report.ProductionReport}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/production [get]
func (h *ReportHandler) Production(c *gin.Context) {
	var req report.GenerateRequest
	if !h.BindQuery(c, &req) {
		return
	}

	r, err := h.reportService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, r)
}

// Export godoc
// @ID           exportProductionReport
// @Summary      Export the production report
// @Description  Downloads the report as PDF or XLSX. When archiving is enabled the storage key is returned in X-Archive-Key.
// @Tags         reports
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string true "Document format" Enums(pdf, xlsx)
// @Param        include_inactive query bool false "Include inactive products"
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/production/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	var req report.ExportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.reportService.Export(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(result.FileName))
	if result.ArchiveKey != "" {
		c.Header(ArchiveKeyHeader, result.ArchiveKey)
	}
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
