package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/report"
)

type reportsResponse struct {
	Success bool                  `json:"success"`
	Reports []domain.ReportRecord `json:"reports"`
	Total   int                   `json:"total"`
}

// listReports returns the newest analyses first. ?limit= may lower the configured cap.
func (h *Handler) listReports(c *gin.Context) {
	limit := h.listLimit
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	ctx := c.Request.Context()
	records, err := h.reports.List(ctx, limit)
	if err != nil {
		logging.NewLogger(ctx).LogError("list_reports", err)
		writeError(c, http.StatusInternalServerError, labelReports, err.Error())
		return
	}
	if records == nil {
		records = []domain.ReportRecord{}
	}

	c.JSON(http.StatusOK, reportsResponse{
		Success: true,
		Reports: records,
		Total:   len(records),
	})
}

func (h *Handler) generatePDFReport(c *gin.Context) {
	var req domain.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBodyError(c, err)
		return
	}

	out, err := h.renderer.Render(req)
	if err != nil {
		logging.NewLogger(c.Request.Context()).LogError("generate_pdf", err)
		writeError(c, http.StatusInternalServerError, labelPDF, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(req.ProductData)+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
