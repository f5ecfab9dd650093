package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

func (h *Handler) analyzeProduct(c *gin.Context) {
	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBodyError(c, err)
		return
	}

	resp, err := h.analyzer.Analyze(c.Request.Context(), *req.ProductData)
	if err != nil {
		writeError(c, http.StatusInternalServerError, labelAnalyze, upstreamMessage(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
