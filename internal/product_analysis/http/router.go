package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate-questions", h.generateQuestions)
	rg.POST("/transparency-score", h.transparencyScore)
	rg.POST("/analyze-product", h.analyzeProduct)
	rg.GET("/reports", h.listReports)
	rg.POST("/generate-pdf-report", h.generatePDFReport)
}
