package http

import (
	"context"
	"encoding/json"

	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

// Forwarder posts raw JSON to an AI service path
type Forwarder interface {
	Forward(ctx context.Context, path string, raw []byte) (json.RawMessage, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, data domain.ProductData) (*domain.AnalysisResponse, error)
}

type ReportLister interface {
	List(ctx context.Context, limit int) ([]domain.ReportRecord, error)
}

type PDFRenderer interface {
	Render(req domain.ReportRequest) ([]byte, error)
}

// Handler serves the product analysis API
type Handler struct {
	ai        Forwarder
	analyzer  Analyzer
	reports   ReportLister
	renderer  PDFRenderer
	listLimit int
}

func New(ai Forwarder, analyzer Analyzer, reports ReportLister, renderer PDFRenderer, listLimit int) *Handler {
	if listLimit <= 0 {
		listLimit = 50
	}
	return &Handler{
		ai:        ai,
		analyzer:  analyzer,
		reports:   reports,
		renderer:  renderer,
		listLimit: listLimit,
	}
}
