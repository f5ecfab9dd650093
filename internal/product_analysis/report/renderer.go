package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

const (
	placeholder = "N/A"

	pageHeight   = 792.0 // Letter, points
	bottomMargin = 50.0
	lineStep     = 20.0
)

// Options tunes the renderer
type Options struct {
	// Compress deflates page streams. Tests turn it off to inspect text.
	Compress bool
	Creator  string
}

// Renderer turns a ReportRequest into a one-shot PDF document
type Renderer struct {
	opts Options
	now  func() time.Time
}

func NewRenderer(opts Options) *Renderer {
	if opts.Creator == "" {
		opts.Creator = "Hedamo Backend"
	}
	return &Renderer{opts: opts, now: time.Now}
}

type scoreLine struct {
	label string
	key   string
}

var scoreLines = []scoreLine{
	{"Health Score", "health"},
	{"Ethical Score", "ethical"},
	{"Transparency Score", "transparency"},
	{"Overall Score", "overall"},
}

// Render builds the complete document in memory. Nothing is returned unless
// the whole document rendered without error.
func (r *Renderer) Render(req domain.ReportRequest) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: %v", domain.ErrRenderFailed, p)
		}
	}()

	product := req.ProductData
	score := req.AnalysisData.Object("score")
	scores := product.Object("scores")

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetCreator(r.opts.Creator, true)
	pdf.SetTitle("Product Transparency Report", true)
	pdf.SetCreationDate(r.now())
	pdf.SetAutoPageBreak(false, bottomMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w := &writer{pdf: pdf, tr: tr}
	pdf.AddPage()

	w.text(20, 50, 50, "Product Transparency Report")
	w.text(16, 50, 100, "Product: "+product.StringOr("name", placeholder))
	w.text(12, 50, 130, "Brand: "+product.StringOr("brand", placeholder))
	w.text(12, 50, 150, "Category: "+product.StringOr("category", placeholder))

	w.text(12, 50, 200, "Scores:")
	y := 220.0
	for _, line := range scoreLines {
		w.text(12, 70, y, fmt.Sprintf("%s: %s/10", line.label, FormatScore(scores, line.key)))
		y += lineStep
	}

	next := 320.0
	if strengths := score.Strings("strengths"); len(strengths) > 0 {
		next = w.list(50, next, "Strengths:", strengths)
	}

	if recs := score.Strings("recommendations"); len(recs) > 0 {
		w.list(50, max(next, 420), "Recommendations:", recs)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// FormatScore renders a numeric score, or N/A when the value is missing or not a number
func FormatScore(scores domain.Payload, key string) string {
	v, ok := scores.Float(key)
	if !ok {
		return placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename is the attachment name for a product report
func Filename(product domain.Payload) string {
	name := strings.TrimSpace(product.StringOr("name", ""))
	if name == "" {
		name = "product"
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return -1
		case r == '"' || r == '\\' || r == '/' || r == ';':
			return '_'
		default:
			return r
		}
	}, name)

	return name + "-report.pdf"
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// text places s with its top edge at y, as a layout engine measuring from the top would.
func (w *writer) text(size, x, y float64, s string) {
	w.pdf.SetFont("Helvetica", "", size)
	w.pdf.Text(x, y+size, w.tr(s))
}

// list writes a heading and bullet items, continuing on a new page when needed.
// It returns the y position after the last item.
func (w *writer) list(x, y float64, heading string, items []string) float64 {
	y = w.ensureRoom(y)
	w.text(12, x, y, heading)
	y += lineStep

	for _, item := range items {
		y = w.ensureRoom(y)
		w.text(12, x+20, y, "• "+item)
		y += lineStep
	}
	return y
}

func (w *writer) ensureRoom(y float64) float64 {
	if y+lineStep > pageHeight-bottomMargin {
		w.pdf.AddPage()
		return 50
	}
	return y
}
