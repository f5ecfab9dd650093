package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/upstream"
)

func (h *Handler) generateQuestions(c *gin.Context) {
	h.forward(c, upstream.PathGenerateQuestions, labelQuestions)
}

func (h *Handler) transparencyScore(c *gin.Context) {
	h.forward(c, upstream.PathTransparencyScore, labelScore)
}

// forward relays the caller body to the AI service untouched and
// answers with the upstream body untouched.
func (h *Handler) forward(c *gin.Context, path, label string) {
	raw, err := readJSONBody(c)
	if err != nil {
		writeBodyError(c, err)
		return
	}

	ctx := c.Request.Context()
	out, err := h.ai.Forward(ctx, path, raw)
	if err != nil {
		logging.NewLogger(ctx).LogErrorf("forward", "AI service error on %s: %v", path, err)
		writeError(c, http.StatusInternalServerError, label, upstreamMessage(err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
