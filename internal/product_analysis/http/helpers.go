package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/upstream"
)

const (
	labelQuestions = "Failed to generate questions"
	labelScore     = "Failed to calculate transparency score"
	labelAnalyze   = "Failed to analyze product"
	labelPDF       = "Failed to generate PDF report"
	labelReports   = "Failed to list reports"
	labelBadBody   = "Invalid request body"
	labelTooLarge  = "Payload too large"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, label, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: label, Message: message})
}

// writeBodyError answers a request whose body could not be read or decoded
func writeBodyError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(c, http.StatusRequestEntityTooLarge, labelTooLarge, err.Error())
		return
	}
	writeError(c, http.StatusBadRequest, labelBadBody, err.Error())
}

// readJSONBody returns the raw request body after checking it is well-formed JSON
func readJSONBody(c *gin.Context) ([]byte, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("request body is empty")
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid JSON")
	}
	return raw, nil
}

// upstreamMessage is the client facing text of a failed AI service call:
// the upstream detail when one was sent, else the failure description.
func upstreamMessage(err error) string {
	var upErr *upstream.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return err.Error()
}
