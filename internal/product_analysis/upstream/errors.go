package upstream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UpstreamError is the normalized failure of one AI service call.
// Status is 0 when no response was received.
type UpstreamError struct {
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s: %s", e.Path, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// detailMessage extracts the "detail" field of an upstream error body.
// String details are returned as is, structured ones as compact JSON.
func detailMessage(body []byte) (string, bool) {
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}

	raw, ok := parsed["detail"]
	if !ok || string(raw) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}

	return string(raw), true
}
