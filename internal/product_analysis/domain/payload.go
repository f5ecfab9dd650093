package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is a JSON object whose shape is owned by someone else (the AI
// service, or the frontend for report input). Every accessor tolerates
// missing keys and wrong types.
type Payload map[string]any

// DecodePayload parses a JSON object. A JSON null yields a nil Payload.
func DecodePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}

func (p Payload) Has(key string) bool {
	if p == nil {
		return false
	}
	v, ok := p[key]
	return ok && v != nil
}

func (p Payload) Value(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// StringOr returns the value for key as a string. Numbers and booleans are
// formatted; anything else yields def.
func (p Payload) StringOr(key, def string) string {
	switch v := p.Value(key).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return def
	}
}

// Float returns the numeric value for key. Numeric strings are accepted.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p.Value(key).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (p Payload) FloatOr(key string, def float64) float64 {
	if f, ok := p.Float(key); ok {
		return f
	}
	return def
}

// Strings returns the string items of an array value, skipping non-strings.
func (p Payload) Strings(key string) []string {
	switch v := p.Value(key).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Object returns the nested object for key, or nil.
func (p Payload) Object(key string) Payload {
	switch v := p.Value(key).(type) {
	case map[string]any:
		return Payload(v)
	case Payload:
		return v
	default:
		return nil
	}
}
