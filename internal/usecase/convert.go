package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/gkishore1002/TradeFlow-BE/internal/domain"
)

// Payload values arrive either JSON-decoded (numbers as float64) or as raw
// multipart form strings, so every converter accepts both. A value that is
// present but not numeric is a validation error, never a silent zero.

func floatField(name string, v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, domain.Validationf("%s must be a number", name)
		}
		return f, nil
	default:
		return 0, domain.Validationf("%s must be a number", name)
	}
}

func intField(name string, v any) (int, error) {
	i, err := int64Field(name, v)
	return int(i), err
}

func int64Field(name string, v any) (int64, error) {
	switch val := v.(type) {
	case float64:
		return int64(val), nil
	case float32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, domain.Validationf("%s must be an integer", name)
		}
		return i, nil
	default:
		return 0, domain.Validationf("%s must be an integer", name)
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

// refField keeps the nil/zero distinction for optional foreign keys. Empty
// strings and JSON nulls mean "no reference"; anything else must parse.
func refField(name string, v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" || s == "null" {
			return nil, nil
		}
	}
	id, err := int64Field(name, v)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	return &id, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTime(v any) (time.Time, bool) {
	raw := toString(v)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(v any) *time.Time {
	if t, ok := parseTime(v); ok {
		return &t
	}
	return nil
}
