package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeJSON parses a model reply into T. The reply may be wrapped in a
// markdown fence or surrounded by prose. Every key in required must be present
// at the top level. Values are decoded weakly, so "85" fills an int field.
// All failures wrap ErrMalformedResponse.
func DecodeJSON[T any](raw string, required ...string) (T, error) {
	var out T

	cleaned := extractJSON(raw)
	if cleaned == "" {
		return out, ErrEmptyResponse
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range required {
		if _, ok := data[key]; !ok {
			return out, fmt.Errorf("%w: missing %q", ErrMalformedResponse, key)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return out, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.TrimSpace(strings.Trim(raw, "`"))

	if strings.HasPrefix(raw, "{") {
		return raw
	}

	// Model added prose around the object.
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			return raw[i : j+1]
		}
	}

	return raw
}
