package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON extracts and unmarshals a JSON object embedded in an LLM
// response. Models often wrap JSON in markdown fences or prose, so we
// take the span from the first '{' to the last '}'.
func ParseJSON[T any](response string) (T, error) {
	var out T

	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end < start {
		return out, fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(response[start:end+1]), &out); err != nil {
		return out, fmt.Errorf("failed to parse JSON from response: %w", err)
	}
	return out, nil
}
