package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no JSON value can be recovered from a model response.
var ErrNoJSON = errors.New("no JSON found in model response")

// ExtractJSON recovers the JSON payload of a free-text model response. Attempts, in order:
//  1. the whole trimmed text;
//  2. the text with markdown code fences removed;
//  3. the span from the first '{' to the last '}';
//  4. each balanced {...} block, left to right.
func ExtractJSON(text string) ([]byte, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrNoJSON
	}
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	if stripped := StripCodeFences(trimmed); json.Valid([]byte(stripped)) {
		return []byte(stripped), nil
	}

	if i, j := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); i >= 0 && j > i {
		if span := trimmed[i : j+1]; json.Valid([]byte(span)) {
			return []byte(span), nil
		}
	}

	for start := strings.IndexByte(trimmed, '{'); start >= 0; {
		if end := matchBrace(trimmed, start); end > start {
			if span := trimmed[start : end+1]; json.Valid([]byte(span)) {
				return []byte(span), nil
			}
		}
		next := strings.IndexByte(trimmed[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, ErrNoJSON
}

// StripCodeFences removes ```json and ``` markers and surrounding whitespace.
func StripCodeFences(text string) string {
	s := strings.ReplaceAll(text, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// matchBrace returns the index of the '}' closing the '{' at open, honoring JSON strings, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// DecodeObject recovers a JSON object from text and decodes it into a generic map.
func DecodeObject(text string) (map[string]any, []byte, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, raw, err
	}
	if m == nil {
		return nil, raw, errors.New("model response is JSON null, expected an object")
	}
	return m, raw, nil
}
