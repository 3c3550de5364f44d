// Package jsonrepair recovers JSON payloads from LLM output that may wrap
// them in markdown fences or prose, or truncate them mid-structure. Decode is
// best-effort: it never panics, and callers that receive an error are
// expected to fall back to an empty value.
package jsonrepair

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Decode unmarshals data into v, progressively relaxing: as-is first, then
// the extracted JSON payload, then a repaired copy of it.
func Decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("empty input")
	}

	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	extracted := Extract(string(data))
	if extracted == "" {
		return errors.New("no JSON payload found")
	}

	if err := json.Unmarshal([]byte(extracted), v); err == nil {
		return nil
	}

	repaired := Repair(extracted)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("unrecoverable JSON: %w", err)
	}
	return nil
}

// Extract returns the first JSON object or array embedded in s, stripping
// markdown code fences and any surrounding prose.
func Extract(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	objStart := strings.Index(trimmed, "{")
	arrStart := strings.Index(trimmed, "[")

	start := objStart
	closer := "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start = arrStart
		closer = "]"
	}
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(trimmed, closer)
	if end <= start {
		// Truncated payload — keep the tail so Repair can close it.
		return trimmed[start:]
	}
	return trimmed[start : end+1]
}

// Repair closes unterminated strings and brackets in truncated JSON and
// removes trailing commas. The result is not guaranteed to parse; Decode
// treats a still-broken payload as unrecoverable.
func Repair(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	out := s
	if inString {
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
	}

	out = strings.TrimRight(out, " \t\r\n")
	switch {
	case strings.HasSuffix(out, ":"):
		out += "null"
	case strings.HasSuffix(out, ","):
		out = strings.TrimSuffix(out, ",")
	}

	// A valid payload never ends mid-number.
	for len(out) > 0 {
		last := out[len(out)-1]
		if last == '.' || last == '-' || last == '+' || last == 'e' || last == 'E' {
			out = out[:len(out)-1]
			continue
		}
		break
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out += "}"
		} else {
			out += "]"
		}
	}

	return trailingComma.ReplaceAllString(out, "$1")
}
