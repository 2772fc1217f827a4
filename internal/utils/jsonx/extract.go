// Package jsonx extracts JSON objects from free-form LLM output. Responses
// may be wrapped in prose or markdown fences, or truncated mid-object; the
// repair step only closes trailing unclosed containers and strips trailing
// commas, it cannot recover arbitrary truncation.
package jsonx

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNoJSONFound = errors.New("no JSON object found in text")

	objectPattern       = regexp.MustCompile(`(?s)\{.*\}`)
	trailingCommaRegexp = regexp.MustCompile(`,\s*([}\]])`)
)

// Extract unmarshals the first JSON object found in text into v, stripping
// markdown fences and repairing truncated output when needed.
func Extract(text string, v interface{}) error {
	cleaned := StripFences(text)
	if cleaned == "" {
		return ErrNoJSONFound
	}

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	candidate := objectPattern.FindString(cleaned)
	if candidate == "" {
		// Truncated output may have an opening brace but no closing one.
		if idx := strings.Index(cleaned, "{"); idx >= 0 {
			candidate = cleaned[idx:]
		} else {
			return ErrNoJSONFound
		}
	}

	if err := json.Unmarshal([]byte(candidate), v); err == nil {
		return nil
	}

	repaired := Repair(candidate)
	return json.Unmarshal([]byte(repaired), v)
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

// Repair removes trailing commas before closing brackets and appends the
// closing brackets/braces a truncated response is missing. Counting is
// textual, so braces inside string values can defeat it.
func Repair(jsonString string) string {
	jsonString = trailingCommaRegexp.ReplaceAllString(jsonString, "$1")
	jsonString = strings.TrimRight(jsonString, " \t\r\n")
	jsonString = strings.TrimSuffix(jsonString, ",")

	openBraces := strings.Count(jsonString, "{")
	closeBraces := strings.Count(jsonString, "}")
	openBrackets := strings.Count(jsonString, "[")
	closeBrackets := strings.Count(jsonString, "]")

	for openBrackets > closeBrackets {
		jsonString += "]"
		closeBrackets++
	}
	for openBraces > closeBraces {
		jsonString += "}"
		closeBraces++
	}

	return jsonString
}
