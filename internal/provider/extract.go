package provider

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoJSONObject is returned when no JSON object can be recovered from content.
var ErrNoJSONObject = errors.New("no json object in provider content")

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	braceSpanPattern  = regexp.MustCompile(`(?s)(\{.*\})`)
)

// ExtractObject locates the JSON object inside model output. Content that is
// already an object is used as-is; otherwise a ```json fenced block is tried,
// then the widest {...} span.
func ExtractObject(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return checkObject(trimmed)
	}
	if match := fencedJSONPattern.FindStringSubmatch(trimmed); len(match) == 2 {
		if object, err := checkObject(match[1]); err == nil {
			return object, nil
		}
	}
	if match := braceSpanPattern.FindStringSubmatch(trimmed); len(match) == 2 {
		return checkObject(match[1])
	}
	return "", ErrNoJSONObject
}

// DecodeObject extracts and decodes the JSON object inside model output.
func DecodeObject(content string) (map[string]any, error) {
	raw, errExtract := ExtractObject(content)
	if errExtract != nil {
		return nil, errExtract
	}
	var object map[string]any
	if errUnmarshal := json.Unmarshal([]byte(raw), &object); errUnmarshal != nil {
		return nil, ErrNoJSONObject
	}
	return object, nil
}

func checkObject(candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if !gjson.Valid(candidate) || !gjson.Parse(candidate).IsObject() {
		return "", ErrNoJSONObject
	}
	return candidate, nil
}
