package generation

import (
	"fmt"
	"strings"
)

// Schema names the JSON shape a generation must produce.
type Schema string

// Supported schemas.
const (
	// SchemaTrends is {"hashtags": [string], "trends": [string]}.
	SchemaTrends Schema = "trends"
	// SchemaIdeas is {"ideas": [{"title": string, "description": string}]}.
	SchemaIdeas Schema = "ideas"
)

// Required top-level fields per schema.
const (
	FieldHashtags = "hashtags"
	FieldTrends   = "trends"
	FieldIdeas    = "ideas"
)

// Idea is one generated content idea.
type Idea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RequiredFields lists the top-level fields the schema requires.
func (s Schema) RequiredFields() []string {
	if s == SchemaIdeas {
		return []string{FieldIdeas}
	}
	return []string{FieldHashtags, FieldTrends}
}

// normalizeField converts a provider value into the schema's Go shape.
// The second result is false only when the value is absent or not a list;
// malformed items are skipped and an empty list is kept as returned.
func normalizeField(field string, value any) (any, bool) {
	switch field {
	case FieldHashtags, FieldTrends:
		return stringList(value)
	case FieldIdeas:
		return ideaList(value)
	default:
		return nil, false
	}
}

func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, okString := item.(string)
		if !okString {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, true
}

func ideaList(value any) ([]Idea, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Idea, 0, len(items))
	for _, item := range items {
		obj, okObj := item.(map[string]any)
		if !okObj {
			continue
		}
		title := textOf(obj["title"])
		if title == "" {
			continue
		}
		out = append(out, Idea{Title: title, Description: textOf(obj["description"])})
	}
	return out, true
}

func textOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// accept validates a provider object against the schema. Present fields are
// normalized, missing ones are filled from the template and reported in
// patched. ok is false when no required field was present.
func accept(object map[string]any, req Request) (content map[string]any, patched []string, ok bool) {
	fields := req.Schema.RequiredFields()
	content = make(map[string]any, len(object)+len(fields))
	for k, v := range object {
		content[k] = v
	}

	usable := 0
	var fallback map[string]any
	for _, field := range fields {
		if value, valid := normalizeField(field, object[field]); valid {
			content[field] = value
			usable++
			continue
		}
		if fallback == nil {
			fallback = Template(req)
		}
		content[field] = fallback[field]
		patched = append(patched, field)
	}
	if usable == 0 {
		return nil, nil, false
	}
	return content, patched, true
}
