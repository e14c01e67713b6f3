package generation

import (
	"strings"

	"github.com/contentforge/contentforge-api/internal/i18n"
)

// Idea count bounds for SchemaIdeas requests.
const (
	DefaultIdeaCount = 5
	MaxIdeaCount     = 10
)

// Request describes one generation.
type Request struct {
	Schema   Schema
	Lang     i18n.Lang
	Niche    string // Topic, niche, or trend category.
	Audience string
	Platform string
	Style    string
	Count    int // Number of ideas; ignored for SchemaTrends.
}

func (r Request) normalized() Request {
	r.Niche = strings.TrimSpace(r.Niche)
	r.Audience = strings.TrimSpace(r.Audience)
	r.Platform = strings.TrimSpace(r.Platform)
	r.Style = strings.TrimSpace(r.Style)
	if r.Schema != SchemaIdeas {
		r.Schema = SchemaTrends
	}
	if r.Lang != i18n.LangEN {
		r.Lang = i18n.LangUK
	}
	switch {
	case r.Count <= 0:
		r.Count = DefaultIdeaCount
	case r.Count > MaxIdeaCount:
		r.Count = MaxIdeaCount
	}
	return r
}
