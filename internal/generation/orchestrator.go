// Package generation produces schema-conforming content through a chain of
// chat providers that ends in a deterministic template.
package generation

import (
	"context"
	"strings"

	"github.com/contentforge/contentforge-api/internal/i18n"
	log "github.com/sirupsen/logrus"
)

// Note explains how an Outcome was produced when it was not a clean
// first-stage answer.
type Note string

// Note values.
const (
	NoteNone      Note = ""
	NoteSecondary Note = "secondary"
	NoteTemplate  Note = "template"
	NotePartial   Note = "partial"
)

// MessageKey returns the catalog key describing the note, or "" for NoteNone.
func (n Note) MessageKey() string {
	if n == NoteNone {
		return ""
	}
	return "note." + string(n)
}

// Outcome is the result of a generation. Content always satisfies the
// request schema.
type Outcome struct {
	Content      map[string]any
	ProviderUsed string
	Note         Note
	Patched      []string // Fields filled from the template.
}

// Orchestrator runs strategies in order and falls back to Template.
type Orchestrator struct {
	strategies []Strategy
}

// NewOrchestrator builds an orchestrator over strategies in priority order.
func NewOrchestrator(strategies ...Strategy) *Orchestrator {
	kept := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Orchestrator{strategies: kept}
}

// Generate never fails: when every strategy errors or returns no usable
// field, the template answers.
func (o *Orchestrator) Generate(ctx context.Context, req Request) Outcome {
	req = req.normalized()

	for i, strategy := range o.strategies {
		object, errAttempt := strategy.Attempt(ctx, req)
		if errAttempt != nil {
			log.WithError(errAttempt).WithField("provider", strategy.Name()).Warn("generation: provider failed")
			continue
		}
		content, patched, ok := accept(object, req)
		if !ok {
			log.WithField("provider", strategy.Name()).Warn("generation: provider response missing required fields")
			continue
		}

		outcome := Outcome{Content: content, ProviderUsed: strategy.Name(), Patched: patched}
		if i > 0 {
			outcome.Note = NoteSecondary
		}
		if len(patched) > 0 {
			log.WithField("provider", strategy.Name()).Infof("generation: patched fields %s from template", strings.Join(patched, ","))
			if outcome.Note == NoteNone {
				outcome.Note = NotePartial
			}
		}
		return finish(req, outcome)
	}

	return finish(req, Outcome{
		Content:      Template(req),
		ProviderUsed: ProviderNone,
		Note:         NoteTemplate,
	})
}

func finish(req Request, outcome Outcome) Outcome {
	if req.Schema == SchemaTrends && req.Lang == i18n.LangUK {
		localize(outcome.Content)
	}
	return outcome
}
