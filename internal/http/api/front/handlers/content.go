package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/generation"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ContentHandler serves the generation endpoints.
type ContentHandler struct {
	orchestrator *generation.Orchestrator
	recorder     *generation.Recorder
	subs         *subscription.Service
	resp         *shared.Responder
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler(orchestrator *generation.Orchestrator, recorder *generation.Recorder, subs *subscription.Service, resp *shared.Responder) *ContentHandler {
	return &ContentHandler{orchestrator: orchestrator, recorder: recorder, subs: subs, resp: resp}
}

// generateRequest is the body of POST /generate.
type generateRequest struct {
	Platform string `json:"platform" binding:"required"`
	Niche    string `json:"niche" binding:"required"`
	Audience string `json:"audience" binding:"required"`
	Style    string `json:"style" binding:"required"`
}

// ideasRequest is the body of POST /ideas.
type ideasRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Count    int    `json:"count"`
	Platform string `json:"platform"`
	Audience string `json:"audience"`
	Style    string `json:"style"`
}

// trendsRequest is the body of POST /trends.
type trendsRequest struct {
	Category string `json:"category" binding:"required"`
	Count    int    `json:"count"`
}

// Generate produces hashtags and trends for a niche. It consumes quota.
func (h *ContentHandler) Generate(c *gin.Context) {
	var body generateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}
	if blank := blankFields(map[string]string{
		"platform": body.Platform,
		"niche":    body.Niche,
		"audience": body.Audience,
		"style":    body.Style,
	}); len(blank) > 0 {
		h.resp.Error(c, apperr.Validation("errors.missing_fields", blank...))
		return
	}

	h.run(c, generation.Request{
		Schema:   generation.SchemaTrends,
		Lang:     shared.Lang(c),
		Niche:    body.Niche,
		Audience: body.Audience,
		Platform: body.Platform,
		Style:    body.Style,
	}, generationGate{metered: true}, "content.generated")
}

// Ideas produces content ideas for a topic. It consumes quota.
func (h *ContentHandler) Ideas(c *gin.Context) {
	var body ideasRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}
	if strings.TrimSpace(body.Topic) == "" {
		h.resp.Error(c, apperr.Validation("errors.missing_fields", "topic"))
		return
	}

	h.run(c, generation.Request{
		Schema:   generation.SchemaIdeas,
		Lang:     shared.Lang(c),
		Niche:    body.Topic,
		Audience: body.Audience,
		Platform: body.Platform,
		Style:    body.Style,
		Count:    body.Count,
	}, generationGate{metered: true}, "content.ideas_generated")
}

// Trends returns trend ideas for a category. Premium only, not metered.
func (h *ContentHandler) Trends(c *gin.Context) {
	var body trendsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}
	if strings.TrimSpace(body.Category) == "" {
		h.resp.Error(c, apperr.Validation("errors.missing_fields", "category"))
		return
	}


	h.run(c, generation.Request{
		Schema: generation.SchemaIdeas,
		Lang:   shared.Lang(c),
		Niche:  body.Category,
		Count:  body.Count,
	}, generationGate{premium: true}, "content.trends_retrieved")
}

// generationGate names the checks a generation endpoint applies before the
// provider chain runs.
type generationGate struct {
	metered bool
	premium bool
}

func (h *ContentHandler) run(c *gin.Context, req generation.Request, gate generationGate, messageKey string) {
	user := shared.CurrentUser(c)
	if _, errCheck := h.subs.Check(c.Request.Context(), user); errCheck != nil {
		h.resp.Error(c, errCheck)
		return
	}
	if gate.premium && !entitlement.HasPremiumFeature(subscription.StateOf(user), time.Now()) {
		h.resp.Error(c, apperr.Forbidden("content.premium_required"))
		return
	}
	if gate.metered && !entitlement.CanGenerate(user.IsAdmin, user.UsageCount, user.UsageQuota) {
		h.resp.Error(c, apperr.Forbidden("content.quota_exceeded"))
		return
	}

	outcome := h.orchestrator.Generate(c.Request.Context(), req)

	record, errRecord := h.recorder.Record(c.Request.Context(), user, req, outcome, gate.metered)
	if errRecord != nil {
		if errors.Is(errRecord, generation.ErrQuotaExceeded) {
			h.resp.Error(c, apperr.Forbidden("content.quota_exceeded"))
			return
		}
		h.resp.Error(c, apperr.Database(errRecord))
		return
	}
	log.WithFields(log.Fields{
		"user_id":  user.ID,
		"schema":   req.Schema,
		"provider": outcome.ProviderUsed,
		"note":     outcome.Note,
	}).Info("content: generation stored")

	extra := gin.H{
		"content":       outcome.Content,
		"content_id":    record.ID,
		"provider_used": outcome.ProviderUsed,
		"requests_left": entitlement.RequestsLeft(user.IsAdmin, user.UsageCount, user.UsageQuota),
	}
	if key := outcome.Note.MessageKey(); key != "" {
		extra["note"] = h.resp.T(c, key, "provider", strings.ToUpper(outcome.ProviderUsed))
	}
	h.resp.OK(c, http.StatusOK, messageKey, extra)
}

// historyQuery is the query string of GET /generations.
type historyQuery struct {
	Kind  string `form:"kind"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// History lists the user's past generations, newest first.
func (h *ContentHandler) History(c *gin.Context) {
	var q historyQuery
	if errBind := c.ShouldBindQuery(&q); errBind != nil {
		h.resp.Error(c, apperr.Validation("errors.invalid_request"))
		return
	}
	kind := models.GenerationKind(strings.ToLower(strings.TrimSpace(q.Kind)))
	if kind != "" && kind != models.GenerationKindTrends && kind != models.GenerationKindIdeas {
		h.resp.Error(c, apperr.Validation("errors.invalid_fields", "kind"))
		return
	}
	page, limit := normalizePage(q.Page, q.Limit)

	records, total, errHistory := h.recorder.History(c.Request.Context(), shared.CurrentUser(c).ID, kind, limit, (page-1)*limit)
	if errHistory != nil {
		h.resp.Error(c, apperr.Database(errHistory))
		return
	}
	out := make([]gin.H, 0, len(records))
	for _, record := range records {
		out = append(out, gin.H{
			"id":         record.ID,
			"kind":       record.Kind,
			"niche":      record.Niche,
			"audience":   record.Audience,
			"platform":   record.Platform,
			"style":      record.Style,
			"provider":   record.Provider,
			"result":     record.Result,
			"created_at": record.CreatedAt,
		})
	}
	h.resp.OK(c, http.StatusOK, "content.history", gin.H{
		"generations": out,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

func blankFields(fields map[string]string) []string {
	var blank []string
	for _, name := range []string{"platform", "niche", "audience", "style"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			blank = append(blank, name)
		}
	}
	return blank
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	return page, limit
}
