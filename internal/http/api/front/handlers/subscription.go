package handlers

import (
	"net/http"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler exposes subscription status, updates, and payments.
type SubscriptionHandler struct {
	subs *subscription.Service
	resp *shared.Responder
}

// NewSubscriptionHandler constructs a SubscriptionHandler.
func NewSubscriptionHandler(subs *subscription.Service, resp *shared.Responder) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, resp: resp}
}

// Check reports the effective tier, normalizing a lapsed one.
func (h *SubscriptionHandler) Check(c *gin.Context) {
	user := shared.CurrentUser(c)
	result, errCheck := h.subs.Check(c.Request.Context(), user)
	if errCheck != nil {
		h.resp.Error(c, errCheck)
		return
	}
	features := entitlement.FeaturesFor(subscription.StateOf(user), user.IsAdmin, user.UsageCount, user.UsageQuota, time.Now())

	h.resp.OK(c, http.StatusOK, "subscription.status", gin.H{
		"is_active":         result.Active,
		"is_paid":           result.Tier.IsPaid(),
		"subscription":      string(result.Tier),
		"subscription_name": h.resp.T(c, "tier."+string(result.Tier)),
		"expiry":            result.ExpiresAt,
		"features":          features,
		"usage_count":       user.UsageCount,
		"usage_quota":       user.UsageQuota,
		"is_admin":          user.IsAdmin,
	})
}

// updateSubscriptionRequest accepts either subscription_type or plan.
type updateSubscriptionRequest struct {
	SubscriptionType string   `json:"subscription_type"`
	Plan             string   `json:"plan"`
	Duration         int      `json:"duration"`
	PaymentID        string   `json:"payment_id"`
	Amount           *float64 `json:"amount"`
	Currency         string   `json:"currency"`
	GeneratePayment  bool     `json:"generate_payment"`
}

// Update changes the user's tier.
func (h *SubscriptionHandler) Update(c *gin.Context) {
	var body updateSubscriptionRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}
	tier := body.SubscriptionType
	if tier == "" {
		tier = body.Plan
	}
	if tier == "" {
		h.resp.Error(c, apperr.Validation("errors.missing_fields", "subscription_type"))
		return
	}

	user := shared.CurrentUser(c)
	res, errUpdate := h.subs.Update(c.Request.Context(), user, subscription.UpdateInput{
		Tier:            tier,
		DurationDays:    body.Duration,
		PaymentRef:      body.PaymentID,
		Amount:          body.Amount,
		Currency:        body.Currency,
		GeneratePayment: body.GeneratePayment,
	})
	if errUpdate != nil {
		h.resp.Error(c, errUpdate)
		return
	}

	extra := gin.H{
		"subscription":      string(res.Entitlement.Tier),
		"subscription_name": h.resp.T(c, "tier."+string(res.Entitlement.Tier)),
		"expiry":            res.Entitlement.ExpiresAt,
	}
	if res.Payment != nil {
		extra["payment"] = paymentView(res.Payment)
	}
	h.resp.OK(c, http.StatusOK, "subscription.updated", extra)
}

// CheckPayment returns one of the user's payments by reference.
func (h *SubscriptionHandler) CheckPayment(c *gin.Context) {
	payment, errPayment := h.subs.Payment(c.Request.Context(), shared.CurrentUser(c), c.Param("id"))
	if errPayment != nil {
		h.resp.Error(c, errPayment)
		return
	}
	h.resp.OK(c, http.StatusOK, "subscription.payment_found", gin.H{"payment": paymentView(payment)})
}

// ListPayments returns the user's payments.
func (h *SubscriptionHandler) ListPayments(c *gin.Context) {
	payments, errList := h.subs.Payments(c.Request.Context(), shared.CurrentUser(c).ID)
	if errList != nil {
		h.resp.Error(c, errList)
		return
	}
	out := make([]gin.H, 0, len(payments))
	for i := range payments {
		out = append(out, paymentView(&payments[i]))
	}
	h.resp.OK(c, http.StatusOK, "subscription.payments", gin.H{"payments": out})
}

func paymentView(p *models.Payment) gin.H {
	return gin.H{
		"payment_id": p.Reference,
		"amount":     p.Amount,
		"currency":   p.Currency,
		"status":     p.Status,
		"plan":       p.Plan,
		"created_at": p.CreatedAt,
	}
}
