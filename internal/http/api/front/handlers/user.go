package handlers

import (
	"net/http"

	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	subs *subscription.Service
	resp *shared.Responder
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(subs *subscription.Service, resp *shared.Responder) *UserHandler {
	return &UserHandler{subs: subs, resp: resp}
}

// Info returns the profile with a localized tier name.
func (h *UserHandler) Info(c *gin.Context) {
	user := shared.CurrentUser(c)
	result, errCheck := h.subs.Check(c.Request.Context(), user)
	if errCheck != nil {
		h.resp.Error(c, errCheck)
		return
	}
	h.resp.OK(c, http.StatusOK, "user.info", gin.H{
		"user": gin.H{
			"id":                user.ID,
			"email":             user.Email,
			"subscription":      string(result.Tier),
			"subscription_name": h.resp.T(c, "tier."+string(result.Tier)),
			"expiry":            result.ExpiresAt,
			"usage_count":       user.UsageCount,
			"usage_quota":       user.UsageQuota,
			"requests_left":     entitlement.RequestsLeft(user.IsAdmin, user.UsageCount, user.UsageQuota),
			"is_admin":          user.IsAdmin,
			"created_at":        user.CreatedAt,
		},
	})
}
