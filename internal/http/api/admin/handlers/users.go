package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	dbutil "github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserHandler manages user accounts for administrators.
type UserHandler struct {
	db   *gorm.DB
	subs *subscription.Service
	resp *shared.Responder
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB, subs *subscription.Service, resp *shared.Responder) *UserHandler {
	return &UserHandler{db: db, subs: subs, resp: resp}
}

// listUsersQuery defines the filters of the user list.
type listUsersQuery struct {
	Email  string `form:"email"`
	Tier   string `form:"tier"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// List returns users with optional filters.
func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if errBind := c.ShouldBindQuery(&q); errBind != nil {
		h.resp.Error(c, apperr.Validation("errors.invalid_request"))
		return
	}
	var (
		emailQ  = strings.TrimSpace(q.Email)
		tierQ   = strings.TrimSpace(q.Tier)
		searchQ = strings.TrimSpace(q.Search)
	)

	base := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if emailQ != "" {
		expr, pattern := dbutil.ContainsFilter(h.db, "email", emailQ)
		base = base.Where(expr, pattern)
	}
	if tierQ != "" {
		tier, ok := entitlement.ParseTier(tierQ)
		if !ok {
			h.resp.Error(c, apperr.Validation("subscription.invalid_type", "tier"))
			return
		}
		base = base.Where("tier = ?", string(tier))
	}
	if searchQ != "" {
		expr, pattern := dbutil.ContainsFilter(h.db, "email", searchQ)
		if id, errID := strconv.ParseUint(searchQ, 10, 64); errID == nil {
			base = base.Where("("+expr+" OR id = ?)", pattern, id)
		} else {
			base = base.Where(expr, pattern)
		}
	}

	var total int64
	if errCount := base.Count(&total).Error; errCount != nil {
		h.resp.Error(c, apperr.Database(errCount))
		return
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []models.User
	if errFind := base.Order("created_at DESC, id DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; errFind != nil {
		h.resp.Error(c, apperr.Database(errFind))
		return
	}
	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, userView(&rows[i]))
	}
	h.resp.OK(c, http.StatusOK, "admin.users", gin.H{
		"users": out,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Get returns a user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	h.resp.OK(c, http.StatusOK, "admin.users", gin.H{"user": userView(user)})
}

// updateUserRequest defines the request body for user updates.
type updateUserRequest struct {
	UsageQuota       *int    `json:"usage_quota" binding:"omitempty,min=0"`
	IsAdmin          *bool   `json:"is_admin"`
	SubscriptionType *string `json:"subscription_type"`
	Duration         int     `json:"duration"`
}

// Update changes quota, admin flag, or tier of a user.
func (h *UserHandler) Update(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	var body updateUserRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.UsageQuota != nil {
		updates["usage_quota"] = *body.UsageQuota
	}
	if body.IsAdmin != nil {
		if !*body.IsAdmin && user.ID == shared.CurrentUser(c).ID {
			h.resp.Error(c, apperr.Validation("errors.invalid_fields", "is_admin"))
			return
		}
		updates["is_admin"] = *body.IsAdmin
	}

	ctx := c.Request.Context()
	errTx := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if body.SubscriptionType != nil {
			if _, errSub := h.subs.WithTx(tx).Update(ctx, user, subscription.UpdateInput{
				Tier:         *body.SubscriptionType,
				DurationDays: body.Duration,
			}); errSub != nil {
				return errSub
			}
		}
		if errUpdate := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; errUpdate != nil {
			return apperr.Database(errUpdate)
		}
		return nil
	})
	if errTx != nil {
		h.resp.Error(c, errTx)
		return
	}
	log.WithFields(log.Fields{"user_id": user.ID, "admin_id": shared.CurrentUser(c).ID}).Info("admin: user updated")

	var refreshed models.User
	if errFind := h.db.WithContext(ctx).First(&refreshed, user.ID).Error; errFind != nil {
		h.resp.Error(c, apperr.Database(errFind))
		return
	}
	h.resp.OK(c, http.StatusOK, "admin.user_updated", gin.H{"user": userView(&refreshed)})
}

// ResetUsage sets a user's usage counter back to zero.
func (h *UserHandler) ResetUsage(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{"usage_count": 0, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		h.resp.Error(c, apperr.Database(res.Error))
		return
	}
	user.UsageCount = 0
	log.WithFields(log.Fields{"user_id": user.ID, "admin_id": shared.CurrentUser(c).ID}).Info("admin: usage reset")
	h.resp.OK(c, http.StatusOK, "admin.usage_reset", gin.H{"user": userView(user)})
}

// Payments lists the payments recorded for a user.
func (h *UserHandler) Payments(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	payments, errList := h.subs.Payments(c.Request.Context(), user.ID)
	if errList != nil {
		h.resp.Error(c, apperr.Database(errList))
		return
	}
	out := make([]gin.H, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		out = append(out, gin.H{
			"id":         p.ID,
			"payment_id": p.Reference,
			"amount":     p.Amount,
			"currency":   p.Currency,
			"status":     p.Status,
			"plan":       p.Plan,
			"created_at": p.CreatedAt,
		})
	}
	h.resp.OK(c, http.StatusOK, "subscription.payments", gin.H{"user_id": user.ID, "payments": out})
}

func (h *UserHandler) load(c *gin.Context) (*models.User, bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil || id == 0 {
		h.resp.Error(c, apperr.Validation("errors.invalid_id", "id"))
		return nil, false
	}
	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, id).Error; errFind != nil {
		if dbutil.IsNotFound(errFind) {
			h.resp.Error(c, apperr.NotFound("auth.user_not_found"))
			return nil, false
		}
		h.resp.Error(c, apperr.Database(errFind))
		return nil, false
	}
	return &user, true
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"tier":            user.Tier,
		"tier_expires_at": user.TierExpiresAt,
		"usage_count":     user.UsageCount,
		"usage_quota":     user.UsageQuota,
		"requests_left":   entitlement.RequestsLeft(user.IsAdmin, user.UsageCount, user.UsageQuota),
		"is_admin":        user.IsAdmin,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}
}
