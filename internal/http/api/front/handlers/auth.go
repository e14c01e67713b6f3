package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/http/api/shared"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/contentforge/contentforge-api/internal/security"
	"github.com/contentforge/contentforge-api/internal/subscription"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	db     *gorm.DB
	jwtCfg config.JWTConfig
	subs   *subscription.Service
	resp   *shared.Responder
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtCfg config.JWTConfig, subs *subscription.Service, resp *shared.Responder) *AuthHandler {
	return &AuthHandler{db: db, jwtCfg: jwtCfg, subs: subs, resp: resp}
}

// credentialsRequest is the body of signup and login.
type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a free-tier user and returns a token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}
	email := normalizeEmail(body.Email)

	hash, errHash := security.HashPassword(body.Password)
	if errHash != nil {
		h.resp.Error(c, apperr.Wrap(apperr.KindInternal, "errors.internal", errHash))
		return
	}

	user := models.User{
		Email:      email,
		Password:   hash,
		Tier:       string(entitlement.TierFree),
		UsageQuota: models.DefaultUsageQuota,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&user).Error; errCreate != nil {
		if db.IsUniqueViolation(errCreate) {
			h.resp.Error(c, apperr.Conflict("auth.user_exists"))
			return
		}
		h.resp.Error(c, apperr.Database(errCreate))
		return
	}

	token, errToken := security.IssueUserToken(h.jwtCfg.Secret, user.ID, h.jwtCfg.Expiry, time.Now())
	if errToken != nil {
		h.resp.Error(c, apperr.Wrap(apperr.KindInternal, "errors.internal", errToken))
		return
	}
	log.WithField("user_id", user.ID).Info("auth: user registered")

	h.resp.OK(c, http.StatusCreated, "auth.signup_success", gin.H{
		"token":   token,
		"user_id": user.ID,
		"email":   user.Email,
		"tier":    user.Tier,
	})
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body credentialsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		h.resp.Error(c, apperr.FromValidator(errBind))
		return
	}

	var user models.User
	errFind := h.db.WithContext(c.Request.Context()).
		Where("email = ?", normalizeEmail(body.Email)).
		First(&user).Error
	if errFind != nil && !db.IsNotFound(errFind) {
		h.resp.Error(c, apperr.Database(errFind))
		return
	}
	if errFind != nil || !security.CheckPassword(user.Password, body.Password) {
		h.resp.Error(c, apperr.Unauthenticated("auth.invalid_credentials"))
		return
	}

	result, errCheck := h.subs.Check(c.Request.Context(), &user)
	if errCheck != nil {
		h.resp.Error(c, errCheck)
		return
	}

	token, errToken := security.IssueUserToken(h.jwtCfg.Secret, user.ID, h.jwtCfg.Expiry, time.Now())
	if errToken != nil {
		h.resp.Error(c, apperr.Wrap(apperr.KindInternal, "errors.internal", errToken))
		return
	}

	h.resp.OK(c, http.StatusOK, "auth.login_success", gin.H{
		"token":         token,
		"user_id":       user.ID,
		"email":         user.Email,
		"tier":          string(result.Tier),
		"is_subscribed": result.Tier.IsPaid(),
		"is_admin":      user.IsAdmin,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
