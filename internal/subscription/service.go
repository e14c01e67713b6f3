// Package subscription persists tier changes and payments on top of the pure
// entitlement rules.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/contentforge/contentforge-api/internal/apperr"
	"github.com/contentforge/contentforge-api/internal/db"
	"github.com/contentforge/contentforge-api/internal/entitlement"
	"github.com/contentforge/contentforge-api/internal/models"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service reads and writes subscription state.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService constructs a Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// WithTx returns a Service whose writes join tx.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{db: tx, now: s.now}
}

// UpdateInput carries a tier change request.
type UpdateInput struct {
	Tier         string
	DurationDays int
	PaymentRef   string
	Amount       *float64
	Currency     string
	// GeneratePayment asks for a local payment reference when PaymentRef is empty.
	GeneratePayment bool
}

// UpdateResult is the state after a successful update.
type UpdateResult struct {
	Entitlement entitlement.Result
	Payment     *models.Payment
}

// StateOf snapshots the user's stored tier.
func StateOf(user *models.User) entitlement.State {
	return entitlement.State{Tier: user.Tier, ExpiresAt: user.TierExpiresAt}
}

// Check evaluates the user's entitlement and rewrites a lapsed or inconsistent
// tier to free. The write is idempotent.
func (s *Service) Check(ctx context.Context, user *models.User) (entitlement.Result, error) {
	result, needsPersist := entitlement.Evaluate(StateOf(user), s.now())
	if !needsPersist {
		return result, nil
	}

	errUpdate := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"tier":            string(entitlement.TierFree),
			"tier_expires_at": nil,
		}).Error
	if errUpdate != nil {
		return entitlement.Result{}, apperr.Database(fmt.Errorf("subscription: normalize tier: %w", errUpdate))
	}
	log.WithFields(log.Fields{"user_id": user.ID, "previous_tier": user.Tier}).Info("subscription: tier lapsed to free")
	user.Tier = string(entitlement.TierFree)
	user.TierExpiresAt = nil
	return result, nil
}

// Update applies a tier change and optionally records the payment that paid
// for it. On failure the stored and in-memory user are left unchanged.
func (s *Service) Update(ctx context.Context, user *models.User, in UpdateInput) (*UpdateResult, error) {
	planned, errPlan := entitlement.Plan(in.Tier, in.DurationDays, s.now())
	switch {
	case errors.Is(errPlan, entitlement.ErrInvalidTier):
		return nil, apperr.Validation("subscription.invalid_type", "subscription_type")
	case errors.Is(errPlan, entitlement.ErrInvalidDuration):
		return nil, apperr.Validation("subscription.invalid_duration", "duration")
	case errPlan != nil:
		return nil, apperr.Wrap(apperr.KindValidation, "errors.invalid_request", errPlan)
	}

	ref := strings.TrimSpace(in.PaymentRef)
	if ref == "" && in.GeneratePayment && planned.Tier.IsPaid() {
		ref = LocalPaymentRef(user.ID)
	}

	var payment *models.Payment
	if planned.Tier.IsPaid() && ref != "" {
		amount := entitlement.ListPrice(planned.Tier)
		if in.Amount != nil {
			amount = *in.Amount
		}
		currency := strings.ToUpper(strings.TrimSpace(in.Currency))
		if currency == "" {
			currency = models.DefaultCurrency
		}
		payment = &models.Payment{
			UserID:    user.ID,
			Reference: ref,
			Amount:    amount,
			Currency:  currency,
			Status:    models.PaymentStatusCompleted,
			Plan:      string(planned.Tier),
		}
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		errUpdate := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"tier":            string(planned.Tier),
				"tier_expires_at": planned.ExpiresAt,
			}).Error
		if errUpdate != nil {
			return fmt.Errorf("subscription: update tier: %w", errUpdate)
		}
		if payment == nil {
			return nil
		}
		if errCreate := tx.Create(payment).Error; errCreate != nil {
			return errCreate
		}
		return nil
	})
	if errTx != nil {
		if db.IsUniqueViolation(errTx) {
			return nil, apperr.Conflict("subscription.payment_exists")
		}
		return nil, apperr.Database(errTx)
	}

	user.Tier = string(planned.Tier)
	user.TierExpiresAt = planned.ExpiresAt
	return &UpdateResult{Entitlement: planned, Payment: payment}, nil
}

// Payment loads a payment by reference and checks ownership.
func (s *Service) Payment(ctx context.Context, user *models.User, ref string) (*models.Payment, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperr.Validation("errors.missing_fields", "payment_id")
	}
	var payment models.Payment
	if errFind := s.db.WithContext(ctx).Where("reference = ?", ref).First(&payment).Error; errFind != nil {
		if db.IsNotFound(errFind) {
			return nil, apperr.NotFound("subscription.payment_not_found")
		}
		return nil, apperr.Database(errFind)
	}
	if payment.UserID != user.ID {
		return nil, apperr.Forbidden("subscription.payment_not_yours")
	}
	return &payment, nil
}

// Payments lists the user's payments, newest first.
func (s *Service) Payments(ctx context.Context, userID uint64) ([]models.Payment, error) {
	var payments []models.Payment
	if errFind := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error; errFind != nil {
		return nil, apperr.Database(errFind)
	}
	return payments, nil
}

// LocalPaymentRef builds a reference for payments recorded without an
// external processor.
func LocalPaymentRef(userID uint64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("LOCAL-%d-%s", userID, suffix)
}
