package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/contentforge/contentforge-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrQuotaExceeded is returned when a metered generation would exceed the
// user's quota.
var ErrQuotaExceeded = errors.New("generation: usage quota exceeded")

// Recorder persists generation history and usage counters.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder constructs a Recorder.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record stores the outcome as a GenerationRecord. When metered is true and
// the user is not an admin, usage_count is incremented in the same
// transaction, guarded by the quota.
func (r *Recorder) Record(ctx context.Context, user *models.User, req Request, outcome Outcome, metered bool) (*models.GenerationRecord, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("generation: recorder not configured")
	}
	if user == nil {
		return nil, fmt.Errorf("generation: user is required")
	}
	req = req.normalized()

	payload, errMarshal := json.Marshal(outcome.Content)
	if errMarshal != nil {
		return nil, fmt.Errorf("generation: encode result: %w", errMarshal)
	}

	record := &models.GenerationRecord{
		UserID:   user.ID,
		Kind:     models.GenerationKind(req.Schema),
		Niche:    req.Niche,
		Audience: req.Audience,
		Platform: req.Platform,
		Style:    req.Style,
		Provider: outcome.ProviderUsed,
		Result:   datatypes.JSON(payload),
	}

	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if metered && !user.IsAdmin {
			res := tx.Model(&models.User{}).
				Where("id = ? AND usage_count < usage_quota", user.ID).
				Update("usage_count", gorm.Expr("usage_count + ?", 1))
			if res.Error != nil {
				return fmt.Errorf("generation: increment usage: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrQuotaExceeded
			}
		}
		if errCreate := tx.Create(record).Error; errCreate != nil {
			return fmt.Errorf("generation: create record: %w", errCreate)
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}
	if metered && !user.IsAdmin {
		user.UsageCount++
	}
	return record, nil
}

// History returns the user's most recent generation records, newest first.
func (r *Recorder) History(ctx context.Context, userID uint64, kind models.GenerationKind, limit, offset int) ([]models.GenerationRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GenerationRecord{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	var total int64
	if errCount := query.Count(&total).Error; errCount != nil {
		return nil, 0, fmt.Errorf("generation: count history: %w", errCount)
	}
	var records []models.GenerationRecord
	if errFind := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&records).Error; errFind != nil {
		return nil, 0, fmt.Errorf("generation: list history: %w", errFind)
	}
	return records, total, nil
}
