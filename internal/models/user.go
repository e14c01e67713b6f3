package models

import "time"

// DefaultUsageQuota is the lifetime generation quota assigned at signup.
const DefaultUsageQuota = 5

// User represents an end-user account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Email    string `gorm:"type:text;not null;uniqueIndex"` // Unique login email.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	Tier          string     `gorm:"type:text;not null;default:free"` // Subscription tier label.
	TierExpiresAt *time.Time `gorm:""`                                // Paid tier expiry; nil for free.

	UsageCount int `gorm:"not null;default:0"` // Successful generations so far.
	UsageQuota int `gorm:"not null;default:5"` // Lifetime generation cap.

	IsAdmin bool `gorm:"not null;default:false"` // Bypasses quota and unlocks admin routes.

	Payments    []Payment          `gorm:"foreignKey:UserID"` // Recorded payments.
	Generations []GenerationRecord `gorm:"foreignKey:UserID"` // Generation history.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
