package models

import (
	"time"

	"gorm.io/datatypes"
)

// GenerationKind identifies which endpoint produced a generation record.
type GenerationKind string

// GenerationKind constants.
const (
	GenerationKindIdeas  GenerationKind = "ideas"
	GenerationKindTrends GenerationKind = "trends"
)

// GenerationRecord is an append-only audit entry of a content generation.
type GenerationRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Requesting user ID.
	User   User   `gorm:"foreignKey:UserID"` // Requesting user record.

	Kind     GenerationKind `gorm:"type:text;not null;index"` // Generation schema.
	Niche    string         `gorm:"type:text"`                // Topic or category.
	Audience string         `gorm:"type:text"`                // Target audience.
	Platform string         `gorm:"type:text"`                // Target platform.
	Style    string         `gorm:"type:text"`                // Requested style.
	Provider string         `gorm:"type:text;not null"`       // Provider that produced the result.

	Result datatypes.JSON `gorm:"type:json"` // Generated content payload.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
}
