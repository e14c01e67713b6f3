package models

import "time"

// PaymentStatus represents the lifecycle state of a payment.
type PaymentStatus string

// PaymentStatus constants define payment lifecycle states.
const (
	// PaymentStatusPending marks a payment awaiting confirmation.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusCompleted marks a confirmed payment.
	PaymentStatusCompleted PaymentStatus = "completed"
	// PaymentStatusFailed marks a rejected payment.
	PaymentStatusFailed PaymentStatus = "failed"
)

// DefaultCurrency is used when a payment does not carry a currency.
const DefaultCurrency = "USD"

// Payment records an external payment that activated a tier.
type Payment struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index"`    // Owning user ID.
	User   User   `gorm:"foreignKey:UserID"` // Owning user record.

	Reference string        `gorm:"type:text;not null;uniqueIndex"`        // External payment reference.
	Amount    float64       `gorm:"type:decimal(10,2);not null;default:0"` // Paid amount.
	Currency  string        `gorm:"type:text;not null;default:USD"`        // ISO currency code.
	Status    PaymentStatus `gorm:"type:text;not null;default:pending"`    // Current payment status.
	Plan      string        `gorm:"type:text"`                             // Tier the payment was for.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
