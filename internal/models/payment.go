package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentSuccessful = "SUCCESSFUL"
	PaymentFailed     = "FAILED"
)

// Payment records the outcome of a resolved PaymentOrder. At most one row
// exists per order, written in the same transaction that resolves it.
type Payment struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	Amount            int       `gorm:"not null"`
	Status            string    `gorm:"not null"`
	Verified          bool      `gorm:"not null;default:false"`
	ExternalPaymentID string
	PaidAt            *time.Time
	PaymentOrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentOrder      *PaymentOrder
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
