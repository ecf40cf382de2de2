package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderPending    = "PENDING"
	OrderSuccessful = "SUCCESSFUL"
	OrderFailed     = "FAILED"
	OrderCancelled  = "CANCELLED"
)

// PaymentOrderTTL is the window a buyer has to complete payment before the
// order becomes sweepable.
const PaymentOrderTTL = 15 * time.Minute

// PaymentOrder is a time-boxed reservation attempt. It leaves PENDING
// exactly once, for SUCCESSFUL, FAILED or CANCELLED, and never leaves a
// terminal state. Inventory is not held at creation; availability is
// re-checked atomically at verification time.
type PaymentOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderRef    string    `gorm:"not null;unique"`
	Quantity    int       `gorm:"not null"`
	TotalAmount int       `gorm:"not null"`
	Status      string    `gorm:"not null;default:'PENDING';index"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Event       Event
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Ticket      Ticket
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	User        User
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (order *PaymentOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return
}
