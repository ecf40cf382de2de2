package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const BookingConfirmed = "CONFIRMED"

// Booking is a confirmed event-ticket purchase. It exists only as a side
// effect of a successful payment verification.
type Booking struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Quantity       int       `gorm:"not null"`
	TotalAmount    int       `gorm:"not null"`
	Status         string    `gorm:"not null;default:'CONFIRMED'"`
	CheckedInAt    *time.Time
	PaymentOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentOrder   PaymentOrder
	EventID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Event          Event
	TicketID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Ticket         Ticket
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	User           User
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
