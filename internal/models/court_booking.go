package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CourtBookingConfirmed = "CONFIRMED"
	CourtBookingCancelled = "CANCELLED"
	CourtBookingCompleted = "COMPLETED"
)

// CourtBooking reserves a single court time slot. A slot carries at most
// one CONFIRMED booking at a time.
type CourtBooking struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TotalAmount  int       `gorm:"not null"`
	Status       string    `gorm:"not null;default:'CONFIRMED';index"`
	CancelReason string
	CancelledAt  *time.Time
	TimeSlotID   uuid.UUID `gorm:"type:uuid;not null;index"`
	TimeSlot     TimeSlot
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	User         User
}

func (booking *CourtBooking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
