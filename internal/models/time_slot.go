package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot statuses are derived, never stored: a slot is MAINTENANCE when
// flagged, BOOKED while it carries a CONFIRMED booking, else AVAILABLE.
const (
	SlotAvailable   = "AVAILABLE"
	SlotBooked      = "BOOKED"
	SlotMaintenance = "MAINTENANCE"
)

type TimeSlot struct {
	gorm.Model
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	StartTime            time.Time `gorm:"not null;index"`
	EndTime              time.Time `gorm:"not null"`
	Price                *int
	IsMaintenanceBlocked bool `gorm:"not null;default:false"`
	MaintenanceReason    string
	CourtID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Court                Court
	Bookings             []CourtBooking
}

func (slot *TimeSlot) BeforeCreate(tx *gorm.DB) (err error) {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	return
}
