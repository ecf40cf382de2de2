package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

// DeleteCourt removes a court and its slots. Refused while any of the
// court's slots carries a CONFIRMED booking.
func DeleteCourt(db *gorm.DB, callerID uuid.UUID, callerRole string, courtID uuid.UUID) error {
	if _, err := courtForCaller(db, callerID, callerRole, courtID); err != nil {
		return err
	}

	var active int64
	err := db.Model(&models.CourtBooking{}).
		Joins("JOIN time_slots ON time_slots.id = court_bookings.time_slot_id").
		Where("time_slots.court_id = ? AND court_bookings.status = ?", courtID, models.CourtBookingConfirmed).
		Count(&active).Error
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("%w: court has active bookings", ErrConflict)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("court_id = ?", courtID).Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", courtID).Delete(&models.Court{}).Error
	})
}
