package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

// CancelCutoff is how close to a slot's start a player may still cancel.
const CancelCutoff = 30 * time.Minute

func loadCourtBooking(db *gorm.DB, bookingID uuid.UUID) (*models.CourtBooking, error) {
	var booking models.CourtBooking
	if err := db.Preload("TimeSlot.Court.Facility").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking", ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

// CancelCourtBooking flips a CONFIRMED booking to CANCELLED. It refuses
// terminal bookings and anything starting within the cutoff. Counters on
// the slot and court are untouched.
func CancelCourtBooking(db *gorm.DB, callerID uuid.UUID, callerRole string, bookingID uuid.UUID, reason string) (*models.CourtBooking, error) {
	booking, err := loadCourtBooking(db, bookingID)
	if err != nil {
		return nil, err
	}
	if callerRole != models.RoleAdmin && booking.UserID != callerID {
		return nil, fmt.Errorf("%w: not your booking", ErrForbidden)
	}
	if booking.Status != models.CourtBookingConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", ErrConflict, booking.Status)
	}
	if time.Until(booking.TimeSlot.StartTime) < CancelCutoff {
		return nil, fmt.Errorf("%w: bookings can only be cancelled at least 30 minutes before start", ErrConflict)
	}

	now := time.Now()
	res := db.Model(&models.CourtBooking{}).
		Where("id = ? AND status = ?", booking.ID, models.CourtBookingConfirmed).
		Updates(map[string]interface{}{
			"status":        models.CourtBookingCancelled,
			"cancel_reason": reason,
			"cancelled_at":  now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking already resolved", ErrConflict)
	}

	booking.Status = models.CourtBookingCancelled
	booking.CancelReason = reason
	booking.CancelledAt = &now
	return booking, nil
}

// CompleteCourtBooking marks a finished CONFIRMED booking COMPLETED.
// Facility owner or admin only, and only after the slot has ended.
func CompleteCourtBooking(db *gorm.DB, callerID uuid.UUID, callerRole string, bookingID uuid.UUID) (*models.CourtBooking, error) {
	booking, err := loadCourtBooking(db, bookingID)
	if err != nil {
		return nil, err
	}
	if callerRole != models.RoleAdmin && booking.TimeSlot.Court.Facility.OwnerID != callerID {
		return nil, fmt.Errorf("%w: you do not manage this court", ErrForbidden)
	}
	if booking.Status != models.CourtBookingConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", ErrConflict, booking.Status)
	}
	if time.Now().Before(booking.TimeSlot.EndTime) {
		return nil, fmt.Errorf("%w: slot has not ended yet", ErrConflict)
	}

	res := db.Model(&models.CourtBooking{}).
		Where("id = ? AND status = ?", booking.ID, models.CourtBookingConfirmed).
		Update("status", models.CourtBookingCompleted)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: booking already resolved", ErrConflict)
	}

	booking.Status = models.CourtBookingCompleted
	return booking, nil
}
