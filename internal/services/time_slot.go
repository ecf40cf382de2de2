package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

type GenerateSlotsInput struct {
	StartDate    time.Time
	EndDate      time.Time
	DaysOfWeek   []time.Weekday // empty means every day
	OpenHour     int
	CloseHour    int
	SlotMinutes  int
	WeekdayPrice *int
	WeekendPrice *int
}

type GenerateSlotsResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// courtForCaller loads a court and enforces that the caller owns its
// facility or is an admin.
func courtForCaller(db *gorm.DB, callerID uuid.UUID, callerRole string, courtID uuid.UUID) (*models.Court, error) {
	var court models.Court
	if err := db.Preload("Facility").First(&court, "id = ?", courtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: court", ErrNotFound)
		}
		return nil, err
	}
	if callerRole != models.RoleAdmin && court.Facility.OwnerID != callerID {
		return nil, fmt.Errorf("%w: you do not manage this court", ErrForbidden)
	}
	return &court, nil
}

// GenerateTimeSlots bulk-creates slots over a date range. Slots that would
// overlap an existing slot are skipped, not errored, and reported in the
// result counts.
func GenerateTimeSlots(db *gorm.DB, callerID uuid.UUID, callerRole string, courtID uuid.UUID, in GenerateSlotsInput) (*GenerateSlotsResult, error) {
	if _, err := courtForCaller(db, callerID, callerRole, courtID); err != nil {
		return nil, err
	}
	if in.SlotMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot duration must be positive", ErrValidation)
	}
	if in.OpenHour < 0 || in.CloseHour > 24 || in.OpenHour >= in.CloseHour {
		return nil, fmt.Errorf("%w: invalid opening hours", ErrValidation)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	wanted := make(map[time.Weekday]bool, len(in.DaysOfWeek))
	for _, d := range in.DaysOfWeek {
		wanted[d] = true
	}

	result := &GenerateSlotsResult{}
	err := db.Transaction(func(tx *gorm.DB) error {
		// Claim the court row so concurrent generation runs on the same
		// court serialize and the overlap counts below stay accurate.
		if err := tx.Model(&models.Court{}).Where("id = ?", courtID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		day := time.Date(in.StartDate.Year(), in.StartDate.Month(), in.StartDate.Day(), 0, 0, 0, 0, in.StartDate.Location())
		last := time.Date(in.EndDate.Year(), in.EndDate.Month(), in.EndDate.Day(), 0, 0, 0, 0, in.EndDate.Location())

		for ; !day.After(last); day = day.AddDate(0, 0, 1) {
			if len(wanted) > 0 && !wanted[day.Weekday()] {
				continue
			}

			price := in.WeekdayPrice
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				if in.WeekendPrice != nil {
					price = in.WeekendPrice
				}
			}

			open := day.Add(time.Duration(in.OpenHour) * time.Hour)
			close := day.Add(time.Duration(in.CloseHour) * time.Hour)
			for start := open; !start.Add(time.Duration(in.SlotMinutes) * time.Minute).After(close); start = start.Add(time.Duration(in.SlotMinutes) * time.Minute) {
				end := start.Add(time.Duration(in.SlotMinutes) * time.Minute)

				var overlapping int64
				if err := tx.Model(&models.TimeSlot{}).
					Where("court_id = ? AND start_time < ? AND end_time > ?", courtID, end, start).
					Count(&overlapping).Error; err != nil {
					return err
				}
				if overlapping > 0 {
					result.Skipped++
					continue
				}

				slot := models.TimeSlot{
					StartTime: start,
					EndTime:   end,
					Price:     price,
					CourtID:   courtID,
				}
				if err := tx.Create(&slot).Error; err != nil {
					return err
				}
				result.Created++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SlotView pairs a slot with its derived status.
type SlotView struct {
	models.TimeSlot
	Status string `json:"status"`
}

// SlotStatus derives the bookable status of a slot. Maintenance wins over
// an existing booking for display purposes.
func SlotStatus(slot *models.TimeSlot) string {
	if slot.IsMaintenanceBlocked {
		return models.SlotMaintenance
	}
	for _, b := range slot.Bookings {
		if b.Status == models.CourtBookingConfirmed {
			return models.SlotBooked
		}
	}
	return models.SlotAvailable
}

// ListCourtSlots returns a court's slots in a window with derived statuses.
func ListCourtSlots(db *gorm.DB, courtID uuid.UUID, from, to time.Time) ([]SlotView, error) {
	var court models.Court
	if err := db.First(&court, "id = ?", courtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: court", ErrNotFound)
		}
		return nil, err
	}

	query := db.Preload("Bookings").Where("court_id = ?", courtID).Order("start_time")
	if !from.IsZero() {
		query = query.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("start_time < ?", to)
	}

	var slots []models.TimeSlot
	if err := query.Find(&slots).Error; err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, len(slots))
	for i := range slots {
		views = append(views, SlotView{TimeSlot: slots[i], Status: SlotStatus(&slots[i])})
	}
	return views, nil
}

// SetSlotMaintenance toggles the maintenance flag. A slot with an active
// booking cannot be toggled either way. The flag write claims the slot row
// before the booking count runs, so a concurrent BookTimeSlot either
// commits first and is seen here, or blocks behind this transaction and
// then sees the flag.
func SetSlotMaintenance(db *gorm.DB, callerID uuid.UUID, callerRole string, slotID uuid.UUID, blocked bool, reason string) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: time slot", ErrNotFound)
			}
			return err
		}
		if _, err := courtForCaller(tx, callerID, callerRole, slot.CourtID); err != nil {
			return err
		}

		if !blocked {
			reason = ""
		}
		if err := tx.Model(&models.TimeSlot{}).Where("id = ?", slot.ID).
			Updates(map[string]interface{}{
				"is_maintenance_blocked": blocked,
				"maintenance_reason":     reason,
			}).Error; err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&models.CourtBooking{}).
			Where("time_slot_id = ? AND status = ?", slot.ID, models.CourtBookingConfirmed).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: slot has an active booking", ErrConflict)
		}

		slot.IsMaintenanceBlocked = blocked
		slot.MaintenanceReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// BookTimeSlot reserves a slot for a player. The transaction claims the
// slot row with an update before reading anything, which serializes
// concurrent bookers and maintenance toggles on the same slot; the partial
// unique index on CONFIRMED bookings backs the count check so two racing
// inserts can never both commit.
func BookTimeSlot(db *gorm.DB, userID, slotID uuid.UUID) (*models.CourtBooking, error) {
	var booking *models.CourtBooking
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TimeSlot{}).Where("id = ?", slotID).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: time slot", ErrNotFound)
		}

		var slot models.TimeSlot
		if err := tx.Preload("Court").First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: time slot", ErrNotFound)
			}
			return err
		}
		if slot.IsMaintenanceBlocked {
			return fmt.Errorf("%w: slot is blocked for maintenance", ErrConflict)
		}
		if !slot.Court.IsActive {
			return fmt.Errorf("%w: court is not active", ErrUnavailable)
		}
		if !slot.StartTime.After(time.Now()) {
			return fmt.Errorf("%w: slot has already started", ErrConflict)
		}

		var active int64
		if err := tx.Model(&models.CourtBooking{}).
			Where("time_slot_id = ? AND status = ?", slot.ID, models.CourtBookingConfirmed).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: slot is already booked", ErrConflict)
		}

		amount := 0
		if slot.Price != nil {
			amount = *slot.Price
		} else {
			amount = slot.Court.PricePerHour * int(slot.EndTime.Sub(slot.StartTime).Minutes()) / 60
		}

		booking = &models.CourtBooking{
			TotalAmount: amount,
			Status:      models.CourtBookingConfirmed,
			TimeSlotID:  slot.ID,
			UserID:      userID,
		}
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: slot is already booked", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}
