package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

func TestGenerateTimeSlots(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	_, court := createCourt(t, db, owner)

	// A Monday, so weekday math in the sub-tests is predictable.
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("stranger cannot generate", func(t *testing.T) {
		_, err := GenerateTimeSlots(db, stranger.ID, models.RolePlayer, court.ID, GenerateSlotsInput{
			StartDate:   monday,
			EndDate:     monday,
			OpenHour:    8,
			CloseHour:   10,
			SlotMinutes: 60,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid opening hours", func(t *testing.T) {
		_, err := GenerateTimeSlots(db, owner.ID, models.RoleOrganizer, court.ID, GenerateSlotsInput{
			StartDate:   monday,
			EndDate:     monday,
			OpenHour:    18,
			CloseHour:   8,
			SlotMinutes: 60,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("fills the week honoring the weekday filter", func(t *testing.T) {
		result, err := GenerateTimeSlots(db, owner.ID, models.RoleOrganizer, court.ID, GenerateSlotsInput{
			StartDate:   monday,
			EndDate:     monday.AddDate(0, 0, 6),
			DaysOfWeek:  []time.Weekday{time.Monday, time.Wednesday},
			OpenHour:    8,
			CloseHour:   12,
			SlotMinutes: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, 8, result.Created) // 2 days x 4 one-hour slots
		assert.Equal(t, 0, result.Skipped)
	})

	t.Run("overlapping slots are skipped not errored", func(t *testing.T) {
		result, err := GenerateTimeSlots(db, owner.ID, models.RoleOrganizer, court.ID, GenerateSlotsInput{
			StartDate:   monday,
			EndDate:     monday,
			OpenHour:    8,
			CloseHour:   14,
			SlotMinutes: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Created) // 12:00 and 13:00 are new
		assert.Equal(t, 4, result.Skipped) // 8:00 through 11:00 already exist
	})

	t.Run("weekend price override", func(t *testing.T) {
		weekday, weekend := 1500, 2500
		saturday := monday.AddDate(0, 0, 5)
		result, err := GenerateTimeSlots(db, owner.ID, models.RoleOrganizer, court.ID, GenerateSlotsInput{
			StartDate:    saturday,
			EndDate:      saturday.AddDate(0, 0, 2), // Sat, Sun, Mon
			OpenHour:     9,
			CloseHour:    10,
			SlotMinutes:  60,
			WeekdayPrice: &weekday,
			WeekendPrice: &weekend,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Created)

		var slots []models.TimeSlot
		require.NoError(t, db.Where("court_id = ? AND start_time >= ?", court.ID, saturday).
			Order("start_time").Find(&slots).Error)
		require.Len(t, slots, 3)
		assert.Equal(t, 2500, *slots[0].Price) // Saturday
		assert.Equal(t, 2500, *slots[1].Price) // Sunday
		assert.Equal(t, 1500, *slots[2].Price) // Monday
	})
}

func TestListCourtSlotsStatuses(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	_, court := createCourt(t, db, owner)

	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	available := createSlot(t, db, court, base, time.Hour)
	booked := createSlot(t, db, court, base.Add(time.Hour), time.Hour)
	blocked := createSlot(t, db, court, base.Add(2*time.Hour), time.Hour)

	_, err := BookTimeSlot(db, player.ID, booked.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(blocked).Update("is_maintenance_blocked", true).Error)

	views, err := ListCourtSlots(db, court.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, available.ID, views[0].ID)
	assert.Equal(t, models.SlotAvailable, views[0].Status)
	assert.Equal(t, models.SlotBooked, views[1].Status)
	assert.Equal(t, models.SlotMaintenance, views[2].Status)

	// Window filter cuts by start time.
	views, err = ListCourtSlots(db, court.ID, base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, booked.ID, views[0].ID)
}

func TestSetSlotMaintenance(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	_, court := createCourt(t, db, owner)

	slot := createSlot(t, db, court, time.Now().Add(24*time.Hour), time.Hour)

	updated, err := SetSlotMaintenance(db, owner.ID, models.RoleOrganizer, slot.ID, true, "resurfacing")
	require.NoError(t, err)
	assert.True(t, updated.IsMaintenanceBlocked)
	assert.Equal(t, "resurfacing", updated.MaintenanceReason)

	// Unblocking clears the reason.
	updated, err = SetSlotMaintenance(db, owner.ID, models.RoleOrganizer, slot.ID, false, "")
	require.NoError(t, err)
	assert.False(t, updated.IsMaintenanceBlocked)
	assert.Empty(t, updated.MaintenanceReason)

	// A slot with an active booking cannot be blocked, and the refused
	// attempt leaves the flag untouched.
	_, err = BookTimeSlot(db, player.ID, slot.ID)
	require.NoError(t, err)
	_, err = SetSlotMaintenance(db, owner.ID, models.RoleOrganizer, slot.ID, true, "resurfacing")
	assert.ErrorIs(t, err, ErrConflict)

	var fresh models.TimeSlot
	require.NoError(t, db.First(&fresh, "id = ?", slot.ID).Error)
	assert.False(t, fresh.IsMaintenanceBlocked)
	assert.Empty(t, fresh.MaintenanceReason)
}

func TestBookTimeSlot(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	rival := createUser(t, db, "rival@example.com")
	_, court := createCourt(t, db, owner)

	t.Run("price from hourly rate", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(24*time.Hour), 90*time.Minute)
		booking, err := BookTimeSlot(db, player.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CourtBookingConfirmed, booking.Status)
		assert.Equal(t, 3000, booking.TotalAmount) // 2000/hour x 1.5h
	})

	t.Run("slot price override wins", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(26*time.Hour), time.Hour)
		price := 999
		require.NoError(t, db.Model(slot).Update("price", price).Error)
		booking, err := BookTimeSlot(db, player.ID, slot.ID)
		require.NoError(t, err)
		assert.Equal(t, 999, booking.TotalAmount)
	})

	t.Run("double booking is a conflict", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(28*time.Hour), time.Hour)
		_, err := BookTimeSlot(db, player.ID, slot.ID)
		require.NoError(t, err)
		_, err = BookTimeSlot(db, rival.ID, slot.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("maintenance blocked slot", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(30*time.Hour), time.Hour)
		require.NoError(t, db.Model(slot).Update("is_maintenance_blocked", true).Error)
		_, err := BookTimeSlot(db, player.ID, slot.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("slot already started", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(-time.Hour), time.Hour)
		_, err := BookTimeSlot(db, player.ID, slot.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("inactive court", func(t *testing.T) {
		_, closedCourt := createCourt(t, db, owner)
		require.NoError(t, db.Model(closedCourt).Update("is_active", false).Error)
		slot := createSlot(t, db, closedCourt, time.Now().Add(32*time.Hour), time.Hour)
		_, err := BookTimeSlot(db, player.ID, slot.ID)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestActiveBookingUniquePerSlot(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	rival := createUser(t, db, "rival@example.com")
	_, court := createCourt(t, db, owner)
	slot := createSlot(t, db, court, time.Now().Add(24*time.Hour), time.Hour)

	booking, err := BookTimeSlot(db, player.ID, slot.ID)
	require.NoError(t, err)

	// The schema itself refuses a second CONFIRMED booking, even one
	// written past the service's checks.
	dup := models.CourtBooking{
		TotalAmount: 2000,
		Status:      models.CourtBookingConfirmed,
		TimeSlotID:  slot.ID,
		UserID:      rival.ID,
	}
	err = db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Cancelling releases the slot for a fresh booking.
	_, err = CancelCourtBooking(db, player.ID, models.RolePlayer, booking.ID, "rain")
	require.NoError(t, err)
	rebooked, err := BookTimeSlot(db, rival.ID, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourtBookingConfirmed, rebooked.Status)
}
