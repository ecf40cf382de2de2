package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

func bookSlotAt(t *testing.T, db *gorm.DB, court *models.Court, player *models.User, start time.Time) *models.CourtBooking {
	t.Helper()
	slot := createSlot(t, db, court, start, time.Hour)
	booking, err := BookTimeSlot(db, player.ID, slot.ID)
	require.NoError(t, err)
	return booking
}

func TestCancelCourtBooking(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	rival := createUser(t, db, "rival@example.com")
	admin := createUser(t, db, "admin@example.com")
	_, court := createCourt(t, db, owner)

	t.Run("inside the cutoff", func(t *testing.T) {
		booking := bookSlotAt(t, db, court, player, time.Now().Add(29*time.Minute))
		_, err := CancelCourtBooking(db, player.ID, models.RolePlayer, booking.ID, "can't make it")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("outside the cutoff", func(t *testing.T) {
		booking := bookSlotAt(t, db, court, player, time.Now().Add(31*time.Minute))
		cancelled, err := CancelCourtBooking(db, player.ID, models.RolePlayer, booking.ID, "can't make it")
		require.NoError(t, err)
		assert.Equal(t, models.CourtBookingCancelled, cancelled.Status)
		assert.Equal(t, "can't make it", cancelled.CancelReason)
		require.NotNil(t, cancelled.CancelledAt)

		// Terminal: a second cancellation is refused.
		_, err = CancelCourtBooking(db, player.ID, models.RolePlayer, booking.ID, "again")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("only the booker or an admin", func(t *testing.T) {
		booking := bookSlotAt(t, db, court, player, time.Now().Add(2*time.Hour))
		_, err := CancelCourtBooking(db, rival.ID, models.RolePlayer, booking.ID, "mine now")
		assert.ErrorIs(t, err, ErrForbidden)

		cancelled, err := CancelCourtBooking(db, admin.ID, models.RoleAdmin, booking.ID, "venue closed")
		require.NoError(t, err)
		assert.Equal(t, models.CourtBookingCancelled, cancelled.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := CancelCourtBooking(db, player.ID, models.RolePlayer, court.ID, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCompleteCourtBooking(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	_, court := createCourt(t, db, owner)

	t.Run("before the slot ends", func(t *testing.T) {
		booking := bookSlotAt(t, db, court, player, time.Now().Add(time.Hour))
		_, err := CompleteCourtBooking(db, owner.ID, models.RoleOrganizer, booking.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("after the slot ends", func(t *testing.T) {
		slot := createSlot(t, db, court, time.Now().Add(time.Minute), time.Hour)
		booking, err := BookTimeSlot(db, player.ID, slot.ID)
		require.NoError(t, err)

		// Move the slot into the past; booking it through the service
		// would have been refused once started.
		require.NoError(t, db.Model(slot).Updates(map[string]interface{}{
			"start_time": time.Now().Add(-2 * time.Hour),
			"end_time":   time.Now().Add(-time.Hour),
		}).Error)

		_, err = CompleteCourtBooking(db, player.ID, models.RolePlayer, booking.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		completed, err := CompleteCourtBooking(db, owner.ID, models.RoleOrganizer, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CourtBookingCompleted, completed.Status)

		// Completed is terminal.
		_, err = CompleteCourtBooking(db, owner.ID, models.RoleOrganizer, booking.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})
}
