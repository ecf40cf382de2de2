package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/eventhive/internal/models"
)

func TestDeleteCourt(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	player := createUser(t, db, "player@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	_, court := createCourt(t, db, owner)

	slot := createSlot(t, db, court, time.Now().Add(24*time.Hour), time.Hour)
	booking, err := BookTimeSlot(db, player.ID, slot.ID)
	require.NoError(t, err)

	t.Run("not the owner", func(t *testing.T) {
		err := DeleteCourt(db, stranger.ID, models.RoleOrganizer, court.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("refused while bookings are active", func(t *testing.T) {
		err := DeleteCourt(db, owner.ID, models.RoleOrganizer, court.ID)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("deletes court and slots once bookings are resolved", func(t *testing.T) {
		_, err := CancelCourtBooking(db, player.ID, models.RolePlayer, booking.ID, "moving away")
		require.NoError(t, err)

		require.NoError(t, DeleteCourt(db, owner.ID, models.RoleOrganizer, court.ID))

		var courts, slots int64
		require.NoError(t, db.Model(&models.Court{}).Where("id = ?", court.ID).Count(&courts).Error)
		require.NoError(t, db.Model(&models.TimeSlot{}).Where("court_id = ?", court.ID).Count(&slots).Error)
		assert.EqualValues(t, 0, courts)
		assert.EqualValues(t, 0, slots)
	})
}
