package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventhive/eventhive/config"
	"github.com/eventhive/eventhive/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createEventWithTicket(t *testing.T, db *gorm.DB, organizer *models.User, quantity int) (*models.Event, *models.Ticket) {
	t.Helper()

	event := models.Event{
		Title:        "Jazz Night",
		Description:  "An evening of live jazz",
		StartTime:    time.Now().Add(72 * time.Hour),
		EndTime:      time.Now().Add(76 * time.Hour),
		City:         "Austin",
		Venue:        "The Blue Room",
		MaxAttendees: 500,
		OrganizerID:  organizer.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	ticket := models.Ticket{
		Name:              "General Admission",
		Price:             5000,
		Quantity:          quantity,
		AvailableQuantity: quantity,
		MinPerUser:        1,
		MaxPerUser:        10,
		IsActive:          true,
		EventID:           event.ID,
	}
	require.NoError(t, db.Create(&ticket).Error)
	return &event, &ticket
}

func createCourt(t *testing.T, db *gorm.DB, owner *models.User) (*models.Facility, *models.Court) {
	t.Helper()

	facility := models.Facility{
		Name:     "Northside Sports Center",
		City:     "Austin",
		Address:  "42 Court St",
		IsActive: true,
		OwnerID:  owner.ID,
	}
	require.NoError(t, db.Create(&facility).Error)

	court := models.Court{
		Name:         "Court 1",
		Sport:        "badminton",
		PricePerHour: 2000,
		IsActive:     true,
		FacilityID:   facility.ID,
	}
	require.NoError(t, db.Create(&court).Error)
	return &facility, &court
}

func createSlot(t *testing.T, db *gorm.DB, court *models.Court, start time.Time, duration time.Duration) *models.TimeSlot {
	t.Helper()

	slot := models.TimeSlot{
		StartTime: start,
		EndTime:   start.Add(duration),
		CourtID:   court.ID,
	}
	require.NoError(t, db.Create(&slot).Error)
	return &slot
}
