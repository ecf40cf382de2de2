package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time `gorm:"not null"`
	City        string    `gorm:"not null"`
	Venue       string    `gorm:"not null"`
	BannerPath  string
	// CurrentAttendees only ever grows, and only inside a confirmed
	// payment verification. Cancellations do not release seats.
	MaxAttendees     int `gorm:"not null;default:0"`
	CurrentAttendees int `gorm:"not null;default:0"`
	OrganizerID      uuid.UUID
	Organizer        User       `gorm:"foreignKey:OrganizerID"`
	Categories       []Category `gorm:"many2many:event_categories;"`
	Tickets          []Ticket
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
