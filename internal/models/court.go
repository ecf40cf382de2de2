package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Court struct {
	gorm.Model
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Sport        string    `gorm:"not null"`
	PricePerHour int       `gorm:"not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	FacilityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Facility     Facility
	TimeSlots    []TimeSlot
}

func (court *Court) BeforeCreate(tx *gorm.DB) (err error) {
	if court.ID == uuid.Nil {
		court.ID = uuid.New()
	}
	return
}
