package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Facility struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	City        string `gorm:"not null"`
	Address     string `gorm:"not null"`
	IsActive    bool   `gorm:"not null;default:true"`
	OwnerID     uuid.UUID
	Owner       User `gorm:"foreignKey:OwnerID"`
	Courts      []Court
}

func (facility *Facility) BeforeCreate(tx *gorm.DB) (err error) {
	if facility.ID == uuid.Nil {
		facility.ID = uuid.New()
	}
	return
}
