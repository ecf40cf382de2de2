package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportPending     = "PENDING"
	ReportUnderReview = "UNDER_REVIEW"
	ReportResolved    = "RESOLVED"
	ReportDismissed   = "DISMISSED"
)

// Report is filed against exactly one of TargetUser or TargetFacility.
// Status only moves forward; RESOLVED and DISMISSED are terminal.
type Report struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Reason           string    `gorm:"not null"`
	Description      string
	Status           string `gorm:"not null;default:'PENDING';index"`
	ActionTaken      string
	ReporterID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Reporter         User      `gorm:"foreignKey:ReporterID"`
	TargetUserID     *uuid.UUID `gorm:"type:uuid;index"`
	TargetUser       *User      `gorm:"foreignKey:TargetUserID"`
	TargetFacilityID *uuid.UUID `gorm:"type:uuid;index"`
	TargetFacility   *Facility  `gorm:"foreignKey:TargetFacilityID"`
	ReviewedByID     *uuid.UUID `gorm:"type:uuid"`
	ReviewedBy       *User      `gorm:"foreignKey:ReviewedByID"`
	ReviewedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (report *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return
}
