package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/models"
)

type SubmitReportInput struct {
	Reason           string
	Description      string
	TargetUserID     *uuid.UUID
	TargetFacilityID *uuid.UUID
}

// reportTransitions is the allowed forward-only state machine. RESOLVED
// and DISMISSED are terminal.
var reportTransitions = map[string][]string{
	models.ReportPending:     {models.ReportUnderReview, models.ReportResolved, models.ReportDismissed},
	models.ReportUnderReview: {models.ReportResolved, models.ReportDismissed},
}

func reportTransitionAllowed(from, to string) bool {
	for _, next := range reportTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SubmitReport files a report against exactly one target, which must exist.
func SubmitReport(db *gorm.DB, reporterID uuid.UUID, in SubmitReportInput) (*models.Report, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrValidation)
	}
	if (in.TargetUserID == nil) == (in.TargetFacilityID == nil) {
		return nil, fmt.Errorf("%w: exactly one of target user or target facility must be set", ErrValidation)
	}

	if in.TargetUserID != nil {
		var target models.User
		if err := db.First(&target, "id = ?", *in.TargetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: target user", ErrNotFound)
			}
			return nil, err
		}
	} else {
		var target models.Facility
		if err := db.First(&target, "id = ?", *in.TargetFacilityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: target facility", ErrNotFound)
			}
			return nil, err
		}
	}

	report := models.Report{
		Reason:           in.Reason,
		Description:      in.Description,
		Status:           models.ReportPending,
		ReporterID:       reporterID,
		TargetUserID:     in.TargetUserID,
		TargetFacilityID: in.TargetFacilityID,
	}
	if err := db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReportStatus advances a report through the moderation workflow,
// recording who reviewed it and what was done.
func UpdateReportStatus(db *gorm.DB, adminID, reportID uuid.UUID, newStatus, actionTaken string) (*models.Report, error) {
	switch newStatus {
	case models.ReportUnderReview, models.ReportResolved, models.ReportDismissed:
	default:
		return nil, fmt.Errorf("%w: unknown report status %q", ErrValidation, newStatus)
	}

	var report models.Report
	if err := db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: report", ErrNotFound)
		}
		return nil, err
	}
	if !reportTransitionAllowed(report.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move report from %s to %s", ErrConflict, report.Status, newStatus)
	}

	now := time.Now()
	res := db.Model(&models.Report{}).
		Where("id = ? AND status = ?", report.ID, report.Status).
		Updates(map[string]interface{}{
			"status":         newStatus,
			"action_taken":   actionTaken,
			"reviewed_by_id": adminID,
			"reviewed_at":    now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: report was updated concurrently", ErrConflict)
	}

	report.Status = newStatus
	report.ActionTaken = actionTaken
	report.ReviewedByID = &adminID
	report.ReviewedAt = &now
	return &report, nil
}

// DeleteReport removes a report entirely.
func DeleteReport(db *gorm.DB, reportID uuid.UUID) error {
	res := db.Where("id = ?", reportID).Delete(&models.Report{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: report", ErrNotFound)
	}
	return nil
}
