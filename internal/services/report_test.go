package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/eventhive/internal/models"
)

func TestSubmitReport(t *testing.T) {
	db := newTestDB(t)
	reporter := createUser(t, db, "reporter@example.com")
	offender := createUser(t, db, "offender@example.com")
	owner := createUser(t, db, "owner@example.com")
	facility, _ := createCourt(t, db, owner)

	t.Run("against a user", func(t *testing.T) {
		report, err := SubmitReport(db, reporter.ID, SubmitReportInput{
			Reason:       "harassment",
			Description:  "abusive messages after a match",
			TargetUserID: &offender.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportPending, report.Status)
		assert.Equal(t, reporter.ID, report.ReporterID)
		assert.Nil(t, report.TargetFacilityID)
	})

	t.Run("against a facility", func(t *testing.T) {
		report, err := SubmitReport(db, reporter.ID, SubmitReportInput{
			Reason:           "unsafe conditions",
			TargetFacilityID: &facility.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportPending, report.Status)
		assert.Nil(t, report.TargetUserID)
	})

	t.Run("exactly one target", func(t *testing.T) {
		_, err := SubmitReport(db, reporter.ID, SubmitReportInput{Reason: "spam"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = SubmitReport(db, reporter.ID, SubmitReportInput{
			Reason:           "spam",
			TargetUserID:     &offender.ID,
			TargetFacilityID: &facility.ID,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("reason required", func(t *testing.T) {
		_, err := SubmitReport(db, reporter.ID, SubmitReportInput{TargetUserID: &offender.ID})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("target must exist", func(t *testing.T) {
		ghost := uuid.New()
		_, err := SubmitReport(db, reporter.ID, SubmitReportInput{Reason: "spam", TargetUserID: &ghost})
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = SubmitReport(db, reporter.ID, SubmitReportInput{Reason: "spam", TargetFacilityID: &ghost})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateReportStatus(t *testing.T) {
	db := newTestDB(t)
	reporter := createUser(t, db, "reporter@example.com")
	offender := createUser(t, db, "offender@example.com")
	admin := createUser(t, db, "admin@example.com")

	newReport := func(t *testing.T) *models.Report {
		report, err := SubmitReport(db, reporter.ID, SubmitReportInput{
			Reason:       "harassment",
			TargetUserID: &offender.ID,
		})
		require.NoError(t, err)
		return report
	}

	t.Run("pending through review to resolved", func(t *testing.T) {
		report := newReport(t)

		reviewed, err := UpdateReportStatus(db, admin.ID, report.ID, models.ReportUnderReview, "")
		require.NoError(t, err)
		assert.Equal(t, models.ReportUnderReview, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedByID)
		assert.Equal(t, admin.ID, *reviewed.ReviewedByID)
		assert.NotNil(t, reviewed.ReviewedAt)

		resolved, err := UpdateReportStatus(db, admin.ID, report.ID, models.ReportResolved, "user suspended")
		require.NoError(t, err)
		assert.Equal(t, models.ReportResolved, resolved.Status)
		assert.Equal(t, "user suspended", resolved.ActionTaken)
	})

	t.Run("pending straight to dismissed", func(t *testing.T) {
		report := newReport(t)
		dismissed, err := UpdateReportStatus(db, admin.ID, report.ID, models.ReportDismissed, "no evidence")
		require.NoError(t, err)
		assert.Equal(t, models.ReportDismissed, dismissed.Status)
	})

	t.Run("terminal states are protected", func(t *testing.T) {
		report := newReport(t)
		_, err := UpdateReportStatus(db, admin.ID, report.ID, models.ReportResolved, "done")
		require.NoError(t, err)

		_, err = UpdateReportStatus(db, admin.ID, report.ID, models.ReportUnderReview, "")
		assert.ErrorIs(t, err, ErrConflict)
		_, err = UpdateReportStatus(db, admin.ID, report.ID, models.ReportDismissed, "")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown status", func(t *testing.T) {
		report := newReport(t)
		_, err := UpdateReportStatus(db, admin.ID, report.ID, "ESCALATED", "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown report", func(t *testing.T) {
		_, err := UpdateReportStatus(db, admin.ID, uuid.New(), models.ReportResolved, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteReport(t *testing.T) {
	db := newTestDB(t)
	reporter := createUser(t, db, "reporter@example.com")
	offender := createUser(t, db, "offender@example.com")

	report, err := SubmitReport(db, reporter.ID, SubmitReportInput{
		Reason:       "spam",
		TargetUserID: &offender.ID,
	})
	require.NoError(t, err)

	require.NoError(t, DeleteReport(db, report.ID))
	assert.ErrorIs(t, DeleteReport(db, report.ID), ErrNotFound)
}
