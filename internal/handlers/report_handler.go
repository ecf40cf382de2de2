package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
	"github.com/eventhive/eventhive/internal/services"
)

type SubmitReportRequest struct {
	Reason           string     `json:"reason" binding:"required"`
	Description      string     `json:"description"`
	TargetUserID     *uuid.UUID `json:"target_user_id"`
	TargetFacilityID *uuid.UUID `json:"target_facility_id"`
}

func SubmitReport(c *gin.Context) {
	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	report, err := services.SubmitReport(gormDB, userID, services.SubmitReportInput{
		Reason:           req.Reason,
		Description:      req.Description,
		TargetUserID:     req.TargetUserID,
		TargetFacilityID: req.TargetFacilityID,
	})
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Report submitted.",
		"report_id": report.ID,
	})
}

// ListReports is the admin review queue, optionally filtered by status.
func ListReports(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	pageNum, limitNum, err := helpers.Pagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Report{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	query.Count(&totalCount)

	var reports []models.Report
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Reporter").Preload("TargetUser").Preload("TargetFacility").Preload("ReviewedBy").
		Offset(offset).Limit(limitNum).Order("created_at ASC").Find(&reports).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving reports.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   totalCount,
		"page":    pageNum,
		"limit":   limitNum,
	})
}

type UpdateReportStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	ActionTaken string `json:"action_taken"`
}

func UpdateReportStatus(c *gin.Context) {
	reportID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid report ID.")
		return
	}

	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	report, err := services.UpdateReportStatus(gormDB, userID, reportID, req.Status, req.ActionTaken)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated.",
		"report":  report,
	})
}

func DeleteReport(c *gin.Context) {
	reportID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid report ID.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if err := services.DeleteReport(gormDB, reportID); err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted."})
}
