package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
	"github.com/eventhive/eventhive/internal/services"
)

type CourtRequest struct {
	Name         string    `json:"name" binding:"required"`
	Sport        string    `json:"sport" binding:"required"`
	PricePerHour int       `json:"price_per_hour" binding:"required,min=0"`
	FacilityID   uuid.UUID `json:"facility_id" binding:"required"`
}

func CreateCourt(c *gin.Context) {
	var req CourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Where("id = ?", req.FacilityID)
	if role != models.RoleAdmin {
		query = query.Where("owner_id = ?", userID)
	}
	var facility models.Facility
	if err := query.First(&facility).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Facility not found or you don't have permission to modify it.")
		return
	}

	court := models.Court{
		Name:         req.Name,
		Sport:        req.Sport,
		PricePerHour: req.PricePerHour,
		IsActive:     true,
		FacilityID:   facility.ID,
	}

	if err := gormDB.Create(&court).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create court.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Court created successfully.",
		"court_id": court.ID,
	})
}

func UpdateCourt(c *gin.Context) {
	courtID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid court ID.")
		return
	}

	var req struct {
		Name         string `json:"name"`
		Sport        string `json:"sport"`
		PricePerHour *int   `json:"price_per_hour"`
		IsActive     *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var court models.Court
	if err := gormDB.Preload("Facility").First(&court, "id = ?", courtID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Court not found.")
		return
	}
	if role != models.RoleAdmin && court.Facility.OwnerID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to modify this court.")
		return
	}

	if req.Name != "" {
		court.Name = req.Name
	}
	if req.Sport != "" {
		court.Sport = req.Sport
	}
	if req.PricePerHour != nil {
		court.PricePerHour = *req.PricePerHour
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	if err := gormDB.Save(&court).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update court.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Court updated successfully.",
		"court":   court,
	})
}

func DeleteCourt(c *gin.Context) {
	courtID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid court ID.")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if err := services.DeleteCourt(gormDB, userID, role, courtID); err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Court deleted successfully."})
}

// ListCourtSlots is the public slot calendar with derived statuses.
func ListCourtSlots(c *gin.Context) {
	courtID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid court ID.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid from date.")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid to date.")
			return
		}
	}

	slots, err := services.ListCourtSlots(gormDB, courtID, from, to)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type GenerateSlotsRequest struct {
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
	DaysOfWeek   []int     `json:"days_of_week"`
	OpenHour     int       `json:"open_hour"`
	CloseHour    int       `json:"close_hour" binding:"required"`
	SlotMinutes  int       `json:"slot_minutes" binding:"required"`
	WeekdayPrice *int      `json:"weekday_price"`
	WeekendPrice *int      `json:"weekend_price"`
}

func GenerateCourtSlots(c *gin.Context) {
	courtID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid court ID.")
		return
	}

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	days := make([]time.Weekday, 0, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		if d < 0 || d > 6 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Days of week must be 0 (Sunday) through 6 (Saturday).")
			return
		}
		days = append(days, time.Weekday(d))
	}

	result, err := services.GenerateTimeSlots(gormDB, userID, role, courtID, services.GenerateSlotsInput{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DaysOfWeek:   days,
		OpenHour:     req.OpenHour,
		CloseHour:    req.CloseHour,
		SlotMinutes:  req.SlotMinutes,
		WeekdayPrice: req.WeekdayPrice,
		WeekendPrice: req.WeekendPrice,
	})
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Time slots generated.",
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

type MaintenanceRequest struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
}

func SetSlotMaintenance(c *gin.Context) {
	slotID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid slot ID.")
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	slot, err := services.SetSlotMaintenance(gormDB, userID, role, slotID, req.Blocked, req.Reason)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Maintenance status updated.",
		"slot":    slot,
	})
}

func BookTimeSlot(c *gin.Context) {
	slotID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid slot ID.")
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

	booking, err := services.BookTimeSlot(gormDB, userID, slotID)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Court booked successfully.",
		"booking_id": booking.ID,
		"amount":     booking.TotalAmount,
	})
}
