package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

type FacilityRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	City        string `json:"city" binding:"required"`
	Address     string `json:"address" binding:"required"`
}

func CreateFacility(c *gin.Context) {
	var req FacilityRequest
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

	facility := models.Facility{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		IsActive:    true,
		OwnerID:     userID,
	}

	if err := gormDB.Create(&facility).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create facility.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Facility created successfully.",
		"facility_id": facility.ID,
	})
}

func ListFacilities(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	pageNum, limitNum, err := helpers.Pagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Facility{}).Where("is_active = ?", true)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var totalCount int64
	query.Count(&totalCount)

	var facilities []models.Facility
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Courts").Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&facilities).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving facilities.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"facilities":  facilities,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetFacility(c *gin.Context) {
	facilityID := c.Param("id")

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var facility models.Facility
	if err := gormDB.Preload("Courts").Preload("Owner").Where("id = ?", facilityID).First(&facility).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Facility not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving facility.")
		return
	}

	c.JSON(http.StatusOK, facility)
}

// facilityForCaller loads a facility the caller may manage (owner or
// admin), responding on failure.
func facilityForCaller(c *gin.Context, gormDB *gorm.DB) (*models.Facility, bool) {
	facilityID := c.Param("id")
	userID, role, ok := currentUser(c)
	if !ok {
		return nil, false
	}

	query := gormDB.Where("id = ?", facilityID)
	if role != models.RoleAdmin {
		query = query.Where("owner_id = ?", userID)
	}

	var facility models.Facility
	if err := query.First(&facility).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Facility not found or you don't have permission to modify it.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding facility.")
		return nil, false
	}
	return &facility, true
}

func UpdateFacility(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	facility, ok := facilityForCaller(c, gormDB)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		City        string `json:"city"`
		Address     string `json:"address"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if req.Name != "" {
		facility.Name = req.Name
	}
	if req.Description != "" {
		facility.Description = req.Description
	}
	if req.City != "" {
		facility.City = req.City
	}
	if req.Address != "" {
		facility.Address = req.Address
	}
	if req.IsActive != nil {
		facility.IsActive = *req.IsActive
	}

	if err := gormDB.Save(facility).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update facility.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Facility updated successfully.",
		"facility": facility,
	})
}

func DeleteFacility(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}
	facility, ok := facilityForCaller(c, gormDB)
	if !ok {
		return
	}

	var courtCount int64
	if err := gormDB.Model(&models.Court{}).Where("facility_id = ?", facility.ID).Count(&courtCount).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error checking facility courts.")
		return
	}
	if courtCount > 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Facility still has courts. Delete them first.")
		return
	}

	if err := gormDB.Delete(facility).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete facility.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Facility deleted successfully."})
}
