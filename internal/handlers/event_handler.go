package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

func CreateEvent(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")

	startTime, err := time.Parse(time.RFC3339, c.PostForm("start_time"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format.")
		return
	}
	endTime, err := time.Parse(time.RFC3339, c.PostForm("end_time"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end time format.")
		return
	}

	city := c.PostForm("city")
	venue := c.PostForm("venue")

	maxAttendees := 0
	if raw := c.PostForm("max_attendees"); raw != "" {
		maxAttendees, err = helpers.StringToInt(raw)
		if err != nil || maxAttendees < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid max attendees.")
			return
		}
	}

	var categories []string
	for i := 0; ; i++ {
		category := c.PostForm(fmt.Sprintf("categories[%d]", i))
		if category == "" {
			break
		}
		categories = append(categories, category)
	}

	if title == "" || description == "" || city == "" || venue == "" || len(categories) == 0 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing required fields.")
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

	var eventCategories []models.Category
	for _, categoryName := range categories {
		var category models.Category
		if err := gormDB.Where("name = ?", categoryName).FirstOrCreate(&category, models.Category{Name: categoryName}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error processing categories.")
			return
		}
		eventCategories = append(eventCategories, category)
	}

	event := models.Event{
		Title:        title,
		Description:  description,
		StartTime:    startTime,
		EndTime:      endTime,
		City:         city,
		Venue:        venue,
		MaxAttendees: maxAttendees,
		OrganizerID:  userID,
		Categories:   eventCategories,
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var event models.Event
	if err := gormDB.Preload("Categories").Preload("Organizer").Preload("Tickets").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	pageNum, limitNum, err := helpers.Pagination(c)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := gormDB.Model(&models.Event{})
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if from := c.Query("from"); from != "" {
		fromTime, err := time.Parse(time.RFC3339, from)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid from date.")
			return
		}
		query = query.Where("start_time >= ?", fromTime)
	}
	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN event_categories ON event_categories.event_id = events.id").
			Joins("JOIN categories ON categories.id = event_categories.category_id").
			Where("categories.name = ?", category)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Preload("Categories").Preload("Organizer").Preload("Tickets").Offset(offset).Limit(limitNum).Order("created_at DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Where("id = ?", eventID)
	if role != models.RoleAdmin {
		query = query.Where("organizer_id = ?", userID)
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to update.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if title := c.PostForm("title"); title != "" {
		event.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		event.Description = description
	}
	if raw := c.PostForm("start_time"); raw != "" {
		startTime, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format.")
			return
		}
		event.StartTime = startTime
	}
	if raw := c.PostForm("end_time"); raw != "" {
		endTime, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid end time format.")
			return
		}
		event.EndTime = endTime
	}
	if city := c.PostForm("city"); city != "" {
		event.City = city
	}
	if venue := c.PostForm("venue"); venue != "" {
		event.Venue = venue
	}
	if raw := c.PostForm("max_attendees"); raw != "" {
		maxAttendees, err := helpers.StringToInt(raw)
		if err != nil || maxAttendees < 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid max attendees.")
			return
		}
		event.MaxAttendees = maxAttendees
	}

	bannerFile, err := c.FormFile("banner")
	if err == nil {
		bannerPath, err := helpers.UploadFile(c, bannerFile, "event_banners")
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if event.BannerPath != "" {
			if err := helpers.DeleteFile(event.BannerPath); err != nil {
				fmt.Printf("Error deleting old banner: %v\n", err)
			}
		}
		event.BannerPath = bannerPath
	}

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	var categories []string
	for i := 0; ; i++ {
		category := c.PostForm(fmt.Sprintf("categories[%d]", i))
		if category == "" {
			break
		}
		categories = append(categories, category)
	}
	if len(categories) > 0 {
		var updatedCategories []models.Category
		for _, categoryName := range categories {
			var category models.Category
			if err := gormDB.Where("name = ?", categoryName).FirstOrCreate(&category, models.Category{Name: categoryName}).Error; err != nil {
				helpers.RespondWithError(c, http.StatusInternalServerError, "Error processing categories.")
				return
			}
			updatedCategories = append(updatedCategories, category)
		}
		if err := gormDB.Model(&event).Association("Categories").Replace(updatedCategories); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating categories.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Where("id = ?", eventID)
	if role != models.RoleAdmin {
		query = query.Where("organizer_id = ?", userID)
	}

	result := query.Delete(&models.Event{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to delete.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully.",
	})
}
