package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

type TicketRequest struct {
	Name          string     `json:"name" binding:"required"`
	Price         int        `json:"price" binding:"required,min=0"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
	MinPerUser    int        `json:"min_per_user"`
	MaxPerUser    int        `json:"max_per_user"`
	SaleStartDate *time.Time `json:"sale_start_date"`
	SaleEndDate   *time.Time `json:"sale_end_date"`
	EventID       uuid.UUID  `json:"event_id" binding:"required"`
}

// eventOwnedByCaller checks that the caller organizes the event, with an
// admin bypass.
func eventOwnedByCaller(c *gin.Context, gormDB *gorm.DB, eventID, userID uuid.UUID, role string) bool {
	query := gormDB.Where("id = ?", eventID)
	if role != models.RoleAdmin {
		query = query.Where("organizer_id = ?", userID)
	}
	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to modify it.")
			return false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying event ownership.")
		return false
	}
	return true
}

func CreateTicket(c *gin.Context) {
	var req TicketRequest
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

	if !eventOwnedByCaller(c, gormDB, req.EventID, userID, role) {
		return
	}

	minPerUser := req.MinPerUser
	if minPerUser < 1 {
		minPerUser = 1
	}
	maxPerUser := req.MaxPerUser
	if maxPerUser < minPerUser {
		maxPerUser = minPerUser
	}

	ticket := models.Ticket{
		Name:              req.Name,
		Price:             req.Price,
		Quantity:          req.Quantity,
		AvailableQuantity: req.Quantity,
		MinPerUser:        minPerUser,
		MaxPerUser:        maxPerUser,
		IsActive:          true,
		EventID:           req.EventID,
	}
	if req.SaleStartDate != nil {
		ticket.SaleStartDate = *req.SaleStartDate
	}
	if req.SaleEndDate != nil {
		ticket.SaleEndDate = *req.SaleEndDate
	}

	if err := gormDB.Create(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Ticket created successfully.",
		"ticket_id": ticket.ID,
	})
}

func GetTicket(c *gin.Context) {
	ticketID := c.Param("id")

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

type TicketUpdateRequest struct {
	Name          string     `json:"name"`
	Price         *int       `json:"price"`
	Quantity      *int       `json:"quantity"`
	MinPerUser    *int       `json:"min_per_user"`
	MaxPerUser    *int       `json:"max_per_user"`
	IsActive      *bool      `json:"is_active"`
	SaleStartDate *time.Time `json:"sale_start_date"`
	SaleEndDate   *time.Time `json:"sale_end_date"`
}

func UpdateTicket(c *gin.Context) {
	ticketID := c.Param("id")
	var req TicketUpdateRequest
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

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	if !eventOwnedByCaller(c, gormDB, ticket.EventID, userID, role) {
		return
	}

	if req.Name != "" {
		ticket.Name = req.Name
	}
	if req.Price != nil {
		ticket.Price = *req.Price
	}
	if req.Quantity != nil {
		// Shrinking below what was already sold would break the ledger.
		if *req.Quantity < ticket.SoldQuantity {
			helpers.RespondWithError(c, http.StatusConflict, "Quantity cannot drop below tickets already sold.")
			return
		}
		ticket.Quantity = *req.Quantity
		ticket.AvailableQuantity = ticket.Quantity - ticket.SoldQuantity
	}
	if req.MinPerUser != nil {
		ticket.MinPerUser = *req.MinPerUser
	}
	if req.MaxPerUser != nil {
		ticket.MaxPerUser = *req.MaxPerUser
	}
	if req.IsActive != nil {
		ticket.IsActive = *req.IsActive
	}
	if req.SaleStartDate != nil {
		ticket.SaleStartDate = *req.SaleStartDate
	}
	if req.SaleEndDate != nil {
		ticket.SaleEndDate = *req.SaleEndDate
	}

	if err := gormDB.Save(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket updated successfully.",
		"ticket":  ticket,
	})
}

func DeleteTicket(c *gin.Context) {
	ticketID := c.Param("id")

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var ticket models.Ticket
	if err := gormDB.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		return
	}

	if !eventOwnedByCaller(c, gormDB, ticket.EventID, userID, role) {
		return
	}

	if ticket.SoldQuantity > 0 {
		helpers.RespondWithError(c, http.StatusConflict, "Ticket has confirmed sales and cannot be deleted.")
		return
	}

	if err := gormDB.Delete(&ticket).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket deleted successfully.",
	})
}
