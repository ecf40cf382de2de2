package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
	"github.com/eventhive/eventhive/internal/services"
)

type PaymentOrderRequest struct {
	TicketID uuid.UUID `json:"ticket_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

func CreatePaymentOrder(c *gin.Context) {
	var req PaymentOrderRequest
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

	order, err := services.CreatePaymentOrder(gormDB, userID, req.TicketID, req.Quantity)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Payment order created. Complete payment within 15 minutes.",
		"order_id":   order.ID,
		"order_ref":  order.OrderRef,
		"amount":     order.TotalAmount,
		"expires_at": order.ExpiresAt,
	})
}

type VerifyPaymentRequest struct {
	ExternalPaymentID string `json:"external_payment_id" binding:"required"`
}

func VerifyPayment(c *gin.Context) {
	orderID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	var req VerifyPaymentRequest
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

	booking, err := services.VerifyPayment(gormDB, userID, orderID, req.ExternalPaymentID)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Payment verified. Booking confirmed.",
		"booking_id": booking.ID,
		"quantity":   booking.Quantity,
		"amount":     booking.TotalAmount,
	})
}

type FailPaymentRequest struct {
	ExternalPaymentID string `json:"external_payment_id"`
}

func FailPayment(c *gin.Context) {
	orderID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
		return
	}

	var req FailPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	if err := services.HandlePaymentFailure(gormDB, userID, orderID, req.ExternalPaymentID); err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment marked as failed."})
}

func CancelPaymentOrder(c *gin.Context) {
	orderID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid order ID.")
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

	if err := services.CancelPaymentOrder(gormDB, userID, orderID); err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment order cancelled."})
}

func ListMyPaymentOrders(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	query := gormDB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PaymentOrder
	if err := query.Preload("Event").Preload("Ticket").Order("created_at DESC").Find(&orders).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving payment orders.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
