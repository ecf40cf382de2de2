package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/services"
)

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// CancelCourtBooking applies the player cancellation rule: CONFIRMED
// bookings only, and no later than 30 minutes before the slot starts.
func CancelCourtBooking(c *gin.Context) {
	bookingID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	userID, role, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	booking, err := services.CancelCourtBooking(gormDB, userID, role, bookingID, req.Reason)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled.",
		"booking": booking,
	})
}

func CompleteCourtBooking(c *gin.Context) {
	bookingID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
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

	booking, err := services.CompleteCourtBooking(gormDB, userID, role, bookingID)
	if err != nil {
		helpers.RespondWithError(c, services.HTTPStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking marked as completed.",
		"booking": booking,
	})
}
