package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

func generateQRCodeData(booking *models.Booking) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := generateSignature(booking.ID, booking.PaymentOrderID, booking.UserID, secretKey)
	return fmt.Sprintf("booking:%s;ticket:%s;event:%s;signature:%s",
		booking.ID.String(),
		booking.TicketID.String(),
		booking.EventID.String(),
		signature,
	)
}

func generateSignature(bookingID, orderID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", bookingID.String(), orderID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func extractBookingIDFromQRData(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "booking:") || !strings.HasPrefix(parts[3], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "booking:"))
}

func validateQRCodeSignature(booking *models.Booking, qrData string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}

	secretKey := os.Getenv("JWT_SECRET")
	signature := strings.TrimPrefix(parts[3], "signature:")
	expectedSignature := generateSignature(booking.ID, booking.PaymentOrderID, booking.UserID, secretKey)
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// GenerateBookingQR renders a signed entry QR for a confirmed booking.
func GenerateBookingQR(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	bookingID, err := helpers.UUIDParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID.")
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := gormDB.Preload("Event").Preload("Ticket").First(&booking, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if booking.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to generate a QR code for this booking.")
		return
	}

	if booking.CheckedInAt != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking already checked in.")
		return
	}

	qrData := generateQRCodeData(&booking)

	qrImage, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ValidateTicket checks a scanned QR at the door and marks the booking
// checked in. Only the event's organizer may validate.
func ValidateTicket(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var validationRequest struct {
		QRData string `json:"qr_data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&validationRequest); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	bookingID, err := extractBookingIDFromQRData(validationRequest.QRData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR code format.")
		return
	}

	var booking models.Booking
	if err := gormDB.Preload("Event").Preload("Ticket").First(&booking, "id = ?", bookingID).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if !validateQRCodeSignature(&booking, validationRequest.QRData) {
		helpers.RespondWithError(c, http.StatusForbidden, "Invalid QR code signature.")
		return
	}

	if booking.Event.OrganizerID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to validate this ticket.")
		return
	}

	if booking.CheckedInAt != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Booking already checked in.")
		return
	}

	now := time.Now()
	if err := gormDB.Model(&booking).Update("checked_in_at", now).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to validate ticket.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket validated successfully.",
		"ticket": gin.H{
			"event_title": booking.Event.Title,
			"ticket_name": booking.Ticket.Name,
			"quantity":    booking.Quantity,
		},
	})
}

// GetMyBookings returns the caller's ticket bookings and court bookings.
func GetMyBookings(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := gormDB.Preload("Event").Preload("Ticket").Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving bookings.")
		return
	}

	var courtBookings []models.CourtBooking
	if err := gormDB.Preload("TimeSlot.Court.Facility").Where("user_id = ?", userID).Order("created_at DESC").Find(&courtBookings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving court bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_bookings": bookings,
		"court_bookings": courtBookings,
	})
}
