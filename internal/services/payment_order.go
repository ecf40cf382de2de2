package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

// CreatePaymentOrder opens a 15-minute payment window for a ticket class.
// Inventory is not held here; VerifyPayment re-checks availability with an
// atomic conditional decrement, so concurrent PENDING orders cannot
// oversell at confirmation time.
func CreatePaymentOrder(db *gorm.DB, userID, ticketID uuid.UUID, quantity int) (*models.PaymentOrder, error) {
	var ticket models.Ticket
	if err := db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ticket", ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	if !ticket.IsActive {
		return nil, fmt.Errorf("%w: ticket is not active", ErrUnavailable)
	}
	if !ticket.OnSale(now) {
		return nil, fmt.Errorf("%w: ticket is not on sale", ErrUnavailable)
	}
	if quantity < ticket.MinPerUser || quantity > ticket.MaxPerUser {
		return nil, fmt.Errorf("%w: quantity must be between %d and %d", ErrValidation, ticket.MinPerUser, ticket.MaxPerUser)
	}
	if ticket.AvailableQuantity < quantity {
		return nil, fmt.Errorf("%w: only %d tickets left", ErrUnavailable, ticket.AvailableQuantity)
	}

	// MaxPerUser caps the buyer's total across orders, not just this one.
	var purchased int64
	if err := db.Model(&models.Booking{}).
		Where("ticket_id = ? AND user_id = ? AND status = ?", ticket.ID, userID, models.BookingConfirmed).
		Select("COALESCE(SUM(quantity), 0)").Scan(&purchased).Error; err != nil {
		return nil, err
	}
	if int(purchased)+quantity > ticket.MaxPerUser {
		return nil, fmt.Errorf("%w: you can buy at most %d tickets of this type", ErrValidation, ticket.MaxPerUser)
	}

	order := models.PaymentOrder{
		OrderRef:    helpers.NewOrderRef(),
		Quantity:    quantity,
		TotalAmount: ticket.Price * quantity,
		Status:      models.OrderPending,
		ExpiresAt:   now.Add(models.PaymentOrderTTL),
		EventID:     ticket.EventID,
		TicketID:    ticket.ID,
		UserID:      userID,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPayment converts a PENDING order into a confirmed booking. All
// reads and writes run in one transaction; the status flip and the
// inventory decrement are conditional updates, so a racing second
// verification (or an expired sweep) loses cleanly with zero writes.
func VerifyPayment(db *gorm.DB, userID, orderID uuid.UUID, externalPaymentID string) (*models.Booking, error) {
	var booking *models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment order", ErrNotFound)
			}
			return err
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: not your payment order", ErrForbidden)
		}
		if order.Status != models.OrderPending {
			return fmt.Errorf("%w: order is %s", ErrConflict, order.Status)
		}
		now := time.Now()
		if !now.Before(order.ExpiresAt) {
			return fmt.Errorf("%w: payment window has expired", ErrConflict)
		}

		// Exactly-once exit from PENDING.
		res := tx.Model(&models.PaymentOrder{}).
			Where("id = ? AND status = ?", order.ID, models.OrderPending).
			Update("status", models.OrderSuccessful)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order already resolved", ErrConflict)
		}

		res = tx.Model(&models.Ticket{}).
			Where("id = ? AND is_active = ? AND available_quantity >= ?", order.TicketID, true, order.Quantity).
			Updates(map[string]interface{}{
				"sold_quantity":      gorm.Expr("sold_quantity + ?", order.Quantity),
				"available_quantity": gorm.Expr("available_quantity - ?", order.Quantity),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: not enough tickets left", ErrUnavailable)
		}

		payment := models.Payment{
			Amount:            order.TotalAmount,
			Status:            models.PaymentSuccessful,
			Verified:          true,
			ExternalPaymentID: externalPaymentID,
			PaidAt:            &now,
			PaymentOrderID:    order.ID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		booking = &models.Booking{
			Quantity:       order.Quantity,
			TotalAmount:    order.TotalAmount,
			Status:         models.BookingConfirmed,
			PaymentOrderID: order.ID,
			EventID:        order.EventID,
			TicketID:       order.TicketID,
			UserID:         order.UserID,
		}
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Event{}).
			Where("id = ?", order.EventID).
			Update("current_attendees", gorm.Expr("current_attendees + ?", order.Quantity)).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// HandlePaymentFailure marks a PENDING order FAILED and records the failed
// payment. Calling it again on an already-FAILED order is a no-op.
func HandlePaymentFailure(db *gorm.DB, userID, orderID uuid.UUID, externalPaymentID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: payment order", ErrNotFound)
			}
			return err
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: not your payment order", ErrForbidden)
		}
		if order.Status == models.OrderFailed {
			return nil
		}

		res := tx.Model(&models.PaymentOrder{}).
			Where("id = ? AND status = ?", order.ID, models.OrderPending).
			Update("status", models.OrderFailed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order is %s", ErrConflict, order.Status)
		}

		payment := models.Payment{
			Amount:            order.TotalAmount,
			Status:            models.PaymentFailed,
			ExternalPaymentID: externalPaymentID,
			PaymentOrderID:    order.ID,
		}
		return tx.Create(&payment).Error
	})
}

// CancelPaymentOrder lets the owner abandon a still-PENDING order.
func CancelPaymentOrder(db *gorm.DB, userID, orderID uuid.UUID) error {
	var order models.PaymentOrder
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: payment order", ErrNotFound)
		}
		return err
	}
	if order.UserID != userID {
		return fmt.Errorf("%w: not your payment order", ErrForbidden)
	}

	res := db.Model(&models.PaymentOrder{}).
		Where("id = ? AND status = ?", order.ID, models.OrderPending).
		Update("status", models.OrderCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: only pending orders can be cancelled", ErrConflict)
	}
	return nil
}

// CleanupExpiredReservations cancels every PENDING order whose window has
// closed. Nothing else moves: inventory was never held at creation.
func CleanupExpiredReservations(db *gorm.DB) (int64, error) {
	res := db.Model(&models.PaymentOrder{}).
		Where("status = ? AND expires_at < ?", models.OrderPending, time.Now()).
		Update("status", models.OrderCancelled)
	return res.RowsAffected, res.Error
}
