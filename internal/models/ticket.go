package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is one sellable class of admission for an event. The counters
// satisfy AvailableQuantity = Quantity - SoldQuantity at all times;
// SoldQuantity moves only through confirmed payment verifications.
type Ticket struct {
	gorm.Model
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	Name              string    `gorm:"not null"`
	Price             int       `gorm:"not null"`
	Quantity          int       `gorm:"not null"`
	SoldQuantity      int       `gorm:"not null;default:0"`
	AvailableQuantity int       `gorm:"not null"`
	MinPerUser        int       `gorm:"not null;default:1"`
	MaxPerUser        int       `gorm:"not null;default:10"`
	IsActive          bool      `gorm:"not null;default:true"`
	SaleStartDate     time.Time
	SaleEndDate       time.Time
	EventID           uuid.UUID
	Event             Event
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}

// OnSale reports whether the sale window is open at the given instant. A
// zero SaleStartDate/SaleEndDate leaves that side of the window unbounded.
func (ticket *Ticket) OnSale(now time.Time) bool {
	if !ticket.SaleStartDate.IsZero() && now.Before(ticket.SaleStartDate) {
		return false
	}
	if !ticket.SaleEndDate.IsZero() && now.After(ticket.SaleEndDate) {
		return false
	}
	return true
}
