package bookings

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks the payment state attached to a booking record
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// IsValidPaymentStatus reports whether the given value is a known status
func IsValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type Booking struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	EventID     uuid.UUID     `json:"event_id" gorm:"type:uuid;not null;index"`
	TotalAmount float64       `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	Status      PaymentStatus `json:"payment_status" gorm:"column:payment_status;not null;default:'pending'"`
	QRCode      string        `json:"qr_code" gorm:"type:text"`

	// Line items snapshot the unit price in force when the booking
	// was admitted. Later tier price edits never change past bookings.
	Tickets []BookingTicket `json:"tickets" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

type BookingTicket struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex:idx_booking_tier"`
	TierType  string    `json:"type" gorm:"column:tier_type;not null;uniqueIndex:idx_booking_tier"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice float64   `json:"unit_price" gorm:"not null;check:unit_price >= 0"`
}

// TableName specifies the table name for GORM
func (BookingTicket) TableName() string {
	return "booking_tickets"
}

// LineTotal is quantity times the snapshotted unit price
func (bt *BookingTicket) LineTotal() float64 {
	return float64(bt.Quantity) * bt.UnitPrice
}
