package bookings

import (
	"time"

	"matchday/internal/events"
	"matchday/internal/users"
)

type TicketLineResponse struct {
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// BookingUserInfo is the denormalized holder projection on a booking
type BookingUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingEventInfo is the denormalized event projection on a booking
type BookingEventInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Time        string          `json:"time"`
	Location    events.Location `json:"location"`
}

func newBookingUserInfo(u *users.User) *BookingUserInfo {
	return &BookingUserInfo{Name: u.Name, Email: u.Email}
}

func newBookingEventInfo(e *events.Event) *BookingEventInfo {
	return &BookingEventInfo{
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
	}
}

type BookingResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	EventID       string               `json:"event_id"`
	User          *BookingUserInfo     `json:"user,omitempty"`
	Event         *BookingEventInfo    `json:"event,omitempty"`
	Tickets       []TicketLineResponse `json:"tickets"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentStatus string               `json:"payment_status"`
	QRCode        string               `json:"qr_code,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// ToResponse converts a Booking into the API projection
func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		EventID:       b.EventID.String(),
		Tickets:       make([]TicketLineResponse, 0, len(b.Tickets)),
		TotalAmount:   b.TotalAmount,
		PaymentStatus: string(b.Status),
		QRCode:        b.QRCode,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	for i := range b.Tickets {
		line := &b.Tickets[i]
		resp.Tickets = append(resp.Tickets, TicketLineResponse{
			Type:      line.TierType,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.LineTotal(),
		})
	}

	return resp
}
