package bookings

// TicketSelection is one tier line of a booking request
type TicketSelection struct {
	Type     string `json:"type" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	EventID string            `json:"event_id" binding:"required,uuid"`
	Tickets []TicketSelection `json:"tickets" binding:"required,min=1,dive"`
}

// UpdateBookingRequest replaces the booking's ticket selection and/or
// payment status. When Tickets is non-nil the new selection fully
// supersedes the old one; tier counters are reconciled by delta.
type UpdateBookingRequest struct {
	Tickets       []TicketSelection `json:"tickets" binding:"omitempty,min=1,dive"`
	PaymentStatus *string           `json:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	TotalAmount   *float64          `json:"total_amount" binding:"omitempty,gte=0"`
}

type ListBookingsQuery struct {
	Page          int     `form:"page,default=1" binding:"omitempty,min=1"`
	Limit         int     `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search        string  `form:"search"`
	PaymentStatus string  `form:"payment_status" binding:"omitempty,oneof=pending completed failed"`
	EventID       string  `form:"event_id" binding:"omitempty,uuid"`
	MinAmount     float64 `form:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount     float64 `form:"max_amount" binding:"omitempty,gte=0"`
}
