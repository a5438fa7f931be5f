package events

// LocationInput mirrors the JSON-encoded "location" form field on
// event create/update
type LocationInput struct {
	Address   string  `json:"address" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// TierInput mirrors one element of the JSON-encoded "tickets" form field
type TierInput struct {
	Type     string  `json:"type" binding:"required"`
	Price    float64 `json:"price" binding:"required,gte=0"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
}

// CreateEventRequest carries the parsed multipart form for event
// creation. Date arrives as DD/MM/YYYY and is parsed in the controller.
type CreateEventRequest struct {
	Name        string        `form:"name" binding:"required,min=3,max=255"`
	Description string        `form:"description" binding:"required,min=10"`
	SportType   string        `form:"sportType" binding:"required"`
	Date        string        `form:"date" binding:"required"`
	Time        string        `form:"time" binding:"required"`
	Location    LocationInput `form:"-"`
	Tickets     []TierInput   `form:"-"`
}

// UpdateEventRequest carries partial updates; nil fields are untouched.
// Tier definitions are fixed after creation.
type UpdateEventRequest struct {
	Name        *string        `form:"name" binding:"omitempty,min=3,max=255"`
	Description *string        `form:"description" binding:"omitempty,min=10"`
	SportType   *string        `form:"sportType"`
	Date        *string        `form:"date"`
	Time        *string        `form:"time"`
	Location    *LocationInput `form:"-"`
}

// ListEventsQuery captures the supported list filters
type ListEventsQuery struct {
	Page      int      `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int      `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search    string   `form:"search"`
	SportType []string `form:"sportType"`
}
