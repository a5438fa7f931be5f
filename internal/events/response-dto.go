package events

import "time"

type TierResponse struct {
	Type              string  `json:"type"`
	Price             float64 `json:"price"`
	Quantity          int     `json:"quantity"`
	Sold              int     `json:"sold"`
	AvailableQuantity int     `json:"availableQuantity"`
}

type OrganizerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SportType   string         `json:"sport_type"`
	Date        time.Time      `json:"date"`
	Time        string         `json:"time"`
	Location    Location       `json:"location"`
	ImageURL    string         `json:"image_url,omitempty"`
	Tickets     []TierResponse `json:"tickets"`
	Organizer   *OrganizerInfo `json:"organizer,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}
