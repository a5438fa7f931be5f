package events

import (
	"time"

	"matchday/internal/tickets"
	"matchday/internal/users"

	"github.com/google/uuid"
)

// Location is the venue address plus map coordinates
type Location struct {
	Address   string  `json:"address" gorm:"column:address;not null;size:500"`
	Latitude  float64 `json:"latitude" gorm:"column:latitude;not null"`
	Longitude float64 `json:"longitude" gorm:"column:longitude;not null"`
}

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text;not null"`
	SportType   string    `json:"sport_type" gorm:"not null;size:100;index"`
	Date        time.Time `json:"date" gorm:"not null"`
	Time        string    `json:"time" gorm:"not null;size:20"`
	Location    Location  `json:"location" gorm:"embedded"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`

	// The event owns its tier sequence; only the booking components
	// mutate sold counts, through the tickets ledger.
	Tickets []tickets.TicketTier `json:"tickets" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`

	OrganizerID uuid.UUID   `json:"organizer_id" gorm:"type:uuid;not null;index"`
	Organizer   *users.User `json:"-" gorm:"foreignKey:OrganizerID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// FindTier returns the tier with the given type, or nil
func (e *Event) FindTier(tierType string) *tickets.TicketTier {
	for i := range e.Tickets {
		if e.Tickets[i].Type == tierType {
			return &e.Tickets[i]
		}
	}
	return nil
}

// ToResponse converts an Event (with preloaded tiers/organizer) into
// the API projection
func (e *Event) ToResponse() EventResponse {
	resp := EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		SportType:   e.SportType,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		ImageURL:    e.ImageURL,
		Tickets:     make([]TierResponse, 0, len(e.Tickets)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	for _, tier := range e.Tickets {
		resp.Tickets = append(resp.Tickets, TierResponse{
			Type:              tier.Type,
			Price:             tier.Price,
			Quantity:          tier.Quantity,
			Sold:              tier.Sold,
			AvailableQuantity: tier.AvailableQuantity,
		})
	}

	if e.Organizer != nil {
		resp.Organizer = &OrganizerInfo{
			ID:    e.Organizer.ID.String(),
			Name:  e.Organizer.Name,
			Email: e.Organizer.Email,
		}
	}

	return resp
}
