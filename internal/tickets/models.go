package tickets

import (
	"time"

	"github.com/google/uuid"
)

// TicketTier is one priced category of tickets for an event. The
// quantity allotment is fixed at creation; sold and available_quantity
// are mutated exclusively through the Ledger operations below.
type TicketTier struct {
	ID                uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	EventID           uuid.UUID `json:"event_id" gorm:"type:uuid;index;not null;uniqueIndex:idx_event_tier_type"`
	Type              string    `json:"type" gorm:"not null;size:100;uniqueIndex:idx_event_tier_type"`
	Price             float64   `json:"price" gorm:"not null;check:price >= 0"`
	Quantity          int       `json:"quantity" gorm:"not null;check:quantity >= 0"`
	Sold              int       `json:"sold" gorm:"not null;default:0;check:sold >= 0 AND sold <= quantity"`
	AvailableQuantity int       `json:"available_quantity" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (TicketTier) TableName() string {
	return "ticket_tiers"
}

// Available returns the remaining reservable units
func (t *TicketTier) Available() int {
	return t.Quantity - t.Sold
}
