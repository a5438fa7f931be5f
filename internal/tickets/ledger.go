package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrUnknownTierType is returned when the event defines no tier with
	// the requested type
	ErrUnknownTierType = errors.New("ticket type not available for this event")

	// ErrInsufficientInventory is returned when a reservation would push
	// sold past the tier's quantity allotment
	ErrInsufficientInventory = errors.New("not enough tickets")
)

// Ledger is the authoritative sold/available counter store for all
// tiers of an event. Reserve and Adjust are single conditional UPDATE
// statements: the availability check and the increment happen in one
// storage round trip, so concurrent requests cannot both observe the
// same free capacity and oversell.
type Ledger interface {
	GetTiers(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error)
	GetTier(ctx context.Context, eventID uuid.UUID, tierType string) (*TicketTier, error)

	// Reserve increments sold by quantity iff the result stays within
	// the tier allotment. Runs against tx so callers can compose it
	// with record writes in one transaction.
	Reserve(tx *gorm.DB, eventID uuid.UUID, tierType string, quantity int) error

	// Adjust generalizes Reserve to signed deltas, flooring sold at 0
	Adjust(tx *gorm.DB, eventID uuid.UUID, tierType string, delta int) error
}

type ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &ledger{db: db}
}

func (l *ledger) GetTiers(ctx context.Context, eventID uuid.UUID) ([]TicketTier, error) {
	var tiers []TicketTier
	err := l.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&tiers).Error
	return tiers, err
}

func (l *ledger) GetTier(ctx context.Context, eventID uuid.UUID, tierType string) (*TicketTier, error) {
	var tier TicketTier
	err := l.db.WithContext(ctx).
		Where("event_id = ? AND type = ?", eventID, tierType).
		First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownTierType
		}
		return nil, err
	}
	return &tier, nil
}

func (l *ledger) Reserve(tx *gorm.DB, eventID uuid.UUID, tierType string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	return l.Adjust(tx, eventID, tierType, quantity)
}

func (l *ledger) Adjust(tx *gorm.DB, eventID uuid.UUID, tierType string, delta int) error {
	if delta == 0 {
		// Still surface unknown tiers so callers get consistent errors
		var count int64
		if err := tx.Model(&TicketTier{}).
			Where("event_id = ? AND type = ?", eventID, tierType).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUnknownTierType
		}
		return nil
	}

	// The WHERE clause carries the bound check, so the check and the
	// increment are one atomic statement at the storage layer.
	result := tx.Model(&TicketTier{}).
		Where("event_id = ? AND type = ? AND sold + ? <= quantity AND sold + ? >= 0",
			eventID, tierType, delta, delta).
		Updates(map[string]interface{}{
			"sold":               gorm.Expr("sold + ?", delta),
			"available_quantity": gorm.Expr("quantity - (sold + ?)", delta),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to adjust tier %q: %w", tierType, result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish an unknown tier from an out-of-bounds adjustment
		var count int64
		if err := tx.Model(&TicketTier{}).
			Where("event_id = ? AND type = ?", eventID, tierType).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrUnknownTierType
		}
		return ErrInsufficientInventory
	}

	return nil
}
