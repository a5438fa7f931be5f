package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func forUpdateClause() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	CreateTx(tx *gorm.DB, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDTx(tx *gorm.DB, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, userID uuid.UUID, query ListBookingsQuery) ([]Booking, int64, error)
	SaveTx(tx *gorm.DB, booking *Booking) error
	ReplaceTicketsTx(tx *gorm.DB, bookingID uuid.UUID, lines []BookingTicket) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) CreateTx(tx *gorm.DB, booking *Booking) error {
	if err := tx.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.getByID(r.db.WithContext(ctx), id)
}

// GetByIDTx reads the booking inside an open transaction with a row
// lock, so concurrent updates to the same booking serialize.
func (r *repository) GetByIDTx(tx *gorm.DB, id uuid.UUID) (*Booking, error) {
	return r.getByID(tx.Clauses(forUpdateClause()), id)
}

func (r *repository) getByID(db *gorm.DB, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := db.Preload("Tickets").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, query ListBookingsQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64

	db := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	if query.Search != "" {
		// Free-text match over status and amount, mirroring the event
		// list's search over its text columns
		pattern := "%" + query.Search + "%"
		db = db.Where("payment_status ILIKE ? OR total_amount::text LIKE ?", pattern, pattern)
	}
	if query.PaymentStatus != "" {
		db = db.Where("payment_status = ?", query.PaymentStatus)
	}
	if query.EventID != "" {
		db = db.Where("event_id = ?", query.EventID)
	}
	if query.MinAmount > 0 {
		db = db.Where("total_amount >= ?", query.MinAmount)
	}
	if query.MaxAmount > 0 {
		db = db.Where("total_amount <= ?", query.MaxAmount)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := db.
		Preload("Tickets").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *repository) SaveTx(tx *gorm.DB, booking *Booking) error {
	err := tx.Model(&Booking{}).
		Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"total_amount":   booking.TotalAmount,
			"payment_status": booking.Status,
			"qr_code":        booking.QRCode,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

// ReplaceTicketsTx swaps the booking's line items for a new set
func (r *repository) ReplaceTicketsTx(tx *gorm.DB, bookingID uuid.UUID, lines []BookingTicket) error {
	if err := tx.Where("booking_id = ?", bookingID).Delete(&BookingTicket{}).Error; err != nil {
		return fmt.Errorf("failed to clear booking tickets: %w", err)
	}
	for i := range lines {
		lines[i].BookingID = bookingID
	}
	if len(lines) > 0 {
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to insert booking tickets: %w", err)
		}
	}
	return nil
}

func (r *repository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	result := tx.Delete(&Booking{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
