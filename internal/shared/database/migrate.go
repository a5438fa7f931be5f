package database

import (
	"matchday/internal/bookings"
	"matchday/internal/events"
	"matchday/internal/tickets"
	"matchday/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults depend on this extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&tickets.TicketTier{},
		&bookings.Booking{},
		&bookings.BookingTicket{},
	)
}
