package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the query paths rely on, beyond what
// AutoMigrate produces from model tags. The tier CHECK and the unique
// (event_id, type) index come from the TicketTier tags.
func MigrateConstraints(db *gorm.DB) error {
	// Booking history queries filter by user and order by recency
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_created
		ON bookings (user_id, created_at DESC);
	`).Error
}
