package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"matchday/internal/events"
	"matchday/internal/shared/config"
	"matchday/internal/shared/database"
	"matchday/internal/tickets"
	"matchday/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Matchday Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_tickets",
		"bookings",
		"ticket_tiers",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedEvents(userIDs["organizer"]); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Fresh cache so stale projections never survive a reseed
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 organizer and 2 regular users
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key   string
		name  string
		email string
		role  users.Role
	}{
		{"organizer", "League Office", "organizer@matchday.dev", users.RoleOrganizer},
		{"fan1", "Alex Romero", "alex@matchday.dev", users.RoleUser},
		{"fan2", "Priya Nair", "priya@matchday.dev", users.RoleUser},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Name:      userData.name,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates sample events with ticket tiers
func (s *Seeder) SeedEvents(organizerID uuid.UUID) error {
	fmt.Println("  🏟️ Seeding events...")

	eventsData := []struct {
		name        string
		description string
		sportType   string
		daysAhead   int
		startTime   string
		address     string
		lat, lng    float64
		tiers       []tickets.TicketTier
	}{
		{
			name:        "City Derby Final",
			description: "The season-closing derby between the city's two biggest football clubs.",
			sportType:   "football",
			daysAhead:   14,
			startTime:   "19:30",
			address:     "National Stadium, 1 Stadium Way",
			lat:         51.5560,
			lng:         -0.2795,
			tiers: []tickets.TicketTier{
				{Type: "general", Price: 45, Quantity: 500, AvailableQuantity: 500},
				{Type: "premium", Price: 120, Quantity: 150, AvailableQuantity: 150},
				{Type: "vip", Price: 300, Quantity: 40, AvailableQuantity: 40},
			},
		},
		{
			name:        "Summer Slam Basketball Night",
			description: "Exhibition night featuring the league all-stars and halftime shootout.",
			sportType:   "basketball",
			daysAhead:   30,
			startTime:   "20:00",
			address:     "Riverside Arena, 42 Harbor Rd",
			lat:         40.7505,
			lng:         -73.9934,
			tiers: []tickets.TicketTier{
				{Type: "general", Price: 35, Quantity: 800, AvailableQuantity: 800},
				{Type: "courtside", Price: 250, Quantity: 24, AvailableQuantity: 24},
			},
		},
		{
			name:        "Grand Prix Qualifiers",
			description: "Saturday qualifying session with paddock access for premium holders.",
			sportType:   "motorsport",
			daysAhead:   45,
			startTime:   "13:00",
			address:     "Speedway Circuit, Route 9",
			lat:         52.0786,
			lng:         -1.0169,
			tiers: []tickets.TicketTier{
				{Type: "grandstand", Price: 90, Quantity: 1200, AvailableQuantity: 1200},
				{Type: "paddock", Price: 400, Quantity: 60, AvailableQuantity: 60},
			},
		},
	}

	for _, eventData := range eventsData {
		event := events.Event{
			ID:          uuid.New(),
			Name:        eventData.name,
			Description: eventData.description,
			SportType:   eventData.sportType,
			Date:        time.Now().AddDate(0, 0, eventData.daysAhead).Truncate(24 * time.Hour),
			Time:        eventData.startTime,
			Location: events.Location{
				Address:   eventData.address,
				Latitude:  eventData.lat,
				Longitude: eventData.lng,
			},
			Tickets:     eventData.tiers,
			OrganizerID: organizerID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event %s: %w", event.Name, err)
		}

		fmt.Printf("    ✅ Created event: %s (%d tiers)\n", event.Name, len(event.Tickets))
	}

	return nil
}
