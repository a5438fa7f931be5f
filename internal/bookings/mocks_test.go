package bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"matchday/internal/events"
	"matchday/internal/stream"
	"matchday/internal/tickets"
	"matchday/internal/users"
	"matchday/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memoryTier mirrors one ticket_tiers row
type memoryTier struct {
	price    float64
	quantity int
	sold     int
}

// bookingHarness is an in-memory stand-in for the Postgres-backed
// repository and ledger. Adjust applies the same guarded bound check
// the SQL statement enforces, under a mutex, and Transaction restores
// both counter and record state when the callback fails, matching
// rollback behavior.
type bookingHarness struct {
	txMu    sync.Mutex
	stateMu sync.Mutex

	eventID  uuid.UUID
	tiers    map[string]*memoryTier
	bookings map[uuid.UUID]*Booking
}

func newBookingHarness(eventID uuid.UUID) *bookingHarness {
	return &bookingHarness{
		eventID:  eventID,
		tiers:    make(map[string]*memoryTier),
		bookings: make(map[uuid.UUID]*Booking),
	}
}

func (h *bookingHarness) addTier(tierType string, price float64, quantity int) {
	h.tiers[tierType] = &memoryTier{price: price, quantity: quantity}
}

func (h *bookingHarness) sold(tierType string) int {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	return h.tiers[tierType].sold
}

func (h *bookingHarness) bookingCount() int {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	return len(h.bookings)
}

// event builds the events fixture matching the harness tiers
func (h *bookingHarness) event(name string) *events.Event {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	tierList := make([]tickets.TicketTier, 0, len(h.tiers))
	for tierType, t := range h.tiers {
		tierList = append(tierList, tickets.TicketTier{
			EventID:           h.eventID,
			Type:              tierType,
			Price:             t.price,
			Quantity:          t.quantity,
			Sold:              t.sold,
			AvailableQuantity: t.quantity - t.sold,
		})
	}
	return &events.Event{
		ID:      h.eventID,
		Name:    name,
		Tickets: tierList,
	}
}

// --- Repository ---

func (h *bookingHarness) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	h.txMu.Lock()
	defer h.txMu.Unlock()

	h.stateMu.Lock()
	tierSnapshot := make(map[string]*memoryTier, len(h.tiers))
	for k, v := range h.tiers {
		copied := *v
		tierSnapshot[k] = &copied
	}
	bookingSnapshot := make(map[uuid.UUID]*Booking, len(h.bookings))
	for k, v := range h.bookings {
		copied := *v
		copied.Tickets = append([]BookingTicket(nil), v.Tickets...)
		bookingSnapshot[k] = &copied
	}
	h.stateMu.Unlock()

	if err := fn(nil); err != nil {
		h.stateMu.Lock()
		h.tiers = tierSnapshot
		h.bookings = bookingSnapshot
		h.stateMu.Unlock()
		return err
	}
	return nil
}

func (h *bookingHarness) CreateTx(tx *gorm.DB, booking *Booking) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	copied := *booking
	copied.Tickets = append([]BookingTicket(nil), booking.Tickets...)
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = time.Now()
	h.bookings[booking.ID] = &copied
	return nil
}

func (h *bookingHarness) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return h.getByID(id)
}

func (h *bookingHarness) GetByIDTx(tx *gorm.DB, id uuid.UUID) (*Booking, error) {
	return h.getByID(id)
}

func (h *bookingHarness) getByID(id uuid.UUID) (*Booking, error) {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	stored, ok := h.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *stored
	copied.Tickets = append([]BookingTicket(nil), stored.Tickets...)
	return &copied, nil
}

func (h *bookingHarness) List(ctx context.Context, userID uuid.UUID, query ListBookingsQuery) ([]Booking, int64, error) {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	var matched []Booking
	for _, b := range h.bookings {
		if b.UserID != userID {
			continue
		}
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			amount := strconv.FormatFloat(b.TotalAmount, 'f', -1, 64)
			if !strings.Contains(strings.ToLower(string(b.Status)), needle) &&
				!strings.Contains(amount, needle) {
				continue
			}
		}
		if query.PaymentStatus != "" && string(b.Status) != query.PaymentStatus {
			continue
		}
		if query.MinAmount > 0 && b.TotalAmount < query.MinAmount {
			continue
		}
		if query.MaxAmount > 0 && b.TotalAmount > query.MaxAmount {
			continue
		}
		copied := *b
		copied.Tickets = append([]BookingTicket(nil), b.Tickets...)
		matched = append(matched, copied)
	}
	return matched, int64(len(matched)), nil
}

func (h *bookingHarness) SaveTx(tx *gorm.DB, booking *Booking) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	stored, ok := h.bookings[booking.ID]
	if !ok {
		return ErrBookingNotFound
	}
	stored.TotalAmount = booking.TotalAmount
	stored.Status = booking.Status
	stored.QRCode = booking.QRCode
	stored.UpdatedAt = time.Now()
	return nil
}

func (h *bookingHarness) ReplaceTicketsTx(tx *gorm.DB, bookingID uuid.UUID, lines []BookingTicket) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	stored, ok := h.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	stored.Tickets = append([]BookingTicket(nil), lines...)
	return nil
}

func (h *bookingHarness) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	if _, ok := h.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(h.bookings, id)
	return nil
}

// --- tickets.Ledger ---

func (h *bookingHarness) GetTiers(ctx context.Context, eventID uuid.UUID) ([]tickets.TicketTier, error) {
	return h.event("").Tickets, nil
}

func (h *bookingHarness) GetTier(ctx context.Context, eventID uuid.UUID, tierType string) (*tickets.TicketTier, error) {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	t, ok := h.tiers[tierType]
	if !ok {
		return nil, tickets.ErrUnknownTierType
	}
	return &tickets.TicketTier{
		EventID:           eventID,
		Type:              tierType,
		Price:             t.price,
		Quantity:          t.quantity,
		Sold:              t.sold,
		AvailableQuantity: t.quantity - t.sold,
	}, nil
}

func (h *bookingHarness) Reserve(tx *gorm.DB, eventID uuid.UUID, tierType string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	return h.Adjust(tx, eventID, tierType, quantity)
}

func (h *bookingHarness) Adjust(tx *gorm.DB, eventID uuid.UUID, tierType string, delta int) error {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()

	if eventID != h.eventID {
		return tickets.ErrUnknownTierType
	}
	t, ok := h.tiers[tierType]
	if !ok {
		return tickets.ErrUnknownTierType
	}
	if delta == 0 {
		return nil
	}
	next := t.sold + delta
	if next < 0 || next > t.quantity {
		return tickets.ErrInsufficientInventory
	}
	t.sold = next
	return nil
}

// --- collaborator mocks ---

type mockEventRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *events.Event) error { return nil }
func (m *mockEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockEventRepo) List(ctx context.Context, query events.ListEventsQuery) ([]events.Event, int64, error) {
	return nil, 0, nil
}
func (m *mockEventRepo) Update(ctx context.Context, event *events.Event) error { return nil }
func (m *mockEventRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

type mockUserRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*users.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *users.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return nil, users.ErrUserNotFound
}
func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (m *mockUserRepo) List(ctx context.Context, query users.ListUsersQuery) ([]users.User, int64, error) {
	return nil, 0, nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *users.User) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

type recordedEvent struct {
	eventType stream.BookingEventType
	bookingID uuid.UUID
}

type mockPublisher struct {
	mu       sync.Mutex
	recorded []recordedEvent
}

func (m *mockPublisher) Publish(ctx context.Context, event stream.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, recordedEvent{eventType: event.Type, bookingID: event.BookingID})
	return nil
}
func (m *mockPublisher) HealthCheck(ctx context.Context) error { return nil }
func (m *mockPublisher) Close() error                          { return nil }

func (m *mockPublisher) events() []recordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedEvent(nil), m.recorded...)
}

// passthroughCache satisfies cache.Service without a Redis backend.
// GetOrSet always misses and runs the fetcher.
type passthroughCache struct{}

var _ cache.Service = passthroughCache{}

func (passthroughCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (passthroughCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (passthroughCache) Delete(ctx context.Context, key string) error          { return nil }
func (passthroughCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (passthroughCache) Exists(ctx context.Context, key string) bool           { return false }
func (passthroughCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	value, err := fetcher()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
func (passthroughCache) Ping(ctx context.Context) error { return nil }
