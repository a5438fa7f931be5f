package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"matchday/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn  func(ctx context.Context, event *Event) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*Event, error)
	listFn    func(ctx context.Context, query ListEventsQuery) ([]Event, int64, error)
	updateFn  func(ctx context.Context, event *Event) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRepo) Create(ctx context.Context, event *Event) error { return m.createFn(ctx, event) }
func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, query ListEventsQuery) ([]Event, int64, error) {
	return m.listFn(ctx, query)
}
func (m *mockRepo) Update(ctx context.Context, event *Event) error { return m.updateFn(ctx, event) }
func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error { return m.deleteFn(ctx, id) }

// missCache always misses so fetchers run against the repository
type missCache struct{}

var _ cache.Service = missCache{}

func (missCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (missCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (missCache) Delete(ctx context.Context, key string) error            { return nil }
func (missCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (missCache) Exists(ctx context.Context, key string) bool             { return false }
func (missCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
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
func (missCache) Ping(ctx context.Context) error { return nil }

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:        "City Derby Final",
		Description: "The season-closing derby between two rival clubs.",
		SportType:   "football",
		Date:        "25/12/2026",
		Time:        "19:30",
		Location: LocationInput{
			Address:   "National Stadium, 1 Stadium Way",
			Latitude:  51.556,
			Longitude: -0.2795,
		},
		Tickets: []TierInput{
			{Type: "general", Price: 45, Quantity: 500},
			{Type: "vip", Price: 300, Quantity: 40},
		},
	}
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		want    time.Time
	}{
		{"valid date", "25/12/2026", false, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"iso format rejected", "2026-12-25", true, time.Time{}},
		{"month day swapped out of range", "13/13/2026", true, time.Time{}},
		{"empty", "", true, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateEvent(t *testing.T) {
	organizerID := uuid.New()

	t.Run("valid request initializes tier counters", func(t *testing.T) {
		var stored *Event
		repo := &mockRepo{
			createFn: func(ctx context.Context, event *Event) error {
				event.ID = uuid.New()
				stored = event
				return nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
				return stored, nil
			},
		}
		svc := NewService(repo, missCache{})

		resp, err := svc.CreateEvent(context.Background(), validCreateRequest(), "", organizerID)
		require.NoError(t, err)

		assert.Equal(t, "City Derby Final", resp.Name)
		require.Len(t, resp.Tickets, 2)
		for _, tier := range resp.Tickets {
			assert.Equal(t, 0, tier.Sold)
			assert.Equal(t, tier.Quantity, tier.AvailableQuantity)
		}
		assert.Equal(t, organizerID, stored.OrganizerID)
	})

	t.Run("invalid date", func(t *testing.T) {
		req := validCreateRequest()
		req.Date = "2026-12-25"
		svc := NewService(&mockRepo{}, missCache{})

		_, err := svc.CreateEvent(context.Background(), req, "", organizerID)
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("no tiers", func(t *testing.T) {
		req := validCreateRequest()
		req.Tickets = nil
		svc := NewService(&mockRepo{}, missCache{})

		_, err := svc.CreateEvent(context.Background(), req, "", organizerID)
		require.ErrorIs(t, err, ErrNoTiers)
	})

	t.Run("duplicate tier type", func(t *testing.T) {
		req := validCreateRequest()
		req.Tickets = append(req.Tickets, TierInput{Type: "general", Price: 60, Quantity: 10})
		svc := NewService(&mockRepo{}, missCache{})

		_, err := svc.CreateEvent(context.Background(), req, "", organizerID)
		require.ErrorIs(t, err, ErrDuplicateTier)
	})
}

func TestUpdateEvent_Ownership(t *testing.T) {
	organizerID := uuid.New()
	eventID := uuid.New()

	stored := &Event{
		ID:          eventID,
		Name:        "City Derby Final",
		OrganizerID: organizerID,
		Date:        time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
	}

	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			if id != eventID {
				return nil, ErrEventNotFound
			}
			copied := *stored
			return &copied, nil
		},
		updateFn: func(ctx context.Context, event *Event) error {
			stored = event
			return nil
		},
	}
	svc := NewService(repo, missCache{})

	newName := "City Derby Final (Rescheduled)"

	t.Run("owner can update", func(t *testing.T) {
		resp, err := svc.UpdateEvent(context.Background(), eventID, UpdateEventRequest{Name: &newName}, "", organizerID)
		require.NoError(t, err)
		assert.Equal(t, newName, resp.Name)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, err := svc.UpdateEvent(context.Background(), eventID, UpdateEventRequest{Name: &newName}, "", uuid.New())
		require.ErrorIs(t, err, ErrNotOrganizer)
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := svc.UpdateEvent(context.Background(), uuid.New(), UpdateEventRequest{Name: &newName}, "", organizerID)
		require.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestDeleteEvent_Ownership(t *testing.T) {
	organizerID := uuid.New()
	eventID := uuid.New()
	deleted := false

	repo := &mockRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*Event, error) {
			if id != eventID {
				return nil, ErrEventNotFound
			}
			return &Event{ID: eventID, OrganizerID: organizerID}, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, missCache{})

	err := svc.DeleteEvent(context.Background(), eventID, uuid.New())
	require.ErrorIs(t, err, ErrNotOrganizer)
	assert.False(t, deleted)

	err = svc.DeleteEvent(context.Background(), eventID, organizerID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestListEvents_PassesFiltersThrough(t *testing.T) {
	var captured ListEventsQuery
	repo := &mockRepo{
		listFn: func(ctx context.Context, query ListEventsQuery) ([]Event, int64, error) {
			captured = query
			return []Event{
				{ID: uuid.New(), Name: "City Derby Final", SportType: "football"},
			}, 1, nil
		},
	}
	svc := NewService(repo, missCache{})

	query := ListEventsQuery{
		Page:      2,
		Limit:     5,
		Search:    "derby",
		SportType: []string{"football", "rugby"},
	}
	list, err := svc.ListEvents(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, query, captured)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 2, list.Page)
	require.Len(t, list.Events, 1)
}
