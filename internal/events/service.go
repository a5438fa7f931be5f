package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matchday/internal/shared/constants"
	"matchday/internal/tickets"
	"matchday/pkg/cache"
	"matchday/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate   = errors.New("date must be in DD/MM/YYYY format")
	ErrNotOrganizer  = errors.New("only the organizer can modify this event")
	ErrNoTiers       = errors.New("event must define at least one ticket tier")
	ErrDuplicateTier = errors.New("duplicate ticket tier type")
)

const dateLayout = "02/01/2006"

// ParseEventDate parses the DD/MM/YYYY wire format used on event
// create and update.
func ParseEventDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest, imageURL string, organizerID uuid.UUID) (*EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	ListEvents(ctx context.Context, query ListEventsQuery) (*EventListResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest, imageURL string, callerID uuid.UUID) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest, imageURL string, organizerID uuid.UUID) (*EventResponse, error) {
	date, err := ParseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	if len(req.Tickets) == 0 {
		return nil, ErrNoTiers
	}
	seen := make(map[string]bool, len(req.Tickets))
	tiers := make([]tickets.TicketTier, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		if seen[t.Type] {
			return nil, ErrDuplicateTier
		}
		seen[t.Type] = true
		tiers = append(tiers, tickets.TicketTier{
			Type:              t.Type,
			Price:             t.Price,
			Quantity:          t.Quantity,
			Sold:              0,
			AvailableQuantity: t.Quantity,
		})
	}

	event := &Event{
		Name:        req.Name,
		Description: req.Description,
		SportType:   req.SportType,
		Date:        date,
		Time:        req.Time,
		Location: Location{
			Address:   req.Location.Address,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		ImageURL:    imageURL,
		Tickets:     tiers,
		OrganizerID: organizerID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	created, err := s.repo.GetByID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	resp := created.ToResponse()
	return &resp, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())

	var resp EventResponse
	err := s.cache.GetOrSet(ctx, cacheKey, constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
		event, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return event.ToResponse(), nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) ListEvents(ctx context.Context, query ListEventsQuery) (*EventListResponse, error) {
	// Multi-value sport filters fan out too widely to cache usefully
	if len(query.SportType) > 0 {
		return s.listFromDB(ctx, query)
	}

	cacheKey := constants.BuildEventListKey(query.Page, query.Limit, query.Search)

	var resp EventListResponse
	err := s.cache.GetOrSet(ctx, cacheKey, constants.TTL_EVENT_LIST, func() (interface{}, error) {
		list, err := s.listFromDB(ctx, query)
		if err != nil {
			return nil, err
		}
		return list, nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) listFromDB(ctx context.Context, query ListEventsQuery) (*EventListResponse, error) {
	eventList, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(eventList))
	for i := range eventList {
		responses = append(responses, eventList[i].ToResponse())
	}

	return &EventListResponse{
		Events: responses,
		Total:  total,
		Page:   query.Page,
		Limit:  query.Limit,
	}, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest, imageURL string, callerID uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != callerID {
		return nil, ErrNotOrganizer
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.SportType != nil {
		event.SportType = *req.SportType
	}
	if req.Date != nil {
		date, err := ParseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = Location{
			Address:   req.Location.Address,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	if imageURL != "" {
		event.ImageURL = imageURL
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, id)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID, callerID uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != callerID {
		return ErrNotOrganizer
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateEventCache(ctx, id)
	return nil
}

func (s *service) invalidateEventCache(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, constants.BuildEventDetailKey(id.String())); err != nil {
		s.log.Warn("event detail cache invalidation failed", "event_id", id.String(), "error", err)
	}
	s.invalidateListCache(ctx)
}

func (s *service) invalidateListCache(ctx context.Context) {
	pattern := fmt.Sprintf("%s:*", constants.CACHE_KEY_EVENTS_LIST)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		s.log.Warn("event list cache invalidation failed", "error", err)
	}
}
