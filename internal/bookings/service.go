package bookings

import (
	"context"
	"errors"
	"fmt"

	"matchday/internal/events"
	"matchday/internal/shared/config"
	"matchday/internal/shared/constants"
	"matchday/internal/stream"
	"matchday/internal/tickets"
	"matchday/internal/users"
	"matchday/pkg/cache"
	"matchday/pkg/logger"
	"matchday/pkg/qr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotOwner           = errors.New("booking belongs to another user")
	ErrDuplicateSelection = errors.New("duplicate ticket type in request")
)

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID) (*BookingResponse, error)
	ListBookings(ctx context.Context, userID uuid.UUID, query ListBookingsQuery) (*BookingListResponse, error)
	UpdateBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error)
	DeleteBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error
}

type service struct {
	repo      Repository
	ledger    tickets.Ledger
	eventRepo events.Repository
	userRepo  users.Repository
	renderer  qr.Renderer
	publisher stream.Publisher
	cache     cache.Service
	cfg       *config.Config
	log       *logger.Logger
}

func NewService(
	repo Repository,
	ledger tickets.Ledger,
	eventRepo events.Repository,
	userRepo users.Repository,
	renderer qr.Renderer,
	publisher stream.Publisher,
	cacheService cache.Service,
	cfg *config.Config,
) Service {
	return &service{
		repo:      repo,
		ledger:    ledger,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		renderer:  renderer,
		publisher: publisher,
		cache:     cacheService,
		cfg:       cfg,
		log:       logger.GetDefault(),
	}
}

// CreateBooking admits a booking request. Every requested tier is
// reserved inside one database transaction together with the record
// insert, so a shortfall on any tier rolls back the whole request and
// no counters move.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.Tickets))
	for _, sel := range req.Tickets {
		if seen[sel.Type] {
			return nil, ErrDuplicateSelection
		}
		seen[sel.Type] = true
	}

	booking := &Booking{
		ID:      uuid.New(),
		UserID:  userID,
		EventID: eventID,
		Status:  PaymentPending,
	}

	qrCode, err := s.renderer.Render(booking.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to render booking code: %w", err)
	}
	booking.QRCode = qrCode

	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		var total float64
		lines := make([]BookingTicket, 0, len(req.Tickets))

		for _, sel := range req.Tickets {
			tier := event.FindTier(sel.Type)
			if tier == nil {
				return tickets.ErrUnknownTierType
			}

			if err := s.ledger.Reserve(tx, eventID, sel.Type, sel.Quantity); err != nil {
				s.log.LogReservationRejected(ctx, eventID.String(), sel.Type, sel.Quantity, err.Error())
				if errors.Is(err, tickets.ErrInsufficientInventory) {
					return fmt.Errorf("not enough tickets for %q: %w", sel.Type, err)
				}
				return err
			}

			lines = append(lines, BookingTicket{
				BookingID: booking.ID,
				TierType:  sel.Type,
				Quantity:  sel.Quantity,
				UnitPrice: tier.Price,
			})
			total += float64(sel.Quantity) * tier.Price
		}

		booking.Tickets = lines
		booking.TotalAmount = total

		return s.repo.CreateTx(tx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.afterBookingChange(ctx, booking, stream.BookingCreated)
	s.log.LogBookingCreated(ctx, booking.ID.String(), userID.String(), eventID.String(), booking.TotalAmount)

	resp := booking.ToResponse()
	resp.User = newBookingUserInfo(user)
	resp.Event = newBookingEventInfo(event)
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != callerID {
		return nil, ErrNotOwner
	}

	resp := booking.ToResponse()
	s.projectCollaborators(ctx, &resp, booking.UserID, booking.EventID)
	return &resp, nil
}

func (s *service) ListBookings(ctx context.Context, userID uuid.UUID, query ListBookingsQuery) (*BookingListResponse, error) {
	bookingList, total, err := s.repo.List(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	var userInfo *BookingUserInfo
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		userInfo = newBookingUserInfo(user)
	}

	eventInfos := make(map[uuid.UUID]*BookingEventInfo)
	responses := make([]BookingResponse, 0, len(bookingList))
	for i := range bookingList {
		resp := bookingList[i].ToResponse()
		resp.User = userInfo

		info, seen := eventInfos[bookingList[i].EventID]
		if !seen {
			if event, err := s.eventRepo.GetByID(ctx, bookingList[i].EventID); err == nil {
				info = newBookingEventInfo(event)
			}
			eventInfos[bookingList[i].EventID] = info
		}
		resp.Event = info

		responses = append(responses, resp)
	}

	return &BookingListResponse{
		Bookings: responses,
		Total:    total,
		Page:     query.Page,
		Limit:    query.Limit,
	}, nil
}

// UpdateBooking replaces the booking's ticket selection. Tier counters
// are reconciled by per-tier delta, each through the same guarded
// update used on create, so shrinking one tier while growing another
// either fully applies or fully rolls back.
func (s *service) UpdateBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error) {
	var updated *Booking

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.repo.GetByIDTx(tx, id)
		if err != nil {
			return err
		}
		if booking.UserID != callerID {
			return ErrNotOwner
		}

		if req.Tickets != nil {
			event, err := s.eventRepo.GetByID(ctx, booking.EventID)
			if err != nil {
				return err
			}

			seen := make(map[string]bool, len(req.Tickets))
			for _, sel := range req.Tickets {
				if seen[sel.Type] {
					return ErrDuplicateSelection
				}
				seen[sel.Type] = true
			}

			// Delta per tier: requested minus currently held
			deltas := make(map[string]int)
			for _, sel := range req.Tickets {
				deltas[sel.Type] += sel.Quantity
			}
			for i := range booking.Tickets {
				deltas[booking.Tickets[i].TierType] -= booking.Tickets[i].Quantity
			}

			for tierType, delta := range deltas {
				if err := s.ledger.Adjust(tx, booking.EventID, tierType, delta); err != nil {
					if delta > 0 {
						s.log.LogReservationRejected(ctx, booking.EventID.String(), tierType, delta, err.Error())
					}
					if errors.Is(err, tickets.ErrInsufficientInventory) {
						return fmt.Errorf("not enough tickets for %q: %w", tierType, err)
					}
					return err
				}
			}

			lines := make([]BookingTicket, 0, len(req.Tickets))
			var total float64
			for _, sel := range req.Tickets {
				tier := event.FindTier(sel.Type)
				if tier == nil {
					return tickets.ErrUnknownTierType
				}
				lines = append(lines, BookingTicket{
					BookingID: booking.ID,
					TierType:  sel.Type,
					Quantity:  sel.Quantity,
					UnitPrice: tier.Price,
				})
				total += float64(sel.Quantity) * tier.Price
			}

			if err := s.repo.ReplaceTicketsTx(tx, booking.ID, lines); err != nil {
				return err
			}
			booking.Tickets = lines
			booking.TotalAmount = total
		}

		if req.TotalAmount != nil {
			booking.TotalAmount = *req.TotalAmount
		}
		if req.PaymentStatus != nil {
			booking.Status = PaymentStatus(*req.PaymentStatus)
		}

		if err := s.repo.SaveTx(tx, booking); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterBookingChange(ctx, updated, stream.BookingUpdated)

	resp := updated.ToResponse()
	s.projectCollaborators(ctx, &resp, updated.UserID, updated.EventID)
	return &resp, nil
}

// DeleteBooking cancels a booking. Whether the freed tickets return to
// the tier pool is a deployment policy choice.
func (s *service) DeleteBooking(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error {
	var removed *Booking

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.repo.GetByIDTx(tx, id)
		if err != nil {
			return err
		}
		if booking.UserID != callerID {
			return ErrNotOwner
		}

		if s.cfg.Booking.RestockOnDelete {
			for i := range booking.Tickets {
				line := &booking.Tickets[i]
				if err := s.ledger.Adjust(tx, booking.EventID, line.TierType, -line.Quantity); err != nil {
					return err
				}
			}
		}

		if err := s.repo.DeleteTx(tx, booking.ID); err != nil {
			return err
		}

		removed = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.afterBookingChange(ctx, removed, stream.BookingCancelled)
	return nil
}

// projectCollaborators fills the denormalized user and event fields
// of a booking response. Lookups are best-effort; a since-deleted
// event leaves the field empty rather than failing the read.
func (s *service) projectCollaborators(ctx context.Context, resp *BookingResponse, userID, eventID uuid.UUID) {
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		resp.User = newBookingUserInfo(user)
	}
	if event, err := s.eventRepo.GetByID(ctx, eventID); err == nil {
		resp.Event = newBookingEventInfo(event)
	}
}

// afterBookingChange runs the best-effort post-commit side effects:
// event cache invalidation and the lifecycle event publish. Failures
// here never affect the committed booking.
func (s *service) afterBookingChange(ctx context.Context, booking *Booking, eventType stream.BookingEventType) {
	detailKey := constants.BuildEventDetailKey(booking.EventID.String())
	if err := s.cache.Delete(ctx, detailKey); err != nil {
		s.log.Warn("event cache invalidation failed", "event_id", booking.EventID.String(), "error", err)
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENT_ALL); err != nil {
		s.log.Warn("event list cache invalidation failed", "error", err)
	}

	err := s.publisher.Publish(ctx, stream.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		EventID:     booking.EventID,
		TotalAmount: booking.TotalAmount,
	})
	if err != nil {
		s.log.Warn("booking event publish failed",
			"booking_id", booking.ID.String(),
			"type", string(eventType),
			"error", err,
		)
	}
}
