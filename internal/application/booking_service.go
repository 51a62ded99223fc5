package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
)

// EventPublisher is the outbound contract for lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, evt events.CloudEvent) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ItemSummaryDTO is the nested item representation inside a booking.
type ItemSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserSummaryDTO is the nested user representation inside a booking.
type UserSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID      `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Status string         `json:"status"`
	Item   ItemSummaryDTO `json:"item"`
	Booker UserSummaryDTO `json:"booker"`
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation, decision, access-controlled retrieval, and the
// state-filtered listings.
type BookingService struct {
	bookings  bookingDomain.Repository
	items     itemDomain.Repository
	users     userDomain.Repository
	clock     clock.Clock
	publisher EventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	clk clock.Clock,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		items:     items,
		users:     users,
		clock:     clk,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking validates and persists a new waiting booking for the given
// booker. Validation order: interval, item existence, self-booking,
// availability, booker existence; the first failure wins.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.End.After(req.Start) {
		return nil, domain.NewValidationError("booking end must be strictly after start")
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewForbiddenError("owners cannot book their own items")
	}
	if !it.Available() {
		return nil, domain.NewValidationError(fmt.Sprintf("item %s is not available for booking", it.ID()))
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(it.ID(), booker.ID(), req.Start, req.End, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishCreated(ctx, bk, it)

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// ApproveBooking lets the item owner approve or reject a waiting booking.
// The transition is a single conditional update, so of two concurrent
// decisions at most one wins; the loser fails the same way a repeated call
// does.
func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID uuid.UUID, approved bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.Status() != bookingDomain.StatusWaiting {
		return nil, domain.NewInvalidStateError(string(bk.Status()))
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError(fmt.Sprintf("user %s is not the owner of item %s", ownerID, it.ID()))
	}

	target := bookingDomain.DecidedStatus(approved)
	changed, err := s.bookings.UpdateStatusIfWaiting(ctx, bk.ID(), target, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !changed {
		// Lost the race against another decision; report the settled status.
		fresh, err := s.bookings.FindByID(ctx, bk.ID())
		if err != nil {
			return nil, err
		}
		return nil, domain.NewInvalidStateError(string(fresh.Status()))
	}

	bk = bookingDomain.Reconstruct(
		bk.ID(), bk.ItemID(), bk.BookerID(),
		target, bk.Start(), bk.End(), bk.CreatedAt(), s.clock.Now(),
	)

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}

	s.publishDecided(ctx, bk, it, ownerID)

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// GetBooking retrieves a single booking, visible only to its booker or the
// owner of the booked item.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(userID) && !it.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError(
			fmt.Sprintf("user %s is neither the booker nor the owner of the booked item", userID))
	}

	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// GetBookerBookings lists bookings made by the user, filtered by state and
// ordered by start descending.
func (s *BookingService) GetBookerBookings(ctx context.Context, bookerID uuid.UUID, state string, page domain.PageRequest) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", bookerID.String())
	}

	return s.listBookings(ctx, bookingDomain.ByBooker(bookerID), state, page)
}

// GetOwnerBookings lists bookings of items owned by the user, filtered by
// state and ordered by start descending. The user must own at least one
// item.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, state string, page domain.PageRequest) ([]BookingDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", ownerID.String())
	}

	hasItems, err := s.items.ExistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !hasItems {
		return nil, &domain.Error{
			Kind:    domain.KindNotFound,
			Message: fmt.Sprintf("user %s has no items to be booked", ownerID),
		}
	}

	itemIDs, err := s.items.IDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.listBookings(ctx, bookingDomain.ByItems(itemIDs), state, page)
}

// listBookings runs the shared classification query: one scope (booker vs.
// owned items) combined with one state predicate, then assembles the nested
// item/booker summaries.
func (s *BookingService) listBookings(ctx context.Context, scope bookingDomain.ListScope, state string, page domain.PageRequest) ([]BookingDTO, error) {
	filter, err := bookingDomain.ParseStateFilter(state)
	if err != nil {
		return nil, err
	}

	bookings, _, err := s.bookings.FindFiltered(ctx, scope, filter, s.clock.Now(), page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return s.toBookingDTOs(ctx, bookings)
}

// toBookingDTOs batch-loads the referenced items and bookers and maps the
// bookings to DTOs preserving order.
func (s *BookingService) toBookingDTOs(ctx context.Context, bookings []*bookingDomain.Booking) ([]BookingDTO, error) {
	itemIDs := make([]uuid.UUID, 0, len(bookings))
	bookerIDs := make([]uuid.UUID, 0, len(bookings))
	seenItems := make(map[uuid.UUID]bool)
	seenUsers := make(map[uuid.UUID]bool)
	for _, bk := range bookings {
		if !seenItems[bk.ItemID()] {
			seenItems[bk.ItemID()] = true
			itemIDs = append(itemIDs, bk.ItemID())
		}
		if !seenUsers[bk.BookerID()] {
			seenUsers[bk.BookerID()] = true
			bookerIDs = append(bookerIDs, bk.BookerID())
		}
	}

	items, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[uuid.UUID]*itemDomain.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID()] = it
	}
	usersByID := make(map[uuid.UUID]*userDomain.User, len(users))
	for _, u := range users {
		usersByID[u.ID()] = u
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk, itemsByID[bk.ItemID()], usersByID[bk.BookerID()])
	}
	return dtos, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking, it *itemDomain.Item, booker *userDomain.User) BookingDTO {
	dto := BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: string(bk.Status()),
		Item:   ItemSummaryDTO{ID: bk.ItemID()},
		Booker: UserSummaryDTO{ID: bk.BookerID()},
	}
	if it != nil {
		dto.Item.Name = it.Name()
	}
	if booker != nil {
		dto.Booker.Name = booker.Name()
	}
	return dto
}

func (s *BookingService) publishCreated(ctx context.Context, bk *bookingDomain.Booking, it *itemDomain.Item) {
	evt := events.BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		BookerID:   bk.BookerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: s.clock.Now(),
	}
	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), evt)
}

func (s *BookingService) publishDecided(ctx context.Context, bk *bookingDomain.Booking, it *itemDomain.Item, ownerID uuid.UUID) {
	eventType := events.BookingRejected
	if bk.Status() == bookingDomain.StatusApproved {
		eventType = events.BookingApproved
	}
	evt := events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		OwnerID:    ownerID,
		BookerID:   bk.BookerID(),
		Status:     string(bk.Status()),
		OccurredAt: s.clock.Now(),
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-sharing", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
