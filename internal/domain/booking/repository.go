package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// ListScope restricts a filtered listing to either the bookings made by one
// booker or the bookings of a set of items. Exactly one of the two fields is
// set.
type ListScope struct {
	BookerID uuid.UUID
	ItemIDs  []uuid.UUID
}

// ByBooker scopes a listing to bookings requested by the given user.
func ByBooker(bookerID uuid.UUID) ListScope {
	return ListScope{BookerID: bookerID}
}

// ByItems scopes a listing to bookings of the given items.
func ByItems(itemIDs []uuid.UUID) ListScope {
	return ListScope{ItemIDs: itemIDs}
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, bk *Booking) error

	// UpdateStatusIfWaiting atomically moves a waiting booking to target and
	// reports whether a row changed. A false result means the booking was no
	// longer waiting; concurrent decisions race on this single conditional
	// update, so at most one wins.
	UpdateStatusIfWaiting(ctx context.Context, id uuid.UUID, target Status, now time.Time) (bool, error)

	// FindFiltered retrieves one page of bookings matching the scope and the
	// state filter evaluated against now, ordered by start descending,
	// together with the total match count.
	FindFiltered(ctx context.Context, scope ListScope, filter StateFilter, now time.Time, page domain.PageRequest) ([]*Booking, int64, error)

	// FindApprovedByItemIDs retrieves all approved bookings of the given
	// items ordered by start ascending, for last/next booking views.
	FindApprovedByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Booking, error)

	// HasFinishedBooking reports whether the user has at least one approved
	// booking of the item that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)
}
