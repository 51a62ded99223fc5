package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// Booking is the aggregate root for the booking domain: a time-bounded
// reservation of one item by one user.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	status    Status
	start     time.Time
	end       time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=waiting. The interval must be
// strictly positive: end after start.
func NewBooking(itemID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("booking end must be strictly after start")
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		status:    StatusWaiting,
		start:     start.UTC(),
		end:       end.UTC(),
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	status Status,
	start, end time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		status:    status,
		start:     start,
		end:       end,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the identifier of the booked item.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the identifier of the user who requested the booking.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Start returns the interval start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the interval end.
func (b *Booking) End() time.Time { return b.end }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Behavior ---

// IsBookedBy reports whether the booking was requested by the given user.
func (b *Booking) IsBookedBy(userID uuid.UUID) bool {
	return b.bookerID == userID
}

// Decide moves a waiting booking to approved or rejected.
func (b *Booking) Decide(approved bool, now time.Time) error {
	target := DecidedStatus(approved)
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status))
	}
	b.status = target
	b.updatedAt = now.UTC()
	return nil
}

// DecidedStatus returns the status an approve call with the given flag
// resolves to.
func DecidedStatus(approved bool) Status {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}
