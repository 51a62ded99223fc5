package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// Request is a wish for an item that is not listed yet. Owners answer it by
// listing an item that references the request.
type Request struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// NewRequest creates a new item request with validated fields.
func NewRequest(requesterID uuid.UUID, description string, now time.Time) (*Request, error) {
	if requesterID == uuid.Nil {
		return nil, domain.NewValidationError("requester ID is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}

	return &Request{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Request from persistence data.
func Reconstruct(id, requesterID uuid.UUID, description string, createdAt time.Time) *Request {
	return &Request{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }
func (r *Request) Description() string    { return r.description }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
