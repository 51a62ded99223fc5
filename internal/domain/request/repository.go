package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// Repository defines persistence operations for item requests.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// FindByRequesterID retrieves the user's own requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*Request, error)

	// FindAllExcept retrieves other users' requests, newest first.
	FindAllExcept(ctx context.Context, requesterID uuid.UUID, page domain.PageRequest) ([]*Request, int64, error)

	Save(ctx context.Context, r *Request) error
}
