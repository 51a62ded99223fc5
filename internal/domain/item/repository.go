package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// Repository defines persistence operations for item listings.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Item, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*Item, int64, error)
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// Search retrieves available items whose name or description contains
	// the text, case-insensitively.
	Search(ctx context.Context, text string, page domain.PageRequest) ([]*Item, int64, error)

	// ExistsByOwner reports whether the user owns at least one item.
	ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)

	// IDsByOwner retrieves the identifiers of all items owned by the user.
	IDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	Save(ctx context.Context, it *Item) error
	Update(ctx context.Context, it *Item) error
}

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*Comment, error)
}
