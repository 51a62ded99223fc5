package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	requestDomain "github.com/shareloop/service-sharing/internal/domain/request"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// CreateRequestRequest is the request DTO for posting an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestItemDTO is an item listed in answer to a request.
type RequestItemDTO struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Available bool      `json:"available"`
}

// RequestDTO is the response representation of an item request.
type RequestDTO struct {
	ID          uuid.UUID        `json:"id"`
	Description string           `json:"description"`
	Created     time.Time        `json:"created"`
	Items       []RequestItemDTO `json:"items"`
}

// RequestService implements use cases for item requests.
type RequestService struct {
	requests requestDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

// CreateRequest posts a new item request for the given user.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	r, err := requestDomain.NewRequest(requester.ID(), req.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	result := toRequestDTO(r, nil)
	return &result, nil
}

// GetOwnRequests returns the user's requests, newest first, each with the
// items listed in answer to it.
func (s *RequestService) GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", requesterID.String())
	}

	requests, err := s.requests.FindByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetAllRequests returns other users' requests, newest first, paginated.
func (s *RequestService) GetAllRequests(ctx context.Context, requesterID uuid.UUID, page domain.PageRequest) ([]RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", requesterID.String())
	}

	requests, _, err := s.requests.FindAllExcept(ctx, requesterID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetRequest returns one request with its answering items, visible to any
// existing user.
func (s *RequestService) GetRequest(ctx context.Context, callerID, requestID uuid.UUID) (*RequestDTO, error) {
	exists, err := s.users.ExistsByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("User", callerID.String())
	}

	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.toRequestDTOs(ctx, []*requestDomain.Request{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// toRequestDTOs batch-loads the answering items and maps the requests to
// DTOs preserving order.
func (s *RequestService) toRequestDTOs(ctx context.Context, requests []*requestDomain.Request) ([]RequestDTO, error) {
	requestIDs := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		requestIDs[i] = r.ID()
	}

	items, err := s.items.FindByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load answering items: %w", err)
	}

	itemsByRequest := make(map[uuid.UUID][]RequestItemDTO)
	for _, it := range items {
		if it.RequestID() == nil {
			continue
		}
		itemsByRequest[*it.RequestID()] = append(itemsByRequest[*it.RequestID()], RequestItemDTO{
			ID:        it.ID(),
			OwnerID:   it.OwnerID(),
			Name:      it.Name(),
			Available: it.Available(),
		})
	}

	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toRequestDTO(r, itemsByRequest[r.ID()])
	}
	return dtos, nil
}

func toRequestDTO(r *requestDomain.Request, items []RequestItemDTO) RequestDTO {
	if items == nil {
		items = []RequestItemDTO{}
	}
	return RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.CreatedAt(),
		Items:       items,
	}
}
