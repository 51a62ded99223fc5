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
)

// CreateItemRequest is the request DTO for listing a new item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"requestId"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// BookingBriefDTO is the short booking representation embedded in
// owner-facing item reads.
type BookingBriefDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemDTO is the response representation of an item listing.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"requestId,omitempty"`
	LastBooking *BookingBriefDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingBriefDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements use cases for the item catalog: listings, search,
// and post-booking comments.
type ItemService struct {
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	bookings bookingDomain.Repository
	users    userDomain.Repository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	bookings bookingDomain.Repository,
	users userDomain.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	it, err := itemDomain.NewItem(owner.ID(), req.Name, req.Description, available, req.RequestID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.items.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item listed",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update; only the owner may change a listing.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError(fmt.Sprintf("user %s is not the owner of item %s", ownerID, itemID))
	}

	it.Update(req.Name, req.Description, req.Available, s.clock.Now())
	if err := s.items.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns one item with its comments; the owner additionally sees
// the last and next approved booking.
func (s *ItemService) GetItem(ctx context.Context, callerID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.enrichItems(ctx, []*itemDomain.Item{it}, it.IsOwnedBy(callerID))
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// GetOwnerItems returns the owner's listings with comments and last/next
// bookings, paginated.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]ItemDTO, error) {
	items, _, err := s.items.FindByOwnerID(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return s.enrichItems(ctx, items, true)
}

// SearchItems returns available items matching the text. Empty text matches
// nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string, page domain.PageRequest) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, _, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// AddComment records feedback on an item. The author must have at least one
// approved booking of the item that ended before now.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	finished, err := s.bookings.HasFinishedBooking(ctx, itemID, authorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, domain.NewValidationError(
			fmt.Sprintf("user %s has no finished booking of item %s", authorID, itemID))
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comment, err := itemDomain.NewComment(it.ID(), author.ID(), req.Text, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	result := toCommentDTO(comment, author.Name())
	return &result, nil
}

// enrichItems attaches comments and, for owner reads, last/next approved
// bookings to the items.
func (s *ItemService) enrichItems(ctx context.Context, items []*itemDomain.Item, forOwner bool) ([]ItemDTO, error) {
	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}

	comments, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool)
	for _, c := range comments {
		if !seen[c.AuthorID()] {
			seen[c.AuthorID()] = true
			authorIDs = append(authorIDs, c.AuthorID())
		}
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorNames := make(map[uuid.UUID]string, len(authors))
	for _, u := range authors {
		authorNames[u.ID()] = u.Name()
	}

	commentsByItem := make(map[uuid.UUID][]CommentDTO)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], toCommentDTO(c, authorNames[c.AuthorID()]))
	}

	var lastByItem, nextByItem map[uuid.UUID]*BookingBriefDTO
	if forOwner {
		lastByItem, nextByItem, err = s.lastAndNextBookings(ctx, itemIDs)
		if err != nil {
			return nil, err
		}
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dto := toItemDTO(it)
		if cs, ok := commentsByItem[it.ID()]; ok {
			dto.Comments = cs
		}
		if forOwner {
			dto.LastBooking = lastByItem[it.ID()]
			dto.NextBooking = nextByItem[it.ID()]
		}
		dtos[i] = dto
	}
	return dtos, nil
}

// lastAndNextBookings computes, per item, the approved booking with the
// greatest start not after now and the one with the smallest start after
// now.
func (s *ItemService) lastAndNextBookings(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]*BookingBriefDTO, map[uuid.UUID]*BookingBriefDTO, error) {
	bookings, err := s.bookings.FindApprovedByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load approved bookings: %w", err)
	}

	now := s.clock.Now()
	last := make(map[uuid.UUID]*BookingBriefDTO)
	next := make(map[uuid.UUID]*BookingBriefDTO)

	// Bookings arrive ordered by start ascending, so later entries overwrite
	// earlier ones for "last" and only the first future one is kept.
	for _, bk := range bookings {
		brief := &BookingBriefDTO{
			ID:       bk.ID(),
			BookerID: bk.BookerID(),
			Start:    bk.Start(),
			End:      bk.End(),
		}
		if bk.Start().After(now) {
			if next[bk.ItemID()] == nil {
				next[bk.ItemID()] = brief
			}
		} else {
			last[bk.ItemID()] = brief
		}
	}
	return last, next, nil
}

// --- Helpers ---

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		Comments:    []CommentDTO{},
	}
}

func toCommentDTO(c *itemDomain.Comment, authorName string) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: authorName,
		Created:    c.CreatedAt(),
	}
}
