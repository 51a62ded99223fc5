package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	requestDomain "github.com/shareloop/service-sharing/internal/domain/request"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
)

// In-memory repository fakes mirroring the persistence contracts, including
// the filtered-listing semantics the queries implement.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) put(bk *bookingDomain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.put(bk)
	return nil
}

func (r *fakeBookingRepo) UpdateStatusIfWaiting(_ context.Context, id uuid.UUID, target bookingDomain.Status, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok || bk.Status() != bookingDomain.StatusWaiting {
		return false, nil
	}
	r.bookings[id] = bookingDomain.Reconstruct(
		bk.ID(), bk.ItemID(), bk.BookerID(),
		target, bk.Start(), bk.End(), bk.CreatedAt(), now,
	)
	return true, nil
}

func (r *fakeBookingRepo) FindFiltered(_ context.Context, scope bookingDomain.ListScope, filter bookingDomain.StateFilter, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inScope := func(bk *bookingDomain.Booking) bool {
		if len(scope.ItemIDs) > 0 {
			for _, id := range scope.ItemIDs {
				if bk.ItemID() == id {
					return true
				}
			}
			return false
		}
		return bk.BookerID() == scope.BookerID
	}

	matches := func(bk *bookingDomain.Booking) bool {
		switch filter {
		case bookingDomain.FilterCurrent:
			return bk.Start().Before(now) && bk.End().After(now)
		case bookingDomain.FilterPast:
			return bk.End().Before(now)
		case bookingDomain.FilterFuture:
			return bk.Start().After(now)
		case bookingDomain.FilterWaiting:
			return bk.Status() == bookingDomain.StatusWaiting
		case bookingDomain.FilterRejected:
			return bk.Status() == bookingDomain.StatusRejected
		default:
			return true
		}
	}

	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if inScope(bk) && matches(bk) {
			result = append(result, bk)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start().After(result[j].Start())
	})

	total := int64(len(result))
	offset := page.Offset()
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + page.Size
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (r *fakeBookingRepo) FindApprovedByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Status() != bookingDomain.StatusApproved {
			continue
		}
		for _, id := range itemIDs {
			if bk.ItemID() == id {
				result = append(result, bk)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Start().Before(result[j].Start())
	})
	return result, nil
}

func (r *fakeBookingRepo) HasFinishedBooking(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.ItemID() == itemID && bk.BookerID() == bookerID &&
			bk.Status() == bookingDomain.StatusApproved && bk.End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (r *fakeItemRepo) put(it *itemDomain.Item) {
	r.items[it.ID()] = it
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return it, nil
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*itemDomain.Item, error) {
	var result []*itemDomain.Item
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			result = append(result, it)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*itemDomain.Item, int64, error) {
	var result []*itemDomain.Item
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			result = append(result, it)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result, int64(len(result)), nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	var result []*itemDomain.Item
	for _, it := range r.items {
		if it.RequestID() == nil {
			continue
		}
		for _, id := range requestIDs {
			if *it.RequestID() == id {
				result = append(result, it)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string, page domain.PageRequest) ([]*itemDomain.Item, int64, error) {
	needle := strings.ToLower(text)
	var result []*itemDomain.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name()), needle) ||
			strings.Contains(strings.ToLower(it.Description()), needle) {
			result = append(result, it)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeItemRepo) ExistsByOwner(_ context.Context, ownerID uuid.UUID) (bool, error) {
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemRepo) IDsByOwner(_ context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			ids = append(ids, it.ID())
		}
	}
	return ids, nil
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	r.put(it)
	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	if _, ok := r.items[it.ID()]; !ok {
		return domain.NewNotFoundError("Item", it.ID().String())
	}
	r.put(it)
	return nil
}

type fakeCommentRepo struct {
	comments []*itemDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *itemDomain.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*itemDomain.Comment, error) {
	var result []*itemDomain.Comment
	for _, c := range r.comments {
		for _, id := range itemIDs {
			if c.ItemID() == id {
				result = append(result, c)
				break
			}
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (r *fakeUserRepo) put(u *userDomain.User) {
	r.users[u.ID()] = u
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*userDomain.User, error) {
	var result []*userDomain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	var result []*userDomain.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email " + u.Email() + " is already registered")
		}
	}
	r.put(u)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.put(u)
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type fakeRequestRepo struct {
	requests map[uuid.UUID]*requestDomain.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*requestDomain.Request)}
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("Request", id.String())
	}
	return req, nil
}

func (r *fakeRequestRepo) FindByRequesterID(_ context.Context, requesterID uuid.UUID) ([]*requestDomain.Request, error) {
	var result []*requestDomain.Request
	for _, req := range r.requests {
		if req.RequesterID() == requesterID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

func (r *fakeRequestRepo) FindAllExcept(_ context.Context, requesterID uuid.UUID, page domain.PageRequest) ([]*requestDomain.Request, int64, error) {
	var result []*requestDomain.Request
	for _, req := range r.requests {
		if req.RequesterID() != requesterID {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, int64(len(result)), nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.Request) error {
	r.requests[req.ID()] = req
	return nil
}

type publishedEvent struct {
	topic string
	key   string
	event events.CloudEvent
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic, key string, evt events.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedEvent{topic: topic, key: key, event: evt})
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.published))
	for i, e := range p.published {
		types[i] = e.event.Type
	}
	return types
}
