package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

type requestFixture struct {
	service  *RequestService
	requests *fakeRequestRepo
	items    *fakeItemRepo
	users    *fakeUserRepo
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		requests: newFakeRequestRepo(),
		items:    newFakeItemRepo(),
		users:    newFakeUserRepo(),
	}
	f.service = NewRequestService(f.requests, f.items, f.users, clock.NewFixed(testNow), zap.NewNop())
	return f
}

func (f *requestFixture) seedUser(t *testing.T, name, email string) *userDomain.User {
	t.Helper()
	u, err := userDomain.NewUser(name, email, testNow)
	require.NoError(t, err)
	f.users.put(u)
	return u
}

func TestCreateRequest(t *testing.T) {
	f := newRequestFixture()
	requester := f.seedUser(t, "Boris", "boris@example.com")

	dto, err := f.service.CreateRequest(context.Background(), requester.ID(), CreateRequestRequest{
		Description: "looking for a cordless drill",
	})
	require.NoError(t, err)
	assert.Equal(t, "looking for a cordless drill", dto.Description)
	assert.Empty(t, dto.Items)
}

func TestCreateRequest_UnknownUser(t *testing.T) {
	f := newRequestFixture()

	_, err := f.service.CreateRequest(context.Background(), uuid.New(), CreateRequestRequest{
		Description: "anything",
	})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestGetRequest_WithAnsweringItems(t *testing.T) {
	f := newRequestFixture()
	requester := f.seedUser(t, "Boris", "boris@example.com")
	owner := f.seedUser(t, "Olga", "olga@example.com")

	created, err := f.service.CreateRequest(context.Background(), requester.ID(), CreateRequestRequest{
		Description: "looking for a cordless drill",
	})
	require.NoError(t, err)

	requestID := created.ID
	answer, err := itemDomain.NewItem(owner.ID(), "Drill", "answers the request", true, &requestID, testNow)
	require.NoError(t, err)
	f.items.put(answer)

	dto, err := f.service.GetRequest(context.Background(), owner.ID(), requestID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, answer.ID(), dto.Items[0].ID)
	assert.Equal(t, "Drill", dto.Items[0].Name)
}

func TestGetAllRequests_ExcludesOwn(t *testing.T) {
	f := newRequestFixture()
	boris := f.seedUser(t, "Boris", "boris@example.com")
	olga := f.seedUser(t, "Olga", "olga@example.com")

	_, err := f.service.CreateRequest(context.Background(), boris.ID(), CreateRequestRequest{Description: "a drill"})
	require.NoError(t, err)
	theirs, err := f.service.CreateRequest(context.Background(), olga.ID(), CreateRequestRequest{Description: "a ladder"})
	require.NoError(t, err)

	dtos, err := f.service.GetAllRequests(context.Background(), boris.ID(), defaultPage(t))
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, theirs.ID, dtos[0].ID)
}

func TestGetOwnRequests(t *testing.T) {
	f := newRequestFixture()
	boris := f.seedUser(t, "Boris", "boris@example.com")

	_, err := f.service.CreateRequest(context.Background(), boris.ID(), CreateRequestRequest{Description: "a drill"})
	require.NoError(t, err)

	dtos, err := f.service.GetOwnRequests(context.Background(), boris.ID())
	require.NoError(t, err)
	assert.Len(t, dtos, 1)

	_, err = f.service.GetOwnRequests(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
