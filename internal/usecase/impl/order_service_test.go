package impl

import (
	"context"
	"testing"

	"insight/internal/domain/entity"
	"insight/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.ID] = order

	return nil
}

func TestPlaceOrder_RejectsUnknownUser(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := &orderService{orderRepo: orderRepo, userRepo: &fakeStore{}}

	_, err := svc.PlaceOrder(context.Background(), &entity.Order{UserID: uuid.New()})
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.Empty(t, orderRepo.orders)
}

func TestPlaceOrder_PersistsForExistingUser(t *testing.T) {
	owner := &entity.User{ID: uuid.New(), Name: "owner", Email: "owner@example.com"}
	orderRepo := newFakeOrderRepo()
	svc := &orderService{orderRepo: orderRepo, userRepo: &fakeStore{users: []*entity.User{owner}}}

	order := &entity.Order{
		UserID: owner.ID,
		Status: "created",
		Items:  []entity.LineItem{{ProductID: uuid.New(), Quantity: 2, UnitPrice: 50}},
	}

	created, err := svc.PlaceOrder(context.Background(), order)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Len(t, orderRepo.orders, 1)

	found, err := svc.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, found.UserID)
	assert.Len(t, found.Items, 1)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &orderService{orderRepo: newFakeOrderRepo(), userRepo: &fakeStore{}}

	_, err := svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrOrderNotFound)
}
