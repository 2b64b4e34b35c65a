package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminOrderMocks() (*TxManagerMock, *OrderRepoMock, *OrderItemRepoMock, *AuditLogRepoMock) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: orderItems,
		carts:      new(CartRepoMock),
		products:   new(ProductRepoMock),
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)
	return tx, orders, orderItems, new(AuditLogRepoMock)
}

func TestAdminOrderUsecase_UpdateStatus_AllowedTransition(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", ctx, int64(5), model.OrderStatusProcessing).Return(nil)
	audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ResourceType == model.AuditResourceOrder &&
			l.ResourceID == 5 &&
			l.ActorUserID == 9
	})).Return(nil)

	err := uc.UpdateStatus(ctx, 9, 5, AdminUpdateOrderStatusInput{Status: "processing"})

	assert.NoError(t, err)
	orders.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_AuditFailureDoesNotFailUpdate(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", ctx, int64(5), model.OrderStatusProcessing).Return(nil)
	// 監査ログが書けなくても更新は成功扱い
	audit.On("Create", ctx, mock.Anything).Return(assert.AnError)

	err := uc.UpdateStatus(ctx, 9, 5, AdminUpdateOrderStatusInput{Status: "processing"})

	assert.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestAdminOrderUsecase_UpdateStatus_RejectsBackwardTransition(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusShipped}, nil)

	// shipped → pending は戻せない
	err := uc.UpdateStatus(ctx, 9, 5, AdminUpdateOrderStatusInput{Status: "pending"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid status transition", he.Message)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_RejectsLeavingTerminal(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusDelivered}, nil)

	err := uc.UpdateStatus(ctx, 9, 5, AdminUpdateOrderStatusInput{Status: "cancelled"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAdminOrderUsecase_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusProcessing}, nil)

	err := uc.UpdateStatus(ctx, 9, 5, AdminUpdateOrderStatusInput{Status: "processing"})

	assert.NoError(t, err)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_UnknownStatus(t *testing.T) {
	tx, _, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	err := uc.UpdateStatus(context.Background(), 9, 5, AdminUpdateOrderStatusInput{Status: "teleported"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid status", he.Message)
}

func TestAdminOrderUsecase_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	orders.On("FindByID", ctx, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.UpdateStatus(ctx, 9, 404, AdminUpdateOrderStatusInput{Status: "processing"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestAdminOrderUsecase_List(t *testing.T) {
	ctx := context.Background()
	tx, orders, orderItems, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	filter := repo.AdminOrderListFilter{Status: "pending"}
	orders.On("ListAdmin", ctx, filter).Return([]repo.AdminOrderRow{
		{
			Order:     model.Order{ID: 1, UserID: 2, Status: model.OrderStatusPending, TotalPrice: 100},
			UserName:  "yamada",
			UserEmail: "yamada@example.com",
		},
	}, nil)
	orderItems.On("ListByOrderID", ctx, int64(1)).Return([]model.OrderItem{}, nil)
	orders.On("StatusCounts", ctx).Return(repo.OrderStatusCounts{Pending: 1, Total: 1}, nil)

	out, err := uc.List(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "yamada", out.Items[0].UserName)
	assert.Equal(t, int64(1), out.Counts.Pending)
}

func TestAdminOrderUsecase_List_InvalidStatusFilter(t *testing.T) {
	tx, _, _, audit := newAdminOrderMocks()
	uc := NewAdminOrderUsecase(tx, audit)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Status: "bogus"})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
