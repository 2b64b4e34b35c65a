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

func newOrderTxMock() (*TxManagerMock, *OrderRepoMock, *OrderItemRepoMock, *CartRepoMock) {
	orders := new(OrderRepoMock)
	orderItems := new(OrderItemRepoMock)
	carts := new(CartRepoMock)
	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: orderItems,
		carts:      carts,
		products:   new(ProductRepoMock),
	}}
	tx.On("WithinTx", mock.Anything).Return(nil)
	return tx, orders, orderItems, carts
}

func TestOrderUsecase_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	tx, orders, orderItems, carts := newOrderTxMock()
	uc := NewOrderUsecase(tx)

	carts.On("ListByUserIDForUpdate", ctx, int64(1)).Return([]repo.CartLine{
		{ProductID: 10, ProductName: "SSD", UnitPrice: 100, Quantity: 2},
		{ProductID: 20, ProductName: "RAM", UnitPrice: 50, Quantity: 1},
	}, nil)
	orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 1 && o.Status == model.OrderStatusPending && o.TotalPrice == 250
	})).Return(int64(77), nil)
	orderItems.On("CreateBulk", ctx, int64(77), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].ProductNameSnapshot == "SSD" && items[0].Price == 100 &&
			items[1].ProductNameSnapshot == "RAM" && items[1].Quantity == 1
	})).Return(nil)
	carts.On("Clear", ctx, int64(1)).Return(nil)

	out, err := uc.PlaceOrder(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), out.ID)
	assert.Equal(t, "pending", out.Status)
	// 合計は確定時点の価格で計算される
	assert.Equal(t, int64(250), out.TotalPrice)
	assert.Len(t, out.Items, 2)
	orders.AssertExpectations(t)
	orderItems.AssertExpectations(t)
	carts.AssertExpectations(t)
	// 確定時のカート読みは必ずロック付き。素のSELECTだと同時確定で二重注文になる。
	carts.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	tx, orders, orderItems, carts := newOrderTxMock()
	uc := NewOrderUsecase(tx)

	carts.On("ListByUserIDForUpdate", ctx, int64(1)).Return([]repo.CartLine{}, nil)

	_, err := uc.PlaceOrder(ctx, 1)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "cart empty", he.Message)
	// 空カートでは注文は一切作られない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderItems.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderIsHidden(t *testing.T) {
	ctx := context.Background()
	tx, orders, _, _ := newOrderTxMock()
	uc := NewOrderUsecase(tx)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{ID: 5, UserID: 2}, nil)

	_, err := uc.GetMyOrderDetail(ctx, 1, 5)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestOrderUsecase_GetMyOrderDetail(t *testing.T) {
	ctx := context.Background()
	tx, orders, orderItems, _ := newOrderTxMock()
	uc := NewOrderUsecase(tx)

	orders.On("FindByID", ctx, int64(5)).Return(model.Order{
		ID: 5, UserID: 1, Status: model.OrderStatusShipped, TotalPrice: 300,
	}, nil)
	orderItems.On("ListByOrderID", ctx, int64(5)).Return([]model.OrderItem{
		{ProductID: 10, ProductNameSnapshot: "SSD", Price: 100, Quantity: 3},
	}, nil)

	out, err := uc.GetMyOrderDetail(ctx, 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, "shipped", out.Status)
	assert.Equal(t, int64(300), out.TotalPrice)
	assert.Len(t, out.Items, 1)
	// 商品名・価格は確定時のスナップショット
	assert.Equal(t, "SSD", out.Items[0].Name)
	assert.Equal(t, int64(100), out.Items[0].Price)
}

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	ctx := context.Background()
	tx, orders, orderItems, _ := newOrderTxMock()
	uc := NewOrderUsecase(tx)

	orders.On("ListByUserID", ctx, int64(1)).Return([]model.Order{
		{ID: 2, UserID: 1, Status: model.OrderStatusPending, TotalPrice: 100},
		{ID: 1, UserID: 1, Status: model.OrderStatusDelivered, TotalPrice: 50},
	}, nil)
	orderItems.On("ListByOrderID", ctx, int64(2)).Return([]model.OrderItem{}, nil)
	orderItems.On("ListByOrderID", ctx, int64(1)).Return([]model.OrderItem{}, nil)

	outs, err := uc.ListMyOrders(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, int64(2), outs[0].ID)
}
