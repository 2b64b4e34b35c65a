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

func TestCartUsecase_AddItem_MergesQuantity(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	productRepo.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10, Name: "SSD", Price: 100}, nil)
	// 2 + 3 の加算はリポジトリ側のRMWに委譲される
	cartRepo.On("AddItem", ctx, int64(1), int64(10), int64(2)).Return(nil).Once()
	cartRepo.On("AddItem", ctx, int64(1), int64(10), int64(3)).Return(nil).Once()
	cartRepo.On("ListByUserID", ctx, int64(1)).Return([]repo.CartLine{
		{ProductID: 10, ProductName: "SSD", UnitPrice: 100, Quantity: 2},
	}, nil).Once()
	cartRepo.On("ListByUserID", ctx, int64(1)).Return([]repo.CartLine{
		{ProductID: 10, ProductName: "SSD", UnitPrice: 100, Quantity: 5},
	}, nil).Once()

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 10, Quantity: 2})
	assert.NoError(t, err)

	out, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 10, Quantity: 3})
	assert.NoError(t, err)

	// 同一商品は行が増えず数量がマージされる
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.Equal(t, int64(5), out.CartCount)
	assert.Equal(t, int64(500), out.CartTotal)
	cartRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestCartUsecase_AddItem_DefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	productRepo.On("FindByID", ctx, int64(10)).Return(model.Product{ID: 10}, nil)
	cartRepo.On("AddItem", ctx, int64(1), int64(10), int64(1)).Return(nil)
	cartRepo.On("ListByUserID", ctx, int64(1)).Return([]repo.CartLine{}, nil)

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 10})
	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_AddItem_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	productRepo.On("FindByID", ctx, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddItem(ctx, 1, AddCartInput{ProductID: 999, Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	cartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateQuantity_ZeroMeansRemove(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	// 0以下はエラーではなく削除
	cartRepo.On("RemoveItem", ctx, int64(1), int64(10)).Return(nil)
	cartRepo.On("ListByUserID", ctx, int64(1)).Return([]repo.CartLine{}, nil)

	out, err := uc.UpdateQuantity(ctx, 1, UpdateCartInput{ProductID: 10, Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.CartCount)
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_GetCart_Totals(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	productRepo := new(ProductRepoMock)
	uc := NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("ListByUserID", ctx, int64(1)).Return([]repo.CartLine{
		{ProductID: 10, ProductName: "SSD", UnitPrice: 100, Quantity: 2},
		{ProductID: 20, ProductName: "RAM", UnitPrice: 50, Quantity: 1},
	}, nil)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.CartCount)
	assert.Equal(t, int64(250), out.CartTotal)
	assert.Equal(t, int64(200), out.Items[0].Subtotal)
	assert.Equal(t, int64(50), out.Items[1].Subtotal)
}

func TestCartUsecase_CountItems(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(CartRepoMock)
	uc := NewCartUsecase(cartRepo, new(ProductRepoMock))

	// バッジはSUMをDB側で取る（明細は読まない）
	cartRepo.On("CountByUserID", ctx, int64(1)).Return(int64(7), nil)

	out, err := uc.CountItems(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.CartCount)
	cartRepo.AssertNotCalled(t, "ListByUserID", mock.Anything, mock.Anything)
}

func TestCartUsecase_GetCart_Unauthorized(t *testing.T) {
	uc := NewCartUsecase(new(CartRepoMock), new(ProductRepoMock))

	_, err := uc.GetCart(context.Background(), 0)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}
