package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートの中身は必ずDBから読み直す（メモリにキャッシュしない）。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// price は現在のカタログ価格。表示用で、注文確定時に読み直す。
type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	//数量の合計（ヘッダのバッジ用）
	CartCount int64 `json:"cart_count"`
	CartTotal int64 `json:"cart_total"`
}

type AddCartInput struct {
	ProductID int64
	//省略時は1
	Quantity int64
}

type UpdateCartInput struct {
	ProductID int64
	Quantity  int64
}

// ヘッダのバッジ用。明細は組まず合計数量だけ返す。
type CartCountResponse struct {
	CartCount int64 `json:"cart_count"`
}

func (u *CartUsecase) CountItems(ctx context.Context, userID int64) (CartCountResponse, error) {
	if userID <= 0 {
		return CartCountResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := u.cartRepo.CountByUserID(ctx, userID)
	if err != nil {
		return CartCountResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return CartCountResponse{CartCount: count}, nil
}

// カート取得
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品の存在チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 加算はDB側のロック付きRMW（同時追加でも増分は失われない）
	if err := u.cartRepo.AddItem(ctx, userID, in.ProductID, qty); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 数量変更。0以下は「削除」の意味（エラーではない）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, in UpdateCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if in.Quantity <= 0 {
		if err := u.cartRepo.RemoveItem(ctx, userID, in.ProductID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, userID)
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userID, in.ProductID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 明細削除。行が無くても成功扱い。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.cartRepo.RemoveItem(ctx, userID, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 現在のカタログ価格で明細と合計を組み立てる
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	lines, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(lines))
	var count int64 = 0
	var total int64 = 0

	for _, ln := range lines {
		subtotal := ln.UnitPrice * ln.Quantity
		respItems = append(respItems, CartItemResponse{
			ProductID: ln.ProductID,
			Name:      ln.ProductName,
			Price:     ln.UnitPrice,
			Image:     ln.Image,
			Quantity:  ln.Quantity,
			Subtotal:  subtotal,
		})

		count += ln.Quantity
		total += subtotal
	}

	return CartResponse{Items: respItems, CartCount: count, CartTotal: total}, nil
}
