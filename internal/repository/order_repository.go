package repository

import (
	"context"

	"app/internal/domain/model"
)

// 管理者用の注文一覧の絞り込み
type AdminOrderListFilter struct {
	Status string
	//注文ID・顧客名・メールの部分一致
	Search string
	//0なら全件
	Limit int
}

// 注文＋注文者情報（管理画面用）
type AdminOrderRow struct {
	Order     model.Order
	UserName  string
	UserEmail string
}

// ステータスごとの件数
type OrderStatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
	Cancelled  int64 `json:"cancelled"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]AdminOrderRow, error)
	StatusCounts(ctx context.Context) (OrderStatusCounts, error)
}
