package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Category string
	Search   string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//同カテゴリの関連商品（自分自身は除く）
	ListRelated(ctx context.Context, productID int64, category string, limit int) ([]model.Product, error)

	//登録済みカテゴリの一覧（重複なし）
	Categories(ctx context.Context) ([]string, error)
	ListRecent(ctx context.Context, limit int) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error

	//商品削除。カート明細は巻き添えで消すが、注文明細には触らない。
	Delete(ctx context.Context, id int64) error
}
