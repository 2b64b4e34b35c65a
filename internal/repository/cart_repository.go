package repository

import "context"

// カート明細＋現在の商品情報のJOIN結果
type CartLine struct {
	ProductID   int64
	ProductName string
	//現在のカタログ価格（カート表示用。確定時は読み直す）
	UnitPrice int64
	Image     string
	Quantity  int64
}

type CartRepository interface {
	// 同一商品は数量加算。加算はDB側のロック付きRMWで行う（アプリ側read-then-writeは不可）。
	AddItem(ctx context.Context, userID int64, productID int64, addQty int64) error
	// qtyをそのまま設定。行が無ければ ErrNotFound。
	UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error
	// 行が無くてもエラーにしない
	RemoveItem(ctx context.Context, userID int64, productID int64) error
	ListByUserID(ctx context.Context, userID int64) ([]CartLine, error)
	// 注文確定用の読み取り。カート行を FOR UPDATE で掴む（トランザクション内で使う前提）。
	// 先にロックを取った確定処理がClearした後に読むと空になる。
	ListByUserIDForUpdate(ctx context.Context, userID int64) ([]CartLine, error)
	//数量の合計（カートバッジ用）
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Clear(ctx context.Context, userID int64) error
}
