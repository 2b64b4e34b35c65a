package model

import "time"

// 注文明細
// product_id は弱参照（商品削除後も明細は残す）。
// 商品名と単価は注文時点のスナップショットを保存する。
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	Price               int64     `gorm:"not null" json:"price"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
