package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 同一商品は数量加算。
// 既存行は FOR UPDATE で掴んでから加算するので、同時追加でも増分は失われない。
func (r *CartGormRepository) AddItem(ctx context.Context, userID int64, productID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newItem := model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  addQty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			// (user_id, product_id) のユニーク制約に負けたら加算でやり直す
			res := tx.Model(&model.CartItem{}).
				Where("user_id = ? AND product_id = ?", userID, productID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))
			if res.Error != nil || res.RowsAffected == 0 {
				return err
			}
			return nil
		}

		return nil
	})
}

// 数量をそのまま設定
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, userID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除（無くてもエラーにしない）
func (r *CartGormRepository) RemoveItem(ctx context.Context, userID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{}).Error
}

// カート明細を現在の商品情報とJOINして返す
func (r *CartGormRepository) ListByUserID(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	var lines []repo.CartLine

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.product_id as product_id, products.name as product_name, products.price as unit_price, products.image as image, cart_items.quantity as quantity").
		Joins("join products on products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return []repo.CartLine{}, err
	}

	return lines, nil
}

// 注文確定用。カート行を FOR UPDATE でロックしてから読む。
// READ COMMITTED では同一ユーザーの確定が並んだとき、後続はロック待ちの後に
// Clear済みのカートを見るので空になる（二重注文はここで止まる）。
func (r *CartGormRepository) ListByUserIDForUpdate(ctx context.Context, userID int64) ([]repo.CartLine, error) {
	var lines []repo.CartLine

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "cart_items"}}).
		Select("cart_items.product_id as product_id, products.name as product_name, products.price as unit_price, products.image as image, cart_items.quantity as quantity").
		Joins("join products on products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return []repo.CartLine{}, err
	}

	return lines, nil
}

// 数量の合計（カートバッジ用）
func (r *CartGormRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count *int64

	err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Select("sum(quantity)").
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	if count == nil {
		// 行が無ければ SUM は NULL
		return 0, nil
	}
	return *count, nil
}

// ユーザーのカートを全削除
func (r *CartGormRepository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}
