package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 自分の注文履歴（新しい順）
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var items []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}

	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 管理者用の注文一覧（注文者の名前とメール付き）
func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.AdminOrderRow, error) {
	q := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.name as user_name, users.email as user_email").
		Joins("join users on users.id = orders.user_id")

	//status 絞り込み
	if f.Status != "" && f.Status != "all" {
		q = q.Where("orders.status = ?", f.Status)
	}

	// 注文ID / 顧客名 / メールの部分一致
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			q = q.Where("orders.id = ? OR users.name ILIKE ? OR users.email ILIKE ?", id, like, like)
		} else {
			q = q.Where("users.name ILIKE ? OR users.email ILIKE ?", like, like)
		}
	}

	type adminOrderScan struct {
		model.Order
		UserName  string
		UserEmail string
	}

	q = q.Order("orders.id desc")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var scanned []adminOrderScan
	if err := q.Scan(&scanned).Error; err != nil {
		return []repo.AdminOrderRow{}, err
	}

	rows := make([]repo.AdminOrderRow, 0, len(scanned))
	for _, s := range scanned {
		rows = append(rows, repo.AdminOrderRow{
			Order:     s.Order,
			UserName:  s.UserName,
			UserEmail: s.UserEmail,
		})
	}
	return rows, nil
}

// ステータスごとの件数を一度に集計
func (r *OrderGormRepository) StatusCounts(ctx context.Context) (repo.OrderStatusCounts, error) {
	type countRow struct {
		Status string
		Count  int64
	}

	var counted []countRow
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counted).Error
	if err != nil {
		return repo.OrderStatusCounts{}, err
	}

	var out repo.OrderStatusCounts
	for _, c := range counted {
		out.Total += c.Count
		switch model.OrderStatus(c.Status) {
		case model.OrderStatusPending:
			out.Pending = c.Count
		case model.OrderStatusProcessing:
			out.Processing = c.Count
		case model.OrderStatusShipped:
			out.Shipped = c.Count
		case model.OrderStatusDelivered:
			out.Delivered = c.Count
		case model.OrderStatusCancelled:
			out.Cancelled = c.Count
		}
	}
	return out, nil
}
