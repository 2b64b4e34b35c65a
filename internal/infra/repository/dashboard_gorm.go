package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type dashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) repo.DashboardRepository {
	return &dashboardGormRepository{db: db}
}

// ダッシュボード用の集計をまとめて取る
func (r *dashboardGormRepository) Stats(ctx context.Context) (repo.DashboardStats, error) {
	var out repo.DashboardStats

	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&out.UserCount).Error; err != nil {
		return repo.DashboardStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&out.ProductCount).Error; err != nil {
		return repo.DashboardStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&out.OrderCount).Error; err != nil {
		return repo.DashboardStats{}, err
	}

	// 注文ゼロ件のときSUMはNULL
	var revenue *int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("sum(total_price)").
		Scan(&revenue).Error
	if err != nil {
		return repo.DashboardStats{}, err
	}
	if revenue != nil {
		out.TotalRevenue = *revenue
	}

	return out, nil
}
