package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理トップの表示に使う数字をまとめて返す
type AdminDashboardUsecase struct {
	dashboardRepo repo.DashboardRepository
	orderRepo     repo.OrderRepository
	productRepo   repo.ProductRepository
}

func NewAdminDashboardUsecase(
	dashboardRepo repo.DashboardRepository,
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
) *AdminDashboardUsecase {
	return &AdminDashboardUsecase{
		dashboardRepo: dashboardRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
	}
}

type RecentOrderOutput struct {
	ID         int64  `json:"id"`
	UserName   string `json:"user_name"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
}

type DashboardOutput struct {
	UserCount      int64               `json:"user_count"`
	ProductCount   int64               `json:"product_count"`
	OrderCount     int64               `json:"order_count"`
	TotalRevenue   int64               `json:"total_revenue"`
	RecentOrders   []RecentOrderOutput `json:"recent_orders"`
	RecentProducts []model.Product     `json:"recent_products"`
}

func (u *AdminDashboardUsecase) GetDashboard(ctx context.Context) (DashboardOutput, error) {
	stats, err := u.dashboardRepo.Stats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//直近の注文5件（注文者の名前付き）
	rows, err := u.orderRepo.ListAdmin(ctx, repo.AdminOrderListFilter{Limit: 5})
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	recentOrders := make([]RecentOrderOutput, 0, len(rows))
	for _, row := range rows {
		recentOrders = append(recentOrders, RecentOrderOutput{
			ID:         row.Order.ID,
			UserName:   row.UserName,
			TotalPrice: row.Order.TotalPrice,
			Status:     string(row.Order.Status),
		})
	}

	//新着商品5件
	recentProducts, err := u.productRepo.ListRecent(ctx, 5)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		UserCount:      stats.UserCount,
		ProductCount:   stats.ProductCount,
		OrderCount:     stats.OrderCount,
		TotalRevenue:   stats.TotalRevenue,
		RecentOrders:   recentOrders,
		RecentProducts: recentProducts,
	}, nil
}
