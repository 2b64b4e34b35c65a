package repository

import "context"

// 管理ダッシュボードの集計値
type DashboardStats struct {
	UserCount    int64
	ProductCount int64
	OrderCount   int64
	TotalRevenue int64
}

// 集計だけの読み取り専用の約束
type DashboardRepository interface {
	Stats(ctx context.Context) (DashboardStats, error)
}
