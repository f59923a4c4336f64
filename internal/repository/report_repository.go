package repository

import (
	"context"
	"time"

	"retail/internal/domain/model"
)

// 集計は毎回DBから計算する
type ReportRepository interface {
	DashboardStats(ctx context.Context, lowStockThreshold int64) (model.DashboardStats, error)
	// from/toは日付単位で両端を含む
	SalesByDay(ctx context.Context, from *time.Time, to *time.Time) ([]model.DailySales, error)
}
