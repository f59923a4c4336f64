package repository

import (
	"context"
	"fmt"
	"time"

	"retail/internal/domain/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// ダッシュボードの集計
func (r *ReportGormRepository) DashboardStats(ctx context.Context, lowStockThreshold int64) (model.DashboardStats, error) {
	var s model.DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		name string
		q    *gorm.DB
		dst  *int64
	}{
		{"products", db.Model(&model.Product{}), &s.TotalProducts},
		{"customers", db.Model(&model.Customer{}), &s.TotalCustomers},
		{"orders", db.Model(&model.Order{}), &s.TotalOrders},
		{"pending orders", db.Model(&model.Order{}).Where("status = ?", model.OrderStatusPending), &s.PendingOrders},
		{"low stock", db.Model(&model.Product{}).Where("stock_quantity < ?", lowStockThreshold), &s.LowStockProducts},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return model.DashboardStats{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}

	//completedの売上合計
	var total decimal.Decimal
	err := db.Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", model.OrderStatusCompleted).
		Row().
		Scan(&total)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("sum sales: %w", err)
	}
	s.TotalSales = total

	return s, nil
}

// completedの注文を日別に集計（新しい日から）
func (r *ReportGormRepository) SalesByDay(ctx context.Context, from *time.Time, to *time.Time) ([]model.DailySales, error) {
	var rows []model.DailySales

	q := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("TO_CHAR(DATE(order_date), 'YYYY-MM-DD') AS date, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_sales").
		Where("status = ?", model.OrderStatusCompleted)

	if from != nil {
		q = q.Where("DATE(order_date) >= ?", from.Format(time.DateOnly))
	}
	if to != nil {
		q = q.Where("DATE(order_date) <= ?", to.Format(time.DateOnly))
	}

	err := q.Group("DATE(order_date)").
		Order("DATE(order_date) desc").
		Scan(&rows).Error
	if err != nil {
		return []model.DailySales{}, err
	}
	return rows, nil
}
