package usecase

import (
	"context"
	"time"

	"retail/internal/domain/model"
	repo "retail/internal/repository"
)

// ダッシュボードと日別売上。キャッシュせず毎回集計する
type ReportUsecase struct {
	reports           repo.ReportRepository
	lowStockThreshold int64
}

func NewReportUsecase(reports repo.ReportRepository, lowStockThreshold int64) *ReportUsecase {
	return &ReportUsecase{reports: reports, lowStockThreshold: lowStockThreshold}
}

func (u *ReportUsecase) LowStockThreshold() int64 {
	return u.lowStockThreshold
}

func (u *ReportUsecase) Dashboard(ctx context.Context, sess Session) (model.DashboardStats, error) {
	if err := sess.requireStaff(); err != nil {
		return model.DashboardStats{}, err
	}
	s, err := u.reports.DashboardStats(ctx, u.lowStockThreshold)
	if err != nil {
		return model.DashboardStats{}, persistence(err)
	}
	return s, nil
}

func (u *ReportUsecase) SalesByDay(ctx context.Context, sess Session, from *time.Time, to *time.Time) ([]model.DailySales, error) {
	if err := sess.requireStaff(); err != nil {
		return []model.DailySales{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return []model.DailySales{}, validation("from must be before to")
	}
	rows, err := u.reports.SalesByDay(ctx, from, to)
	if err != nil {
		return []model.DailySales{}, persistence(err)
	}
	return rows, nil
}
