package service

import (
	"context"
	"time"

	"github.com/sangkips/gymdesk-api/internal/domain/calc"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const leaderboardSize = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo   repository.AnalyticsRepository
	ptCategory      string
	expiryAlertDays int
	now             func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, ptCategory string, expiryAlertDays int) *DashboardService {
	if expiryAlertDays <= 0 {
		expiryAlertDays = 7
	}
	return &DashboardService{
		analyticsRepo:   analyticsRepo,
		ptCategory:      ptCategory,
		expiryAlertDays: expiryAlertDays,
		now:             time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalRevenue      decimal.Decimal                       `json:"total_revenue"`
	NewMembers        int64                                 `json:"new_members"`
	ActiveMembers     int64                                 `json:"active_members"`
	CheckIns          int64                                 `json:"check_ins"`
	PTRevenue         decimal.Decimal                       `json:"pt_revenue"`
	AROverdue         int64                                 `json:"ar_overdue"`
	RevenueGraph      []RevenuePoint                        `json:"revenue_graph"`
	BranchLeaderboard []repository.BranchPerformanceResult  `json:"branch_leaderboard"`
	DashboardAlerts   []repository.ExpiringMembershipResult `json:"dashboard_alerts"`
}

// RevenuePoint is one day of the revenue graph
type RevenuePoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetStats returns the dashboard for the caller's branch scope. Month figures
// cover the current calendar month in UTC.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	today := calc.StartOfDay(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats := &DashboardStats{}
	var err error

	if stats.TotalRevenue, err = s.analyticsRepo.GetTotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.NewMembers, err = s.analyticsRepo.CountNewMembers(ctx, monthStart, monthEnd); err != nil {
		return nil, err
	}
	if stats.ActiveMembers, err = s.analyticsRepo.CountActiveMembers(ctx, today); err != nil {
		return nil, err
	}
	if stats.CheckIns, err = s.analyticsRepo.CountCheckIns(ctx, monthStart, monthEnd); err != nil {
		return nil, err
	}
	if stats.PTRevenue, err = s.analyticsRepo.GetRevenueByCategory(ctx, s.ptCategory); err != nil {
		return nil, err
	}
	if stats.AROverdue, err = s.analyticsRepo.CountOverdueMembers(ctx, today); err != nil {
		return nil, err
	}

	daily, err := s.analyticsRepo.GetDailyRevenue(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	stats.RevenueGraph = fillRevenueGraph(monthStart, monthEnd, daily)

	if stats.BranchLeaderboard, err = s.analyticsRepo.GetBranchLeaderboard(ctx, monthStart, monthEnd, leaderboardSize); err != nil {
		return nil, err
	}
	if stats.DashboardAlerts, err = s.analyticsRepo.GetExpiringMemberships(ctx, today, today.AddDate(0, 0, s.expiryAlertDays)); err != nil {
		return nil, err
	}

	if stats.BranchLeaderboard == nil {
		stats.BranchLeaderboard = []repository.BranchPerformanceResult{}
	}
	if stats.DashboardAlerts == nil {
		stats.DashboardAlerts = []repository.ExpiringMembershipResult{}
	}
	return stats, nil
}

// fillRevenueGraph returns one point per day in [from, to), zero where nothing was paid
func fillRevenueGraph(from, to time.Time, daily []repository.DailyRevenueResult) []RevenuePoint {
	byDay := make(map[string]decimal.Decimal, len(daily))
	for _, d := range daily {
		byDay[d.Date.Format("2006-01-02")] = d.Revenue
	}

	var points []RevenuePoint
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		revenue, ok := byDay[key]
		if !ok {
			revenue = decimal.Zero
		}
		points = append(points, RevenuePoint{Date: key, Revenue: revenue})
	}
	return points
}
