package repository

import (
	"context"
	"time"

	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// branchFilter renders the branch scope in ctx as a raw SQL condition
func branchFilter(ctx context.Context, column string) (string, []any) {
	if branchID, ok := domainRepo.BranchFromContext(ctx); ok {
		return " AND " + column + " = ?", []any{branchID}
	}
	if domainRepo.IsAllBranches(ctx) {
		return "", nil
	}
	return " AND 1 = 0", nil
}

func (r *analyticsRepository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := conn(ctx, r.db).Raw(query, args...).Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *analyticsRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Raw(query, args...).Row().Scan(&total)
	return total, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	scope, args := branchFilter(ctx, "p.branch_id")
	return r.sum(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		WHERE 1 = 1`+scope, args...)
}

func (r *analyticsRepository) GetRevenueByCategory(ctx context.Context, category string) (decimal.Decimal, error) {
	scope, args := branchFilter(ctx, "p.branch_id")
	return r.sum(ctx, `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN plans pl ON pl.id = p.plan_id
		WHERE pl.category = ?`+scope, append([]any{category}, args...)...)
}

func (r *analyticsRepository) CountNewMembers(ctx context.Context, from, to time.Time) (int64, error) {
	scope, args := branchFilter(ctx, "m.branch_id")
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM members m
		WHERE m.created_at >= ? AND m.created_at < ?`+scope, append([]any{from, to}, args...)...)
}

func (r *analyticsRepository) CountActiveMembers(ctx context.Context, day time.Time) (int64, error) {
	scope, args := branchFilter(ctx, "m.branch_id")
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM members m
		WHERE m.status = ? AND m.membership_to >= ?`+scope,
		append([]any{enum.StatusActive, day}, args...)...)
}

func (r *analyticsRepository) CountOverdueMembers(ctx context.Context, day time.Time) (int64, error) {
	scope, args := branchFilter(ctx, "m.branch_id")
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM members m
		WHERE m.status = ? AND m.membership_to < ?`+scope,
		append([]any{enum.StatusActive, day}, args...)...)
}

func (r *analyticsRepository) CountCheckIns(ctx context.Context, from, to time.Time) (int64, error) {
	scope, args := branchFilter(ctx, "a.branch_id")
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM member_attendance a
		WHERE a.check_in_at >= ? AND a.check_in_at < ?`+scope, append([]any{from, to}, args...)...)
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, from, to time.Time) ([]domainRepo.DailyRevenueResult, error) {
	var results []domainRepo.DailyRevenueResult

	scope, args := branchFilter(ctx, "p.branch_id")
	err := conn(ctx, r.db).Raw(`
		SELECT
			DATE(p.paid_at) AS date,
			COALESCE(SUM(p.amount), 0) AS revenue
		FROM payments p
		WHERE p.paid_at >= ? AND p.paid_at < ?`+scope+`
		GROUP BY DATE(p.paid_at)
		ORDER BY date ASC
	`, append([]any{from, to}, args...)...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetBranchLeaderboard(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.BranchPerformanceResult, error) {
	var results []domainRepo.BranchPerformanceResult

	scope, args := branchFilter(ctx, "b.id")
	err := conn(ctx, r.db).Raw(`
		SELECT
			b.id AS branch_id,
			b.name AS branch_name,
			COALESCE((
				SELECT SUM(p.amount) FROM payments p
				WHERE p.branch_id = b.id AND p.paid_at >= ? AND p.paid_at < ?
			), 0) AS revenue,
			(
				SELECT COUNT(*) FROM members m
				WHERE m.branch_id = b.id AND m.created_at >= ? AND m.created_at < ?
			) AS new_members
		FROM branches b
		WHERE 1 = 1`+scope+`
		ORDER BY revenue DESC, new_members DESC, b.name ASC
		LIMIT ?
	`, append(append([]any{from, to, from, to}, args...), limit)...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetExpiringMemberships(ctx context.Context, from, to time.Time) ([]domainRepo.ExpiringMembershipResult, error) {
	var results []domainRepo.ExpiringMembershipResult

	scope, args := branchFilter(ctx, "m.branch_id")
	err := conn(ctx, r.db).Raw(`
		SELECT
			m.id AS member_id,
			m.full_name,
			m.phone,
			m.membership_to
		FROM members m
		WHERE m.status = ? AND m.membership_to >= ? AND m.membership_to <= ?`+scope+`
		ORDER BY m.membership_to ASC, m.full_name ASC
	`, append([]any{enum.StatusActive, from, to}, args...)...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
