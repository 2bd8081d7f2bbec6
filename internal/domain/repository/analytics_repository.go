package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyRevenueResult is the revenue collected on one day
type DailyRevenueResult struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// BranchPerformanceResult ranks a branch by revenue and sign-ups
type BranchPerformanceResult struct {
	BranchID   uuid.UUID       `json:"branch_id"`
	BranchName string          `json:"branch_name"`
	Revenue    decimal.Decimal `json:"revenue"`
	NewMembers int64           `json:"new_members"`
}

// ExpiringMembershipResult is a membership ending soon
type ExpiringMembershipResult struct {
	MemberID     uuid.UUID `json:"member_id"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	MembershipTo time.Time `json:"membership_to"`
}

// AnalyticsRepository defines the aggregation queries behind the dashboard.
// All methods honour the branch scope in ctx.
type AnalyticsRepository interface {
	// GetTotalRevenue sums every recorded payment
	GetTotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// GetRevenueByCategory sums payments made against plans of the given category
	GetRevenueByCategory(ctx context.Context, category string) (decimal.Decimal, error)

	// CountNewMembers counts members created in [from, to)
	CountNewMembers(ctx context.Context, from, to time.Time) (int64, error)

	// CountActiveMembers counts active members whose membership ends on or after day
	CountActiveMembers(ctx context.Context, day time.Time) (int64, error)

	// CountOverdueMembers counts active members whose membership ended before day
	CountOverdueMembers(ctx context.Context, day time.Time) (int64, error)

	// CountCheckIns counts check-ins in [from, to)
	CountCheckIns(ctx context.Context, from, to time.Time) (int64, error)

	// GetDailyRevenue returns per-day revenue for payments in [from, to)
	GetDailyRevenue(ctx context.Context, from, to time.Time) ([]DailyRevenueResult, error)

	// GetBranchLeaderboard ranks branches by revenue for payments and sign-ups in [from, to)
	GetBranchLeaderboard(ctx context.Context, from, to time.Time, limit int) ([]BranchPerformanceResult, error)

	// GetExpiringMemberships lists active memberships ending within [from, to]
	GetExpiringMemberships(ctx context.Context, from, to time.Time) ([]ExpiringMembershipResult, error)
}
