// Package calc holds the derived-value computations stored on member and
// salary records. Everything here is pure apart from the single plan lookup
// in ResolveMembershipPeriod.
package calc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/pkg/apperror"
)

// MembershipPeriod is the window during which a membership is active.
// EndDate is nil when no plan applies.
type MembershipPeriod struct {
	StartDate time.Time
	EndDate   *time.Time
}

// PlanGetter looks plans up by id, returning (nil, nil) when none exists
type PlanGetter interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
}

// StartOfDay returns midnight UTC of t's calendar date in t's own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MembershipEnd adds durationDays calendar days to start. Negative durations count as 0.
func MembershipEnd(start time.Time, durationDays int) time.Time {
	if durationDays < 0 {
		durationDays = 0
	}
	return StartOfDay(start).AddDate(0, 0, durationDays)
}

// ComputeMembershipPeriod derives the membership window for start and plan.
// A nil plan yields a nil end date.
func ComputeMembershipPeriod(start time.Time, plan *entity.Plan) MembershipPeriod {
	period := MembershipPeriod{StartDate: StartOfDay(start)}
	if plan == nil {
		return period
	}
	end := MembershipEnd(period.StartDate, plan.DurationDays)
	period.EndDate = &end
	return period
}

// ResolveMembershipPeriod looks up planID (when set) and computes the period.
// A nil start defaults to now. An unknown plan fails with apperror.ErrInvalidPlan.
func ResolveMembershipPeriod(ctx context.Context, plans PlanGetter, start *time.Time, planID *uuid.UUID, now time.Time) (MembershipPeriod, *entity.Plan, error) {
	startDate := now
	if start != nil {
		startDate = *start
	}

	if planID == nil {
		return ComputeMembershipPeriod(startDate, nil), nil, nil
	}

	plan, err := plans.FindByID(ctx, *planID)
	if err != nil {
		return MembershipPeriod{}, nil, err
	}
	if plan == nil {
		return MembershipPeriod{}, nil, apperror.ErrInvalidPlan
	}

	return ComputeMembershipPeriod(startDate, plan), plan, nil
}

// RenewalStart picks the day a renewed membership begins: the later of today
// and the current end date, so paying early never shortens the running period.
func RenewalStart(currentEnd *time.Time, now time.Time) time.Time {
	today := StartOfDay(now)
	if currentEnd != nil && currentEnd.After(today) {
		return StartOfDay(*currentEnd)
	}
	return today
}
