package repository

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	branchIDKey    ctxKey = "branch_id"
	allBranchesKey ctxKey = "all_branches"
)

// WithBranch restricts branch-owned reads in ctx to one branch
func WithBranch(ctx context.Context, branchID uuid.UUID) context.Context {
	return context.WithValue(ctx, branchIDKey, branchID)
}

// WithAllBranches lifts the branch restriction (super admins, background jobs)
func WithAllBranches(ctx context.Context) context.Context {
	return context.WithValue(ctx, allBranchesKey, true)
}

// BranchFromContext returns the branch ctx is restricted to
func BranchFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(branchIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// IsAllBranches reports whether ctx may read every branch.
// An explicit branch restriction wins over the flag.
func IsAllBranches(ctx context.Context) bool {
	if _, ok := BranchFromContext(ctx); ok {
		return false
	}
	all, _ := ctx.Value(allBranchesKey).(bool)
	return all
}

// CanAccessBranch reports whether ctx may touch a record owned by branchID.
// Records without a branch are visible only to unrestricted callers.
func CanAccessBranch(ctx context.Context, branchID *uuid.UUID) bool {
	if all, _ := ctx.Value(allBranchesKey).(bool); all {
		return true
	}
	scoped, ok := BranchFromContext(ctx)
	if !ok || branchID == nil {
		return false
	}
	return scoped == *branchID
}
