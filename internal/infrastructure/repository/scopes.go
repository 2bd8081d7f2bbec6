package repository

import (
	"context"

	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
	"gorm.io/gorm"
)

// BranchScope returns a GORM scope that filters branch-owned rows by the
// branch carried in ctx. Unrestricted contexts see every row; a context with
// no scope at all sees nothing.
func BranchScope(ctx context.Context, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if branchID, ok := domainRepo.BranchFromContext(ctx); ok {
			return db.Where(column+" = ?", branchID)
		}
		if domainRepo.IsAllBranches(ctx) {
			return db
		}
		return db.Where("1 = 0")
	}
}

// Search returns a scope matching pattern against any of columns with ILIKE
func Search(pattern string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pattern == "" || len(columns) == 0 {
			return db
		}
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, col := range columns {
			if i == 0 {
				cond = cond.Where(col+" ILIKE ?", pattern)
				continue
			}
			cond = cond.Or(col+" ILIKE ?", pattern)
		}
		return db.Where(cond)
	}
}

// Paginate applies the offset and limit of params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
