package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// BranchScopeMiddleware restricts branch-owned reads and writes to the caller's branch.
// Super admins see every branch unless they pass ?branch_id= to narrow the view.
// It must run after AuthMiddleware.
func BranchScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		switch {
		case isSuperAdmin(c):
			if raw := c.Query("branch_id"); raw != "" {
				id, err := uuid.Parse(raw)
				if err != nil {
					response.BadRequest(c, "Invalid branch_id")
					c.Abort()
					return
				}
				ctx = repository.WithBranch(ctx, id)
			} else {
				ctx = repository.WithAllBranches(ctx)
			}
		default:
			// staff and members without a branch get an empty scope and see nothing branch-owned
			if id := GetBranchID(c); id != uuid.Nil {
				ctx = repository.WithBranch(ctx, id)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetBranchID retrieves the caller's branch from the token, uuid.Nil when absent
func GetBranchID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(CtxBranchID)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
