package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymdesk-api/pkg/utils"
)

// Gin context keys set by AuthMiddleware
const (
	CtxUserID      = "user_id"
	CtxUserEmail   = "user_email"
	CtxUserKind    = "user_kind"
	CtxRoles       = "user_roles"
	CtxPermissions = "user_permissions"
	CtxBranchID    = "user_branch_id"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware tries to authenticate but doesn't fail if no token is provided
func OptionalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		if claims, err := jwtManager.ValidateAccessToken(tokenString); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *utils.JWTClaims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUserEmail, claims.Email)
	c.Set(CtxUserKind, claims.Kind)
	c.Set(CtxRoles, claims.Roles)
	c.Set(CtxPermissions, claims.Permissions)
	if claims.BranchID != nil {
		c.Set(CtxBranchID, *claims.BranchID)
	}
}

func stringsFromContext(c *gin.Context, key string) []string {
	v, exists := c.Get(key)
	if !exists {
		return nil
	}
	list, _ := v.([]string)
	return list
}

func isSuperAdmin(c *gin.Context) bool {
	return slices.Contains(stringsFromContext(c, CtxRoles), entity.RoleSuperAdmin)
}

// RequireStaff rejects member tokens
func RequireStaff() gin.HandlerFunc {
	return requireKind(utils.KindStaff, "This action is only available to staff accounts")
}

// RequireMember rejects staff tokens
func RequireMember() gin.HandlerFunc {
	return requireKind(utils.KindMember, "This action is only available to members")
}

func requireKind(kind, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserKind) != kind {
			response.Forbidden(c, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission creates a middleware that requires a specific permission.
// Super admins pass every permission check.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxPermissions); !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !isSuperAdmin(c) && !slices.Contains(stringsFromContext(c, CtxPermissions), permission) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxRoles); !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRoles := stringsFromContext(c, CtxRoles)
		hasRole := slices.ContainsFunc(roles, func(r string) bool {
			return slices.Contains(userRoles, r)
		})
		if !hasRole {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
