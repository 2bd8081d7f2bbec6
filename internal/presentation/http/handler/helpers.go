package handler

import (
	"errors"
	"io"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
)

// GetUserID extracts the authenticated principal ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetPrincipalKind returns "staff" or "member" for the authenticated caller
func GetPrincipalKind(c *gin.Context) string {
	return c.GetString(middleware.CtxUserKind)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get(middleware.CtxRoles)
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// IsSuperAdmin checks if the user has the superadmin role
func IsSuperAdmin(c *gin.Context) bool {
	return slices.Contains(GetUserRoles(c), entity.RoleSuperAdmin)
}

// requireUserID writes a 401 and returns false when the caller is anonymous
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	id := GetUserID(c)
	if id == nil {
		response.Unauthorized(c, "User not authenticated")
		return uuid.Nil, false
	}
	return *id, true
}

// parseUUIDParam reads a path parameter as a UUID, writing a 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into req. Tag failures become a 422 with per-field
// messages; malformed JSON becomes a 400.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if fields := request.FieldErrors(err); len(fields) > 0 {
		response.ValidationError(c, fields)
		return false
	}
	if errors.Is(err, io.EOF) {
		response.BadRequest(c, "Request body is required")
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

// paginationFromQuery reads page, per_page and search
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil {
		params.PerPage = perPage
	}
	params.Search = c.Query("search")
	params.Validate()
	return params
}
