package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/config"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, health func() error) (*gin.Engine, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := utils.NewJWTManager("routes-test-secret", time.Hour, 2*time.Hour)
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(1000, 60))
	t.Cleanup(limiter.Close)

	// services are never reached: every request below is rejected by middleware
	h := &Handlers{
		Auth:         handler.NewAuthHandler(nil, nil, false),
		User:         handler.NewUserHandler(nil),
		Branch:       handler.NewBranchHandler(nil),
		Plan:         handler.NewPlanHandler(nil),
		Member:       handler.NewMemberHandler(nil),
		Staff:        handler.NewStaffHandler(nil),
		Class:        handler.NewClassHandler(nil),
		Housekeeping: handler.NewHousekeepingHandler(nil),
		Salary:       handler.NewSalaryHandler(nil),
		Dashboard:    handler.NewDashboardHandler(nil),
	}
	cfg := &config.Config{
		App:  config.AppConfig{Name: "gymdesk-api"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	r := Setup(h, &Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		RateLimiter: limiter,
		HealthCheck: health,
	})
	return r, jwtManager
}

func get(r http.Handler, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	assert.Equal(t, http.StatusOK, get(r, "/health", ""))

	down, _ := newTestRouter(t, func() error { return errors.New("db down") })
	assert.Equal(t, http.StatusServiceUnavailable, get(down, "/health", ""))
}

func TestRouteGuards(t *testing.T) {
	r, jwtManager := newTestRouter(t, nil)
	branch := uuid.New()

	token := func(sub utils.TokenSubject) string {
		tok, err := jwtManager.GenerateAccessToken(sub)
		require.NoError(t, err)
		return tok
	}
	member := token(utils.TokenSubject{ID: uuid.New(), Kind: utils.KindMember, Roles: []string{entity.RoleMember}, BranchID: &branch})
	trainer := token(utils.TokenSubject{
		ID: uuid.New(), Kind: utils.KindStaff, Roles: []string{entity.RoleTrainer},
		Permissions: []string{entity.PermManageClasses}, BranchID: &branch,
	})
	admin := token(utils.TokenSubject{ID: uuid.New(), Kind: utils.KindStaff, Roles: []string{entity.RoleAdmin}, BranchID: &branch})

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{name: "anonymous", path: "/api/v1/members", want: http.StatusUnauthorized},
		{name: "member on staff route", path: "/api/v1/members", token: member, want: http.StatusForbidden},
		{name: "staff on member route", path: "/api/v1/me/bookings", token: trainer, want: http.StatusForbidden},
		{name: "missing permission", path: "/api/v1/salaries", token: trainer, want: http.StatusForbidden},
		{name: "super admin only", path: "/api/v1/users/stats", token: admin, want: http.StatusForbidden},
		{name: "unknown route", path: "/api/v1/nope", token: admin, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(r, tt.path, tt.token))
		})
	}
}
