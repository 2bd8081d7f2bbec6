package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/gymdesk-api/internal/config"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Branch       *handler.BranchHandler
	Plan         *handler.PlanHandler
	Member       *handler.MemberHandler
	Staff        *handler.StaffHandler
	Class        *handler.ClassHandler
	Housekeeping *handler.HousekeepingHandler
	Salary       *handler.SalaryHandler
	Dashboard    *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// RateLimiter is created from Cfg.RateLimit when nil
	RateLimiter *middleware.RateLimiter
	// HealthCheck reports dependency health, e.g. a database ping. Optional.
	HealthCheck func() error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := request.RegisterValidators(v); err != nil {
			logger.Get().Error().Err(err).Msg("failed to register request validators")
		}
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unavailable",
					"service": deps.Cfg.App.Name,
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration))
	}

	v1 := router.Group("/api/v1")
	// identify the caller before limiting so signed-in users get their own bucket
	v1.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
	v1.Use(limiter.Middleware())
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.BranchScopeMiddleware())

		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

		registerProfileRoutes(protected, h)
		registerMemberSelfRoutes(protected, h, idempotent)

		staff := protected.Group("")
		staff.Use(middleware.RequireStaff())
		registerUserRoutes(staff, h)
		registerBranchRoutes(staff, h)
		registerPlanRoutes(staff, h)
		registerMemberRoutes(staff, h, idempotent)
		registerStaffRoutes(staff, h)
		registerClassRoutes(staff, h, idempotent)
		registerHousekeepingRoutes(staff, h)
		registerSalaryRoutes(staff, h, idempotent)

		staff.GET("/dashboard", middleware.RequirePermission(entity.PermViewDashboard), h.Dashboard.GetStats)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/member/login", h.Auth.MemberLogin)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerProfileRoutes are shared by staff and members
func registerProfileRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)
	// plans are public to any signed-in caller so members can pick one
	protected.GET("/plans", h.Plan.List)
	protected.GET("/plans/:id", h.Plan.Get)
	protected.GET("/schedules", h.Class.ListSchedules)
	protected.GET("/schedules/:id", h.Class.GetSchedule)
	protected.GET("/class-types", h.Class.ListClassTypes)
}

func registerMemberSelfRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	me := protected.Group("/me")
	me.Use(middleware.RequireMember())
	{
		me.GET("/bookings", h.Class.MyBookings)
		me.POST("/bookings/:id", idempotent, h.Class.BookSelf)
		me.DELETE("/bookings/:id", h.Class.CancelSelf)
	}
}

func registerUserRoutes(staff *gin.RouterGroup, h *Handlers) {
	users := staff.Group("/users")
	users.Use(middleware.RequirePermission(entity.PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/admins", h.User.ListAdmins)
		users.GET("/stats", middleware.RequireRole(entity.RoleSuperAdmin), h.User.Stats)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	staff.GET("/roles", h.User.ListRoles)
	staff.GET("/permissions", h.User.ListPermissions)
	staff.PUT("/roles/:id/permissions", middleware.RequireRole(entity.RoleSuperAdmin), h.User.SyncRolePermissions)
}

func registerBranchRoutes(staff *gin.RouterGroup, h *Handlers) {
	branches := staff.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.GET("/:id", h.Branch.Get)
		branches.POST("", middleware.RequirePermission(entity.PermManageBranches), h.Branch.Create)
	}
}

func registerPlanRoutes(staff *gin.RouterGroup, h *Handlers) {
	plans := staff.Group("/plans")
	plans.Use(middleware.RequirePermission(entity.PermManagePlans))
	{
		plans.POST("", h.Plan.Create)
		plans.PUT("/:id", h.Plan.Update)
		plans.DELETE("/:id", h.Plan.Delete)
	}
}

func registerMemberRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	members := staff.Group("/members")
	members.Use(middleware.RequirePermission(entity.PermManageMembers))
	{
		members.GET("", h.Member.List)
		members.POST("", idempotent, h.Member.Create)
		members.GET("/by-admin/:adminId", h.Member.ListByAdmin)
		members.GET("/:id", h.Member.Get)
		members.PUT("/:id", h.Member.Update)
		members.DELETE("/:id", h.Member.Delete)
		members.POST("/:id/check-in", h.Member.CheckIn)
		members.GET("/:id/attendance", h.Member.ListAttendance)
		members.GET("/:id/payments", h.Member.ListPayments)
		members.POST("/:id/payments", idempotent, h.Member.RecordPayment)
		members.GET("/:id/bookings", h.Class.MemberBookingsByID)
	}
}

func registerStaffRoutes(staff *gin.RouterGroup, h *Handlers) {
	group := staff.Group("/staff")
	group.Use(middleware.RequirePermission(entity.PermManageStaff))
	{
		group.GET("", h.Staff.List)
		group.POST("", h.Staff.Create)
		group.GET("/:id", h.Staff.Get)
		group.PUT("/:id", h.Staff.Update)
		group.DELETE("/:id", h.Staff.Delete)
	}
}

func registerClassRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	manage := middleware.RequirePermission(entity.PermManageClasses)

	staff.POST("/class-types", manage, h.Class.CreateClassType)

	schedules := staff.Group("/schedules")
	schedules.Use(manage)
	{
		schedules.POST("", h.Class.CreateSchedule)
		schedules.PATCH("/:id", h.Class.UpdateSchedule)
		schedules.DELETE("/:id", h.Class.DeleteSchedule)
		schedules.GET("/:id/bookings", h.Class.ScheduleBookings)
		schedules.POST("/:id/bookings", idempotent, h.Class.BookForMember)
		schedules.DELETE("/:id/bookings/:memberId", h.Class.CancelForMember)
	}
}

func registerHousekeepingRoutes(staff *gin.RouterGroup, h *Handlers) {
	tasks := staff.Group("/housekeeping")
	tasks.Use(middleware.RequirePermission(entity.PermManageHousekeeping))
	{
		tasks.GET("", h.Housekeeping.List)
		tasks.POST("", h.Housekeeping.Create)
		tasks.GET("/staff/:staffId", h.Housekeeping.ListByStaff)
		tasks.GET("/:id", h.Housekeeping.Get)
		tasks.PATCH("/:id", h.Housekeeping.Update)
		tasks.DELETE("/:id", h.Housekeeping.Delete)
	}
}

func registerSalaryRoutes(staff *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	salaries := staff.Group("/salaries")
	salaries.Use(middleware.RequirePermission(entity.PermManageSalaries))
	{
		salaries.GET("", h.Salary.List)
		salaries.POST("", idempotent, h.Salary.Create)
		salaries.GET("/export", h.Salary.Export)
		salaries.GET("/staff/:staffId", h.Salary.ListByStaff)
		salaries.GET("/:id", h.Salary.Get)
		salaries.PUT("/:id", h.Salary.Update)
		salaries.DELETE("/:id", h.Salary.Delete)
	}
}
