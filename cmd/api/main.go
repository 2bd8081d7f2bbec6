package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/config"
	domainRepo "github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/internal/infrastructure/database"
	"github.com/sangkips/gymdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/routes"
	"github.com/sangkips/gymdesk-api/pkg/email"
	"github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/oauth"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"github.com/shopspring/decimal"
)

const idempotencySweepInterval = time.Hour

func main() {
	cfg := config.Load()

	logger.InitLogging(logger.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.File,
		Pretty:   cfg.Log.Pretty,
	})
	log := logger.Get()

	// money is emitted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.SeedDefaultData(ctx, db, cfg.Admin); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	planRepo := repository.NewPlanRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	classTypeRepo := repository.NewClassTypeRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	taskRepo := repository.NewHousekeepingRepository(db)
	salaryRepo := repository.NewSalaryRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
		StateSecret:        cfg.JWT.Secret,
	})

	authService := service.NewAuthService(userRepo, memberRepo, passwordResetRepo, txManager, jwtManager, emailService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo, branchRepo)
	branchService := service.NewBranchService(branchRepo)
	planService := service.NewPlanService(planRepo, branchRepo)
	memberService := service.NewMemberService(memberRepo, planRepo, attendanceRepo, paymentRepo, txManager, emailService)
	staffService := service.NewStaffService(userRepo, roleRepo, branchRepo, staffRepo, txManager)
	classService := service.NewClassService(classTypeRepo, scheduleRepo, bookingRepo, branchRepo, userRepo, memberRepo, txManager)
	taskService := service.NewHousekeepingService(taskRepo, userRepo)
	salaryService := service.NewSalaryService(salaryRepo, userRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, cfg.Gym.PTCategory, cfg.Gym.ExpiryAlertDays)

	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService, googleOAuthService, cfg.IsProduction()),
		User:         handler.NewUserHandler(userService),
		Branch:       handler.NewBranchHandler(branchService),
		Plan:         handler.NewPlanHandler(planService),
		Member:       handler.NewMemberHandler(memberService),
		Staff:        handler.NewStaffHandler(staffService),
		Class:        handler.NewClassHandler(classService),
		Housekeeping: handler.NewHousekeepingHandler(taskService),
		Salary:       handler.NewSalaryHandler(salaryService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFor(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer rateLimiter.Close()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		HealthCheck:     func() error { return database.Ping(db) },
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("env", cfg.App.Env).Str("port", port).Msgf("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// sweepIdempotencyKeys drops expired idempotency keys until ctx is done
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := repo.DeleteExpired(ctx, now); err != nil {
				logger.WarnLog(ctx, "failed to delete expired idempotency keys: %v", err)
			}
		}
	}
}
