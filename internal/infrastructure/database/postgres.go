package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/gymdesk-api/internal/config"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/enum"
	applogger "github.com/sangkips/gymdesk-api/pkg/logger"
	"github.com/sangkips/gymdesk-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// defaultRoles maps each seeded role to its permissions. Super admins bypass checks entirely.
var defaultRoles = []struct {
	Name        string
	Permissions []string
}{
	{entity.RoleSuperAdmin, nil},
	{entity.RoleAdmin, []string{
		entity.PermManageMembers, entity.PermManageStaff, entity.PermManageClasses, entity.PermManagePlans,
		entity.PermManageSalaries, entity.PermManageHousekeeping, entity.PermViewDashboard,
		entity.PermManageBranches, entity.PermBookClasses,
	}},
	{entity.RoleManager, []string{
		entity.PermManageMembers, entity.PermManageStaff, entity.PermManageClasses,
		entity.PermManageHousekeeping, entity.PermViewDashboard, entity.PermBookClasses,
	}},
	{entity.RoleTrainer, []string{entity.PermManageClasses, entity.PermBookClasses}},
	{entity.RoleStaff, []string{entity.PermManageMembers, entity.PermManageHousekeeping, entity.PermBookClasses}},
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	applogger.Get().Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	applogger.Get().Info().Msg("Running database migrations")

	err := db.AutoMigrate(
		// Accounts
		&entity.Permission{},
		&entity.Role{},
		&entity.Branch{},
		&entity.User{},
		&entity.PasswordResetToken{},
		&entity.StaffProfile{},

		// Memberships
		&entity.Plan{},
		&entity.Member{},
		&entity.MemberAttendance{},
		&entity.Payment{},

		// Classes
		&entity.ClassType{},
		&entity.ClassSchedule{},
		&entity.Booking{},

		// Operations
		&entity.HousekeepingTask{},
		&entity.Salary{},

		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applogger.Get().Info().Msg("Database migrations completed")
	return nil
}

// SeedDefaultData creates missing permissions, roles and the configured super admin.
// Existing rows are left untouched so operators can tune role permissions.
func SeedDefaultData(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	log := applogger.FromContext(ctx)
	db = db.WithContext(ctx)

	byName := make(map[string]entity.Permission)
	for _, name := range allPermissions() {
		perm := entity.Permission{Name: name}
		if err := db.Where(entity.Permission{Name: name}).FirstOrCreate(&perm).Error; err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
		byName[name] = perm
	}

	for _, def := range defaultRoles {
		var role entity.Role
		err := db.Where("name = ?", def.Name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load role %s: %w", def.Name, err)
		}

		role = entity.Role{Name: def.Name}
		for _, p := range def.Permissions {
			role.Permissions = append(role.Permissions, byName[p])
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", def.Name, err)
		}
		log.Info().Str("role", def.Name).Int("permissions", len(role.Permissions)).Msg("Role created")
	}

	return seedSuperAdmin(ctx, db, admin)
}

func seedSuperAdmin(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	log := applogger.FromContext(ctx)
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		log.Warn().Msg("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Debug().Str("email", email).Msg("Super admin already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var role entity.Role
	if err := db.Where("name = ?", entity.RoleSuperAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("super admin role missing: %w", err)
	}

	hash, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Super Admin"
	}
	user := entity.User{
		FullName: name,
		Email:    email,
		Password: hash,
		RoleID:   role.ID,
		Status:   enum.StatusActive,
	}
	if err := db.Omit("Role", "Branch").Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	log.Info().Str("email", email).Msg("Super admin created")
	return nil
}

func allPermissions() []string {
	return []string{
		entity.PermManageMembers,
		entity.PermManageStaff,
		entity.PermManageClasses,
		entity.PermManagePlans,
		entity.PermManageSalaries,
		entity.PermManageHousekeeping,
		entity.PermViewDashboard,
		entity.PermManageUsers,
		entity.PermManageBranches,
		entity.PermBookClasses,
	}
}

// Ping checks the database connection with a short timeout
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
