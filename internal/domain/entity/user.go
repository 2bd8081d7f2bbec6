package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeded role names
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTrainer    = "trainer"
	RoleStaff      = "staff"
	RoleMember     = "member"
)

// Seeded permission names
const (
	PermManageMembers      = "manage-members"
	PermManageStaff        = "manage-staff"
	PermManageClasses      = "manage-classes"
	PermManagePlans        = "manage-plans"
	PermManageSalaries     = "manage-salaries"
	PermManageHousekeeping = "manage-housekeeping"
	PermViewDashboard      = "view-dashboard"
	PermManageUsers        = "manage-users"
	PermManageBranches     = "manage-branches"
	PermBookClasses        = "book-classes"
)

// User is a staff account: super admins, branch admins, trainers and floor staff
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FullName    string     `gorm:"size:255;not null" json:"full_name"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:255" json:"-"`
	Phone       *string    `gorm:"size:50" json:"phone,omitempty"`
	Provider    string     `gorm:"size:50;default:'local'" json:"provider"`
	ProviderID  *string    `gorm:"size:255" json:"-"`
	RoleID      uint       `gorm:"not null;index" json:"role_id"`
	BranchID    *uuid.UUID `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	AdminID     *uuid.UUID `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'Active'" json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Gym owner details captured when a super admin onboards an admin
	GymName      *string          `gorm:"size:255" json:"gym_name,omitempty"`
	Address      *string          `gorm:"type:text" json:"address,omitempty"`
	PlanName     *string          `gorm:"size:255" json:"plan_name,omitempty"`
	Price        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	DurationDays *int             `json:"duration_days,omitempty"`
	Description  *string          `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Role   Role    `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Role represents a role in the RBAC system
type Role struct {
	ID          uint         `gorm:"primary_key" json:"id"`
	Name        string       `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Permissions []Permission `gorm:"many2many:role_has_permissions;foreignKey:ID;joinForeignKey:role_id;References:ID;joinReferences:permission_id" json:"permissions,omitempty"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// Permission represents a permission in the RBAC system
type Permission struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Permission model
func (Permission) TableName() string {
	return "permissions"
}

// HasPermission checks if the user's role grants a specific permission
func (u *User) HasPermission(permissionName string) bool {
	if u.IsSuperAdmin() {
		return true
	}
	for _, permission := range u.Role.Permissions {
		if permission.Name == permissionName {
			return true
		}
	}
	return false
}

// HasRole checks if the user has a specific role
func (u *User) HasRole(roleName string) bool {
	return u.Role.Name == roleName
}

// IsSuperAdmin reports whether the user holds the super admin role
func (u *User) IsSuperAdmin() bool {
	return u.Role.Name == RoleSuperAdmin
}

// IsActive reports whether the account may sign in
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == "Active"
}

// GetPermissions returns all permission names for the user
func (u *User) GetPermissions() []string {
	result := make([]string, 0, len(u.Role.Permissions))
	for _, p := range u.Role.Permissions {
		result = append(result, p.Name)
	}
	return result
}

// RoleNames returns the role names carried in access tokens
func (u *User) RoleNames() []string {
	if u.Role.Name == "" {
		return []string{}
	}
	return []string{u.Role.Name}
}
