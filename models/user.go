package models

import "time"

// AccountType distinguishes plain users from buskers.
type AccountType string

const (
	AccountTypeUser   AccountType = "user"
	AccountTypeBusker AccountType = "busker"
)

// AdminRole gates administrative endpoints.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleModerator  AdminRole = "moderator"
)

// User represents a platform account (audience member or busker).
type User struct {
	ID              string      `bson:"id" json:"id"`
	Email           string      `bson:"email" json:"email"`
	Phone           string      `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash    string      `bson:"passwordHash" json:"-"`
	FullName        string      `bson:"fullName" json:"full_name"`
	ProfileImageURL string      `bson:"profileImageUrl,omitempty" json:"profile_image_url,omitempty"`
	IsActive        bool        `bson:"isActive" json:"is_active"`
	IsVerified      bool        `bson:"isVerified" json:"is_verified"`
	UserType        AccountType `bson:"userType" json:"user_type"`
	CreatedAt       time.Time   `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updated_at"`
	LastLogin       *time.Time  `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
}

// AdminUser is a back-office account with a role and permission set.
type AdminUser struct {
	ID           string     `bson:"id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	FullName     string     `bson:"fullName" json:"full_name"`
	Role         AdminRole  `bson:"role" json:"role"`
	Permissions  []string   `bson:"permissions,omitempty" json:"permissions,omitempty"`
	IsActive     bool       `bson:"isActive" json:"is_active"`
	CreatedBy    string     `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updated_at"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
}

// HasPermission reports whether the admin may perform the named action.
// Super admins implicitly hold every permission.
func (a *AdminUser) HasPermission(perm string) bool {
	if a.Role == AdminRoleSuperAdmin {
		return true
	}
	for _, p := range a.Permissions {
		if p == perm || p == "*" {
			return true
		}
	}
	return false
}
