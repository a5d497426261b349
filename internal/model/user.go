package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is a login identity. Admin and staff accounts live in one table with
// IsAdmin as the class discriminator: admin-class users carry an implicit full
// permission set over every functional area, staff carry explicit Permission
// rows cascaded from their Role.
type User struct {
	BaseModel
	Email       string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string       `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name        string       `gorm:"type:varchar(255)" json:"name" validate:"required"`
	PhoneNumber string       `gorm:"type:varchar(20)" json:"phone_number"`
	IsAdmin     bool         `gorm:"default:false;index" json:"is_admin"`
	RoleID      *uint        `gorm:"index" json:"role_id"`
	Role        *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive    bool         `gorm:"default:true" json:"is_active"`
	Permissions []Permission `gorm:"foreignKey:UserID" json:"permissions,omitempty"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdminClass reports whether the user is treated as an admin: either the
// explicit flag is set or the role name is on the admin allow-list.
func (u *User) IsAdminClass() bool {
	if u.IsAdmin {
		return true
	}
	if u.Role == nil {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(u.Role.Name))
	for _, admin := range AdminRoleNames {
		if name == admin {
			return true
		}
	}
	return false
}

// Can checks a single permission. Admin-class users short-circuit to true;
// staff are matched by case-insensitive area containment.
func (u *User) Can(area, action string) bool {
	if u.IsAdminClass() {
		return true
	}
	needle := strings.ToLower(area)
	for _, p := range u.Permissions {
		if strings.Contains(strings.ToLower(p.Area), needle) && p.Allows(action) {
			return true
		}
	}
	return false
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phone_number"`
	IsAdmin     bool         `json:"is_admin"`
	RoleID      *uint        `json:"role_id,omitempty"`
	Role        *Role        `json:"role,omitempty"`
	IsActive    bool         `json:"is_active"`
	Permissions []Permission `json:"permissions"`
	LastLoginAt *time.Time   `json:"last_login_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		IsAdmin:     u.IsAdmin,
		RoleID:      u.RoleID,
		Role:        u.Role,
		IsActive:    u.IsActive,
		Permissions: u.Permissions,
		LastLoginAt: u.LastLoginAt,
	}
}
