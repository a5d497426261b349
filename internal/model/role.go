package model

// Role is a named bundle of permissions. Its permission list is the source of
// truth: saving a role cascades the list onto every user referencing it.
type Role struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions,omitempty"`
}

// Role names treated as admin-class regardless of the IsAdmin flag.
// Case-insensitive.
var AdminRoleNames = []string{"admin", "super admin", "superadmin", "administrator"}
