package model

import "github.com/google/uuid"

// Actions are the four grantable operations per functional area.
type Actions struct {
	CanView   bool `gorm:"default:false" json:"view"`
	CanAdd    bool `gorm:"default:false" json:"add"`
	CanEdit   bool `gorm:"default:false" json:"edit"`
	CanDelete bool `gorm:"default:false" json:"delete"`
}

// Allows reports whether the given action flag is set.
// Area matching is done by the repositories with case-insensitive containment,
// so "Projects" grants access to the "projects" area and vice versa.
func (a Actions) Allows(action string) bool {
	switch action {
	case ActionView:
		return a.CanView
	case ActionAdd:
		return a.CanAdd
	case ActionEdit:
		return a.CanEdit
	case ActionDelete:
		return a.CanDelete
	}
	return false
}

const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Permission is one {area, actions} grant owned by a user. The rows are a
// cascaded copy of the owning user's role permissions; editing a role rewrites
// them in bulk (see service.RoleService).
type Permission struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Area   string    `gorm:"type:varchar(100);not null" json:"area"`
	URL    string    `gorm:"type:varchar(255)" json:"url"`
	Actions
}

// RolePermission is the source-of-truth grant attached to a role.
type RolePermission struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	RoleID uint   `gorm:"not null;index" json:"role_id"`
	Area   string `gorm:"type:varchar(100);not null" json:"area"`
	URL    string `gorm:"type:varchar(255)" json:"url"`
	Actions
}

// FunctionalArea names a module of the application used as the unit of
// permission granting.
type FunctionalArea struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultAreas is the catalog of functional areas a role can grant.
var DefaultAreas = []FunctionalArea{
	{Name: "Dashboard", URL: "/dashboard"},
	{Name: "Customers", URL: "/dashboard/customers"},
	{Name: "Proposals", URL: "/dashboard/proposals"},
	{Name: "Projects", URL: "/dashboard/projects"},
	{Name: "Tasks", URL: "/dashboard/tasks"},
	{Name: "Employees", URL: "/dashboard/employees"},
	{Name: "Roles", URL: "/dashboard/settings/roles"},
	{Name: "Notifications", URL: "/dashboard/notifications"},
}
