package model

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the HR-style directory record: name, department, employment
// fields. It is distinct from the login identity. UserID is an explicit link
// to the matching User, resolved by email equality when the employee is
// created or updated, so assignment fan-out does not depend on a runtime
// email join.
type Employee struct {
	BaseModel
	EmployeeID    string     `gorm:"type:varchar(50);uniqueIndex" json:"employee_id"`
	FirstName     string     `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName      string     `gorm:"type:varchar(100)" json:"last_name"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	PhoneNumber   string     `gorm:"type:varchar(20)" json:"phone_number"`
	Department    string     `gorm:"type:varchar(100)" json:"department"`
	Designation   string     `gorm:"type:varchar(100)" json:"designation"`
	DateOfHiring  *time.Time `gorm:"type:date" json:"date_of_hiring,omitempty"`
	Status        string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	RoleID        *uint      `gorm:"index" json:"role_id"`
	Role          *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// FullName returns the display name used in notification bodies.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
