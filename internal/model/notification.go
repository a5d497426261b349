package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types form a closed set: entity x lifecycle, plus admin
// variants produced by AdminVariant.
const (
	TypeTaskCreated    = "task_created"
	TypeTaskUpdated    = "task_updated"
	TypeTaskDeleted    = "task_deleted"
	TypeTaskAssigned   = "task_assigned"
	TypeTaskReassigned = "task_reassigned"
	TypeTaskCompleted  = "task_completed"

	TypeProjectCreated    = "project_created"
	TypeProjectUpdated    = "project_updated"
	TypeProjectDeleted    = "project_deleted"
	TypeProjectAssigned   = "project_assigned"
	TypeProjectReassigned = "project_reassigned"
	TypeProjectCompleted  = "project_completed"

	TypeProposalCreated = "proposal_created"
	TypeProposalUpdated = "proposal_updated"
	TypeProposalDeleted = "proposal_deleted"

	TypeEmployeeCreated = "employee_created"
	TypeEmployeeUpdated = "employee_updated"
	TypeEmployeeDeleted = "employee_deleted"
)

// AdminVariant returns the admin-targeted variant of a notification type.
func AdminVariant(notificationType string) string {
	return notificationType + "_admin"
}

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Actor identity-space discriminators. With the merged login-identity table
// both resolve against users, but the tag is persisted so a reader knows which
// class of account triggered the event.
const (
	ActorAdmin = "admin"
	ActorStaff = "staff"
)

// Notification is one durable per-recipient record of a domain event. It is
// created exactly once per (recipient x event); afterwards only the read flag
// and delivery-tracking fields may change.
type Notification struct {
	BaseModel
	RecipientID uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Type        string         `gorm:"type:varchar(50);not null;index" json:"type"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	Payload     datatypes.JSON `json:"payload,omitempty"` // Free-form change diff
	IsRead      bool           `gorm:"default:false;index" json:"is_read"`
	Priority    string         `gorm:"type:varchar(10);default:'medium'" json:"priority"`

	// Optional linkage to the originating domain entity.
	TaskID     *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	ProjectID  *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	ProposalID *uuid.UUID `gorm:"type:uuid;index" json:"proposal_id,omitempty"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index" json:"employee_id,omitempty"`

	// Actor that triggered the event, with its identity-space tag.
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	ActorType string     `gorm:"type:varchar(10)" json:"actor_type,omitempty"`
	Actor     *ActorInfo `gorm:"-" json:"actor,omitempty"` // Populated on read, nil if the join fails

	// Delivery tracking.
	PushSent   bool       `gorm:"default:false" json:"push_sent"`
	PushSentAt *time.Time `json:"push_sent_at,omitempty"`
}

// ActorInfo is the joined-in actor summary returned on listings.
type ActorInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
