package model

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses. ProjectCompleted is the terminal value the classifier
// treats as a completion event.
const (
	ProjectNew        = "new"
	ProjectInProgress = "in-progress"
	ProjectCompleted  = "completed"
	ProjectCancelled  = "cancelled"
)

type Project struct {
	BaseModel
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ProposalID  *uuid.UUID `gorm:"type:uuid;index" json:"proposal_id,omitempty"`
	Services    string    `gorm:"type:varchar(255)" json:"services"`
	Description string    `gorm:"type:text" json:"description"`
	Amount      int64     `gorm:"default:0" json:"amount"`
	Status      string    `gorm:"type:varchar(20);default:'new'" json:"project_status" validate:"omitempty,oneof=new in-progress completed cancelled"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	// Directory records assigned to work the project.
	AssignedEmployees []Employee `gorm:"many2many:project_employees;" json:"assigned_employees,omitempty"`
}

// AssignedEmployeeIDs returns the directory ids of the assignment set.
func (p *Project) AssignedEmployeeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.AssignedEmployees))
	for i, e := range p.AssignedEmployees {
		ids[i] = e.ID
	}
	return ids
}
