package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. TaskCompleted is the terminal value.
const (
	TaskNew        = "new"
	TaskInProgress = "inprogress"
	TaskCompleted  = "completed"
)

type Task struct {
	BaseModel
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id" validate:"uuid_required"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Comment   string     `gorm:"type:text" json:"comment"`
	Status    string     `gorm:"type:varchar(20);default:'new'" json:"status" validate:"omitempty,oneof=new inprogress completed"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	// Directory records the task is assigned to.
	Assignees []Employee `gorm:"many2many:task_assignees;" json:"assignees,omitempty"`
}

// AssigneeIDs returns the directory ids of the assignment set.
func (t *Task) AssigneeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Assignees))
	for i, e := range t.Assignees {
		ids[i] = e.ID
	}
	return ids
}
