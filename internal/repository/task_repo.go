package repository

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *model.Task) error
	Update(task *model.Task) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Task, error)
	FindAll() ([]model.Task, error)
	FindByProjectID(projectID uuid.UUID) ([]model.Task, error)
	ReplaceAssignees(task *model.Task, employees []model.Employee) error
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db}
}

func (r *taskRepo) Create(task *model.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepo) Update(task *model.Task) error {
	// Omit the association so assignment changes go through ReplaceAssignees.
	return r.db.Omit("Assignees").Save(task).Error
}

func (r *taskRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Task{}, "id = ?", id).Error
}

func (r *taskRepo) FindByID(id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.Preload("Project").Preload("Assignees").
		First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) FindAll() ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.Preload("Project").Preload("Assignees").
		Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) FindByProjectID(projectID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.Preload("Assignees").Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) ReplaceAssignees(task *model.Task, employees []model.Employee) error {
	return r.db.Model(task).Association("Assignees").Replace(employees)
}
