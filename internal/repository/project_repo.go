package repository

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *model.Project) error
	Update(project *model.Project) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Project, error)
	FindAll() ([]model.Project, error)
	FindByCustomerID(customerID uuid.UUID) ([]model.Project, error)
	ReplaceAssignees(project *model.Project, employees []model.Employee) error
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db}
}

func (r *projectRepo) Create(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepo) Update(project *model.Project) error {
	// Omit the association so assignment changes go through ReplaceAssignees.
	return r.db.Omit("AssignedEmployees").Save(project).Error
}

func (r *projectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Project{}, "id = ?", id).Error
}

func (r *projectRepo) FindByID(id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.Preload("Customer").Preload("AssignedEmployees").
		First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) FindAll() ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.Preload("Customer").Preload("AssignedEmployees").
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) FindByCustomerID(customerID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.Preload("AssignedEmployees").Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) ReplaceAssignees(project *model.Project, employees []model.Employee) error {
	return r.db.Model(project).Association("AssignedEmployees").Replace(employees)
}
