package repository

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalRepository interface {
	Create(proposal *model.Proposal) error
	Update(proposal *model.Proposal) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Proposal, error)
	FindAll() ([]model.Proposal, error)
	FindByStatus(status string) ([]model.Proposal, error)
}

type proposalRepo struct {
	db *gorm.DB
}

func NewProposalRepo(db *gorm.DB) ProposalRepository {
	return &proposalRepo{db}
}

func (r *proposalRepo) Create(proposal *model.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *proposalRepo) Update(proposal *model.Proposal) error {
	return r.db.Save(proposal).Error
}

func (r *proposalRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Proposal{}, "id = ?", id).Error
}

func (r *proposalRepo) FindByID(id uuid.UUID) (*model.Proposal, error) {
	var proposal model.Proposal
	if err := r.db.Preload("Customer").First(&proposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepo) FindAll() ([]model.Proposal, error) {
	var proposals []model.Proposal
	if err := r.db.Preload("Customer").Order("created_at DESC").Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *proposalRepo) FindByStatus(status string) ([]model.Proposal, error) {
	var proposals []model.Proposal
	if err := r.db.Preload("Customer").Where("status = ?", status).
		Order("created_at DESC").Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}
