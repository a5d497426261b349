package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/validator"

	"github.com/google/uuid"
)

type ProposalService interface {
	CreateProposal(ctx context.Context, req *ProposalRequest, actor notify.Actor) (*model.Proposal, error)
	UpdateProposal(ctx context.Context, id uuid.UUID, req *ProposalRequest, actor notify.Actor) (*model.Proposal, error)
	DeleteProposal(ctx context.Context, id uuid.UUID, actor notify.Actor) error
	GetAllProposals() ([]model.Proposal, error)
	GetProposalByID(id uuid.UUID) (*model.Proposal, error)
	GetProposalsByStatus(status string) ([]model.Proposal, error)
}

type ProposalRequest struct {
	CustomerID  string `json:"customer_id" validate:"required,uuid4"`
	Services    string `json:"services"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Size        string `json:"size"`
	Status      string `json:"status" validate:"omitempty,oneof=Warm Cold Hot Scrap Confirmed"`
	Comment     string `json:"comment"`
}

type proposalService struct {
	proposalRepo repository.ProposalRepository
	customerRepo repository.CustomerRepository
	dispatcher   *notify.Dispatcher
}

func NewProposalService(proposalRepo repository.ProposalRepository, customerRepo repository.CustomerRepository, dispatcher *notify.Dispatcher) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		customerRepo: customerRepo,
		dispatcher:   dispatcher,
	}
}

func (s *proposalService) CreateProposal(ctx context.Context, req *ProposalRequest, actor notify.Actor) (*model.Proposal, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		return nil, errors.New("customer not found")
	}

	proposal := &model.Proposal{
		CustomerID:  customerID,
		Services:    req.Services,
		Description: req.Description,
		Amount:      req.Amount,
		Size:        req.Size,
		Status:      defaultString(req.Status, model.ProposalWarm),
		Comment:     req.Comment,
	}
	proposal.CreatedBy = actor.ID.String()
	proposal.UpdatedBy = actor.ID.String()

	if err := s.proposalRepo.Create(proposal); err != nil {
		return nil, err
	}

	s.dispatcher.ProposalChanged(ctx, actor, nil, proposal)
	return s.proposalRepo.FindByID(proposal.ID)
}

func (s *proposalService) UpdateProposal(ctx context.Context, id uuid.UUID, req *ProposalRequest, actor notify.Actor) (*model.Proposal, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("proposal not found")
	}
	previous := *proposal

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}

	proposal.CustomerID = customerID
	proposal.Services = req.Services
	proposal.Description = req.Description
	proposal.Amount = req.Amount
	proposal.Size = req.Size
	proposal.Status = defaultString(req.Status, proposal.Status)
	proposal.Comment = req.Comment
	proposal.UpdatedBy = actor.ID.String()

	if err := s.proposalRepo.Update(proposal); err != nil {
		return nil, err
	}

	s.dispatcher.ProposalChanged(ctx, actor, &previous, proposal)
	return s.proposalRepo.FindByID(id)
}

func (s *proposalService) DeleteProposal(ctx context.Context, id uuid.UUID, actor notify.Actor) error {
	proposal, err := s.proposalRepo.FindByID(id)
	if err != nil {
		return errors.New("proposal not found")
	}
	if err := s.proposalRepo.Delete(id); err != nil {
		return err
	}
	s.dispatcher.ProposalChanged(ctx, actor, proposal, nil)
	return nil
}

func (s *proposalService) GetAllProposals() ([]model.Proposal, error) {
	return s.proposalRepo.FindAll()
}

func (s *proposalService) GetProposalByID(id uuid.UUID) (*model.Proposal, error) {
	return s.proposalRepo.FindByID(id)
}

func (s *proposalService) GetProposalsByStatus(status string) ([]model.Proposal, error) {
	return s.proposalRepo.FindByStatus(status)
}
