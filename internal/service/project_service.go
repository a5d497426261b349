package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/validator"

	"github.com/google/uuid"
)

type ProjectService interface {
	CreateProject(ctx context.Context, req *ProjectRequest, actor notify.Actor) (*model.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, req *ProjectRequest, actor notify.Actor) (*model.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID, actor notify.Actor) error
	GetAllProjects() ([]model.Project, error)
	GetProjectByID(id uuid.UUID) (*model.Project, error)
	GetProjectsByCustomer(customerID uuid.UUID) ([]model.Project, error)
}

// ProjectRequest accepts AssignedTo in any of the shapes clients have been
// observed to send: a JSON array, a bare string, or a JSON-encoded array
// inside a string. notify.NormalizeUUIDList flattens all of them.
type ProjectRequest struct {
	CustomerID  string      `json:"customer_id" validate:"required,uuid4"`
	ProposalID  *string     `json:"proposal_id" validate:"omitempty,uuid4"`
	Services    string      `json:"services"`
	Description string      `json:"description"`
	Amount      int64       `json:"amount"`
	Status      string      `json:"project_status" validate:"omitempty,oneof=new in-progress completed cancelled"`
	StartDate   *string     `json:"start_date" validate:"omitempty,date_ymd"`
	EndDate     *string     `json:"end_date" validate:"omitempty,date_ymd"`
	AssignedTo  interface{} `json:"assigned_to"`
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	dispatcher   *notify.Dispatcher
}

func NewProjectService(projectRepo repository.ProjectRepository, customerRepo repository.CustomerRepository, employeeRepo repository.EmployeeRepository, dispatcher *notify.Dispatcher) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		dispatcher:   dispatcher,
	}
}

func (s *projectService) CreateProject(ctx context.Context, req *ProjectRequest, actor notify.Actor) (*model.Project, error) {
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

	project := &model.Project{
		CustomerID:  customerID,
		Services:    req.Services,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      defaultString(req.Status, model.ProjectNew),
	}
	project.CreatedBy = actor.ID.String()
	project.UpdatedBy = actor.ID.String()

	if req.ProposalID != nil && *req.ProposalID != "" {
		proposalID, err := uuid.Parse(*req.ProposalID)
		if err != nil {
			return nil, errors.New("invalid proposal_id")
		}
		project.ProposalID = &proposalID
	}
	if err := applyDateRange(req.StartDate, req.EndDate, &project.StartDate, &project.EndDate); err != nil {
		return nil, err
	}

	assignees, err := s.resolveAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	project.AssignedEmployees = assignees

	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}

	s.dispatcher.ProjectChanged(ctx, actor, nil, project)
	return s.projectRepo.FindByID(project.ID)
}

func (s *projectService) UpdateProject(ctx context.Context, id uuid.UUID, req *ProjectRequest, actor notify.Actor) (*model.Project, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("project not found")
	}
	previous := *project

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}
	project.CustomerID = customerID
	project.Services = req.Services
	project.Description = req.Description
	project.Amount = req.Amount
	project.Status = defaultString(req.Status, project.Status)
	project.UpdatedBy = actor.ID.String()

	if req.ProposalID != nil && *req.ProposalID != "" {
		proposalID, err := uuid.Parse(*req.ProposalID)
		if err != nil {
			return nil, errors.New("invalid proposal_id")
		}
		project.ProposalID = &proposalID
	}
	if err := applyDateRange(req.StartDate, req.EndDate, &project.StartDate, &project.EndDate); err != nil {
		return nil, err
	}

	assignees, err := s.resolveAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	if err := s.projectRepo.ReplaceAssignees(project, assignees); err != nil {
		return nil, err
	}
	project.AssignedEmployees = assignees

	s.dispatcher.ProjectChanged(ctx, actor, &previous, project)
	return s.projectRepo.FindByID(id)
}

func (s *projectService) DeleteProject(ctx context.Context, id uuid.UUID, actor notify.Actor) error {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return errors.New("project not found")
	}
	if err := s.projectRepo.Delete(id); err != nil {
		return err
	}
	s.dispatcher.ProjectChanged(ctx, actor, project, nil)
	return nil
}

func (s *projectService) GetAllProjects() ([]model.Project, error) {
	return s.projectRepo.FindAll()
}

func (s *projectService) GetProjectByID(id uuid.UUID) (*model.Project, error) {
	return s.projectRepo.FindByID(id)
}

func (s *projectService) GetProjectsByCustomer(customerID uuid.UUID) ([]model.Project, error) {
	return s.projectRepo.FindByCustomerID(customerID)
}

func (s *projectService) resolveAssignees(raw interface{}) ([]model.Employee, error) {
	ids := notify.NormalizeUUIDList(raw)
	if len(ids) == 0 {
		return []model.Employee{}, nil
	}
	employees, err := s.employeeRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(employees) != len(ids) {
		return nil, errors.New("one or more assigned employees not found")
	}
	return employees, nil
}

func applyDateRange(start, end *string, startDst, endDst **time.Time) error {
	if start != nil && *start != "" {
		parsed, err := time.Parse("2006-01-02", *start)
		if err != nil {
			return errors.New("invalid start_date format, use YYYY-MM-DD")
		}
		*startDst = &parsed
	}
	if end != nil && *end != "" {
		parsed, err := time.Parse("2006-01-02", *end)
		if err != nil {
			return errors.New("invalid end_date format, use YYYY-MM-DD")
		}
		*endDst = &parsed
	}
	if *startDst != nil && *endDst != nil && (*endDst).Before(**startDst) {
		return errors.New("end_date cannot be before start_date")
	}
	return nil
}
