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
	"github.com/rs/zerolog/log"
)

var ErrEmployeeEmailExists = errors.New("employee email already exists")

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req *EmployeeRequest, actor notify.Actor) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req *EmployeeRequest, actor notify.Actor) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID, actor notify.Actor) error
	GetAllEmployees() ([]model.Employee, error)
	GetEmployeeByID(id uuid.UUID) (*model.Employee, error)
}

type EmployeeRequest struct {
	EmployeeID   string  `json:"employee_id"`
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" validate:"required,email"`
	PhoneNumber  string  `json:"phone_number"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	DateOfHiring *string `json:"date_of_hiring" validate:"omitempty,date_ymd"`
	Status       string  `json:"status"`
	RoleID       *uint   `json:"role_id"`
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	dispatcher   *notify.Dispatcher
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository, dispatcher *notify.Dispatcher) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
	}
}

func (s *employeeService) CreateEmployee(ctx context.Context, req *EmployeeRequest, actor notify.Actor) (*model.Employee, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.employeeRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmployeeEmailExists
	}

	employee := &model.Employee{
		EmployeeID:  req.EmployeeID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Designation: req.Designation,
		Status:      defaultString(req.Status, "active"),
		RoleID:      req.RoleID,
	}
	employee.CreatedBy = actor.ID.String()
	employee.UpdatedBy = actor.ID.String()

	if req.DateOfHiring != nil && *req.DateOfHiring != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfHiring)
		if err != nil {
			return nil, errors.New("invalid date_of_hiring format, use YYYY-MM-DD")
		}
		employee.DateOfHiring = &parsed
	}

	// Link the directory record to its login identity up front instead of
	// relying on an email join at notification time.
	s.linkLoginIdentity(employee)

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, err
	}

	s.dispatcher.EmployeeChanged(ctx, actor, nil, employee)
	return employee, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req *EmployeeRequest, actor notify.Actor) (*model.Employee, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("employee not found")
	}
	previous := *employee

	if req.Email != employee.Email {
		if existing, _ := s.employeeRepo.FindByEmail(req.Email); existing != nil {
			return nil, ErrEmployeeEmailExists
		}
	}

	employee.EmployeeID = req.EmployeeID
	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Email = req.Email
	employee.PhoneNumber = req.PhoneNumber
	employee.Department = req.Department
	employee.Designation = req.Designation
	employee.Status = defaultString(req.Status, employee.Status)
	employee.RoleID = req.RoleID
	employee.UpdatedBy = actor.ID.String()

	if req.DateOfHiring != nil && *req.DateOfHiring != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfHiring)
		if err != nil {
			return nil, errors.New("invalid date_of_hiring format, use YYYY-MM-DD")
		}
		employee.DateOfHiring = &parsed
	}

	// Email edits re-resolve the login link so the two records cannot drift
	// apart silently.
	s.linkLoginIdentity(employee)

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, err
	}

	s.dispatcher.EmployeeChanged(ctx, actor, &previous, employee)
	return employee, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id uuid.UUID, actor notify.Actor) error {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return errors.New("employee not found")
	}
	if err := s.employeeRepo.Delete(id, actor.ID.String()); err != nil {
		return err
	}
	s.dispatcher.EmployeeChanged(ctx, actor, employee, nil)
	return nil
}

func (s *employeeService) GetAllEmployees() ([]model.Employee, error) {
	return s.employeeRepo.FindAll()
}

func (s *employeeService) GetEmployeeByID(id uuid.UUID) (*model.Employee, error) {
	return s.employeeRepo.FindByID(id)
}

func (s *employeeService) linkLoginIdentity(employee *model.Employee) {
	user, err := s.userRepo.FindByEmail(employee.Email)
	if err != nil {
		log.Debug().Str("email", employee.Email).Msg("no login identity for employee email yet")
		employee.UserID = nil
		return
	}
	employee.UserID = &user.ID
}

func defaultString(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
