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
	"github.com/rs/zerolog/log"
)

type TaskService interface {
	CreateTask(ctx context.Context, req *TaskRequest, actor notify.Actor) (*model.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req *TaskRequest, actor notify.Actor) (*model.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID, actor notify.Actor) error
	GetAllTasks() ([]model.Task, error)
	GetTaskByID(id uuid.UUID) (*model.Task, error)
	GetTasksByProject(projectID uuid.UUID) ([]model.Task, error)
}

// TaskRequest tolerates the same flexible AssignedTo shapes as projects.
type TaskRequest struct {
	ProjectID  string      `json:"project_id" validate:"required,uuid4"`
	Title      string      `json:"title" validate:"required"`
	Comment    string      `json:"comment"`
	Status     string      `json:"status" validate:"omitempty,oneof=new inprogress completed"`
	StartDate  *string     `json:"start_date" validate:"omitempty,date_ymd"`
	EndDate    *string     `json:"end_date" validate:"omitempty,date_ymd"`
	AssignedTo interface{} `json:"assigned_to"`
}

type taskService struct {
	taskRepo     repository.TaskRepository
	projectRepo  repository.ProjectRepository
	employeeRepo repository.EmployeeRepository
	dispatcher   *notify.Dispatcher
}

func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, employeeRepo repository.EmployeeRepository, dispatcher *notify.Dispatcher) TaskService {
	return &taskService{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		dispatcher:   dispatcher,
	}
}

func (s *taskService) CreateTask(ctx context.Context, req *TaskRequest, actor notify.Actor) (*model.Task, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, errors.New("invalid project_id")
	}
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}

	task := &model.Task{
		ProjectID: projectID,
		Title:     req.Title,
		Comment:   req.Comment,
		Status:    defaultString(req.Status, model.TaskNew),
	}
	task.CreatedBy = actor.ID.String()
	task.UpdatedBy = actor.ID.String()
	if err := applyDateRange(req.StartDate, req.EndDate, &task.StartDate, &task.EndDate); err != nil {
		return nil, err
	}

	assignees, err := s.resolveAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	task.Assignees = assignees

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.dispatcher.TaskChanged(ctx, actor, nil, task, project)
	return s.taskRepo.FindByID(task.ID)
}

func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, req *TaskRequest, actor notify.Actor) (*model.Task, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("task not found")
	}
	previous := *task

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, errors.New("invalid project_id")
	}
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, errors.New("project not found")
	}

	task.ProjectID = projectID
	task.Title = req.Title
	task.Comment = req.Comment
	task.Status = defaultString(req.Status, task.Status)
	task.UpdatedBy = actor.ID.String()
	if err := applyDateRange(req.StartDate, req.EndDate, &task.StartDate, &task.EndDate); err != nil {
		return nil, err
	}

	assignees, err := s.resolveAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}
	if err := s.taskRepo.ReplaceAssignees(task, assignees); err != nil {
		return nil, err
	}
	task.Assignees = assignees

	s.dispatcher.TaskChanged(ctx, actor, &previous, task, project)
	return s.taskRepo.FindByID(id)
}

func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID, actor notify.Actor) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return errors.New("task not found")
	}
	if err := s.taskRepo.Delete(id); err != nil {
		return err
	}

	project, err := s.projectRepo.FindByID(task.ProjectID)
	if err != nil {
		log.Warn().Str("project_id", task.ProjectID.String()).Msg("owning project missing during task delete fan-out")
		project = nil
	}
	s.dispatcher.TaskChanged(ctx, actor, task, nil, project)
	return nil
}

func (s *taskService) GetAllTasks() ([]model.Task, error) {
	return s.taskRepo.FindAll()
}

func (s *taskService) GetTaskByID(id uuid.UUID) (*model.Task, error) {
	return s.taskRepo.FindByID(id)
}

func (s *taskService) GetTasksByProject(projectID uuid.UUID) ([]model.Task, error) {
	return s.taskRepo.FindByProjectID(projectID)
}

func (s *taskService) resolveAssignees(raw interface{}) ([]model.Employee, error) {
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
