package handler

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projectService service.ProjectService
	taskService    service.TaskService
}

func NewProjectHandler(projectService service.ProjectService, taskService service.TaskService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, taskService: taskService}
}

// GetProjects returns all projects
// GET /api/v1/projects
func (h *ProjectHandler) GetProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch projects"})
	}
	return c.JSON(projects)
}

// GetProject returns one project by id
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	project, err := h.projectService.GetProjectByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Project not found"})
	}
	return c.JSON(project)
}

// GetProjectTasks returns the tasks under a project
// GET /api/v1/projects/:id/tasks
func (h *ProjectHandler) GetProjectTasks(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	tasks, err := h.taskService.GetTasksByProject(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch project tasks"})
	}
	return c.JSON(tasks)
}

// CreateProject creates a project
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req service.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	project, err := h.projectService.CreateProject(c.Context(), &req, actor)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(project)
}

// UpdateProject updates a project
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	var req service.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	project, err := h.projectService.UpdateProject(c.Context(), id, &req, actor)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(project)
}

// DeleteProject removes a project
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid project ID"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	if err := h.projectService.DeleteProject(c.Context(), id, actor); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Project deleted"})
}
