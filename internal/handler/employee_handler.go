package handler

import (
	"errors"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
}

func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// GetEmployees returns all directory records
// GET /api/v1/employees
func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeService.GetAllEmployees()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch employees"})
	}
	return c.JSON(employees)
}

// GetEmployee returns one directory record by id
// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	employee, err := h.employeeService.GetEmployeeByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Employee not found"})
	}
	return c.JSON(employee)
}

// CreateEmployee creates a directory record
// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	employee, err := h.employeeService.CreateEmployee(c.Context(), &req, actor)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeEmailExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(employee)
}

// UpdateEmployee updates a directory record
// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req service.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	employee, err := h.employeeService.UpdateEmployee(c.Context(), id, &req, actor)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeEmailExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(employee)
}

// DeleteEmployee removes a directory record
// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	if err := h.employeeService.DeleteEmployee(c.Context(), id, actor); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
