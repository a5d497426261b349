package handler

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CustomerHandler talks to the repository directly: customer writes carry no
// notification fan-out, so there is no service layer between.
type CustomerHandler struct {
	customerRepo repository.CustomerRepository
	projectRepo  repository.ProjectRepository
}

func NewCustomerHandler(customerRepo repository.CustomerRepository, projectRepo repository.ProjectRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo, projectRepo: projectRepo}
}

// GetCustomers returns all customers
// GET /api/v1/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customerRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer and their projects
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	projects, err := h.projectRepo.FindByCustomerID(id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customer projects"})
	}

	return c.JSON(fiber.Map{"customer": customer, "projects": projects})
}

// CreateCustomer creates a customer
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&customer); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + errs[0].FailedField + "' failed on tag '" + errs[0].Tag + "'",
		})
	}

	actor := middleware.CurrentUser(c)
	customer.CreatedBy = actor.ID.String()
	customer.UpdatedBy = actor.ID.String()
	if err := h.customerRepo.Create(&customer); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create customer"})
	}
	return c.Status(201).JSON(customer)
}

// UpdateCustomer updates a customer
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	if err := c.BodyParser(customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	customer.ID = id // BodyParser must not reassign the primary key

	if errs := validator.ValidateStruct(customer); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + errs[0].FailedField + "' failed on tag '" + errs[0].Tag + "'",
		})
	}

	customer.UpdatedBy = middleware.CurrentUser(c).ID.String()
	if err := h.customerRepo.Update(customer); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update customer"})
	}
	return c.JSON(customer)
}

// DeleteCustomer removes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if _, err := h.customerRepo.FindByID(id); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	if err := h.customerRepo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete customer"})
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}
