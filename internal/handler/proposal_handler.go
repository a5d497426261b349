package handler

import (
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProposalHandler struct {
	proposalService service.ProposalService
}

func NewProposalHandler(proposalService service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// GetProposals returns all proposals, optionally filtered by status
// GET /api/v1/proposals?status=Hot
func (h *ProposalHandler) GetProposals(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		proposals, err := h.proposalService.GetProposalsByStatus(status)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proposals"})
		}
		return c.JSON(proposals)
	}

	proposals, err := h.proposalService.GetAllProposals()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proposals"})
	}
	return c.JSON(proposals)
}

// GetProposal returns one proposal by id
// GET /api/v1/proposals/:id
func (h *ProposalHandler) GetProposal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	proposal, err := h.proposalService.GetProposalByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Proposal not found"})
	}
	return c.JSON(proposal)
}

// CreateProposal creates a proposal
// POST /api/v1/proposals
func (h *ProposalHandler) CreateProposal(c *fiber.Ctx) error {
	var req service.ProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	proposal, err := h.proposalService.CreateProposal(c.Context(), &req, actor)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(proposal)
}

// UpdateProposal updates a proposal
// PUT /api/v1/proposals/:id
func (h *ProposalHandler) UpdateProposal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	var req service.ProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	proposal, err := h.proposalService.UpdateProposal(c.Context(), id, &req, actor)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(proposal)
}

// DeleteProposal removes a proposal
// DELETE /api/v1/proposals/:id
func (h *ProposalHandler) DeleteProposal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid proposal ID"})
	}

	actor := notify.ResolveActor(middleware.CurrentUser(c))
	if err := h.proposalService.DeleteProposal(c.Context(), id, actor); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Proposal deleted"})
}
