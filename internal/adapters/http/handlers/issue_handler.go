package handlers

import (
	"errors"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// IssueHandler handles book rental endpoints
type IssueHandler struct {
	loanService *services.LoanService
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(loanService *services.LoanService) *IssueHandler {
	return &IssueHandler{loanService: loanService}
}

// CreateIssueRequest represents a rental request body
type CreateIssueRequest struct {
	BookID       uint `json:"book_id" validate:"required"`
	RentalPeriod int  `json:"rental_period,omitempty"`
}

// Create handles renting a book
// @Summary Rent a book
// @Description Create a book issue for the acting user with an optional rental period in days
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateIssueRequest true "Rental data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /issues [post]
func (h *IssueHandler) Create(c *fiber.Ctx) error {
	var req CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input := &services.CreateIssueInput{
		BookID:       req.BookID,
		RentalPeriod: req.RentalPeriod,
	}

	out, err := h.loanService.Create(c.Context(), input, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to rent book")
	}

	return response.Created(c, out.Message, out.Issue.ToResponse())
}

// List handles issue listing
// @Summary List issues
// @Description List issues: staff see all, members only their own
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /issues [get]
func (h *IssueHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	issues, total, err := h.loanService.List(c.Context(), middleware.Identity(c), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list issues")
	}

	return response.Success(c, "Issues retrieved successfully", pagination.NewResponse(toIssueResponses(issues), params, total))
}

// ListActive handles the acting user's active rentals
// @Summary List my active rentals
// @Description List the acting user's unreturned issues, earliest due first
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /issues/my [get]
func (h *IssueHandler) ListActive(c *fiber.Ctx) error {
	issues, err := h.loanService.ListActive(c.Context(), middleware.Identity(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list rentals")
	}

	return response.Success(c, "Active rentals retrieved successfully", toIssueResponses(issues))
}

// GetByID handles getting a single issue
// @Summary Get issue
// @Description Get a single issue visible to the acting user
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /issues/{id} [get]
func (h *IssueHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	issue, err := h.loanService.GetByID(c.Context(), id, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			return response.NotFound(c, "Issue not found")
		}
		return response.InternalServerError(c, "Failed to get issue")
	}

	return response.Success(c, "Issue retrieved successfully", issue.ToResponse())
}

// Return handles returning a rented book
// @Summary Return a book
// @Description Close an issue by setting its return date
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /issues/{id}/return [put]
func (h *IssueHandler) Return(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	issue, err := h.loanService.Return(c.Context(), id, middleware.Identity(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIssueNotFound):
			return response.NotFound(c, "Issue not found")
		case errors.Is(err, services.ErrAlreadyReturned):
			return response.BadRequest(c, "Book already returned")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", issue.ToResponse())
}

func toIssueResponses(issues []*models.BookIssue) []*models.BookIssueResponse {
	resps := make([]*models.BookIssueResponse, 0, len(issues))
	for _, issue := range issues {
		resps = append(resps, issue.ToResponse())
	}
	return resps
}
