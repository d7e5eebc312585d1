package handlers

import (
	"errors"
	"strconv"
	"time"

	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// AuthorHandler handles author catalog endpoints
type AuthorHandler struct {
	authorService *services.AuthorService
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService *services.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// AuthorRequest represents create/update author request body
type AuthorRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	BirthDate string `json:"birth_date,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty" validate:"omitempty,max=500"`
}

func (r *AuthorRequest) toInput() (*services.AuthorInput, error) {
	input := &services.AuthorInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		PhotoURL:  r.PhotoURL,
	}
	if r.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", r.BirthDate)
		if err != nil {
			return nil, err
		}
		input.BirthDate = &birth
	}
	return input, nil
}

// Create handles author creation
// @Summary Create author
// @Description Add a new author to the catalog (staff or catalog editors)
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AuthorRequest true "Author data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /authors [post]
func (h *AuthorHandler) Create(c *fiber.Ctx) error {
	var req AuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid birth_date, expected YYYY-MM-DD")
	}

	author, err := h.authorService.Create(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create author")
	}

	return response.Created(c, "Author created successfully", author.ToResponse())
}

// List handles author listing and search
// @Summary List authors
// @Description List authors, optionally filtered by a name search term
// @Tags Authors
// @Accept json
// @Produce json
// @Param q query string false "Search term matched against first and last name"
// @Success 200 {object} response.Response
// @Router /authors [get]
func (h *AuthorHandler) List(c *fiber.Ctx) error {
	authors, err := h.authorService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list authors")
	}

	return response.Success(c, "Authors retrieved successfully", authors)
}

// GetByID handles getting a single author
// @Summary Get author
// @Description Get an author with the average rating across their books
// @Tags Authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [get]
func (h *AuthorHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	author, err := h.authorService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to get author")
	}

	return response.Success(c, "Author retrieved successfully", author)
}

// Update handles author update
// @Summary Update author
// @Description Update an author (staff or catalog editors)
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param body body AuthorRequest true "Author data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [put]
func (h *AuthorHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	var req AuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid birth_date, expected YYYY-MM-DD")
	}

	author, err := h.authorService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, services.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to update author")
	}

	return response.Success(c, "Author updated successfully", author)
}

// Delete handles author deletion
// @Summary Delete author
// @Description Remove an author; their books stay in the catalog
// @Tags Authors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [delete]
func (h *AuthorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	if err := h.authorService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to delete author")
	}

	return response.Success(c, "Author deleted successfully", nil)
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
