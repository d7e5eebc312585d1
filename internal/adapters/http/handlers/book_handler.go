package handlers

import (
	"errors"
	"time"

	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// BookRequest represents create/update book request body
type BookRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	AuthorIDs     []uint `json:"author_ids"`
	Genre         string `json:"genre,omitempty" validate:"omitempty,max=100"`
	PublishedDate string `json:"published_date,omitempty"`
	Description   string `json:"description,omitempty"`
	CoverURL      string `json:"cover_url,omitempty" validate:"omitempty,max=500"`
}

func (r *BookRequest) toInput() (*services.BookInput, error) {
	input := &services.BookInput{
		Title:       r.Title,
		AuthorIDs:   r.AuthorIDs,
		Genre:       r.Genre,
		Description: r.Description,
		CoverURL:    r.CoverURL,
	}
	if r.PublishedDate != "" {
		published, err := time.Parse("2006-01-02", r.PublishedDate)
		if err != nil {
			return nil, err
		}
		input.PublishedDate = &published
	}
	return input, nil
}

// Create handles book creation
// @Summary Create book
// @Description Add a new book to the catalog (staff or catalog editors)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid published_date, expected YYYY-MM-DD")
	}

	book, err := h.bookService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAuthorIDs) {
			return response.UnprocessableEntity(c, "One or more author ids do not exist")
		}
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", book)
}

// List handles book listing
// @Summary List books
// @Description List books with pagination, optionally filtered by genre
// @Tags Books
// @Accept json
// @Produce json
// @Param genre query string false "Genre filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), &services.ListInput{
		Genre:  c.Query("genre"),
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// Search handles book search
// @Summary Search books
// @Description Find books whose title or author name contains the term
// @Tags Books
// @Accept json
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} response.Response
// @Router /books/search [get]
func (h *BookHandler) Search(c *fiber.Ctx) error {
	books, err := h.bookService.Search(c.Context(), c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}

	return response.Success(c, "Books retrieved successfully", books)
}

// GetByID handles getting a single book
// @Summary Get book
// @Description Get a book with authors and average rating
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", book)
}

// Update handles book update
// @Summary Update book
// @Description Update a book and replace its author set (staff or catalog editors)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body BookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid published_date, expected YYYY-MM-DD")
	}

	book, err := h.bookService.Update(c.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrUnknownAuthorIDs):
			return response.UnprocessableEntity(c, "One or more author ids do not exist")
		default:
			return response.InternalServerError(c, "Failed to update book")
		}
	}

	return response.Success(c, "Book updated successfully", book)
}

// Delete handles book deletion
// @Summary Delete book
// @Description Remove a book together with its issues, ratings and comments
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to delete book")
	}

	return response.Success(c, "Book deleted successfully", nil)
}
