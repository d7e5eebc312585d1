package handlers

import (
	"errors"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"
	"libraryhub/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles book comment endpoints
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment request body
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create handles commenting on a book
// @Summary Comment on a book
// @Description Add a free-text comment to a book
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body CreateCommentRequest true "Comment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	bookID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input := &services.CreateCommentInput{
		BookID: bookID,
		Text:   req.Text,
	}

	comment, err := h.commentService.Create(c.Context(), input, middleware.Identity(c))
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to create comment")
	}

	return response.Created(c, "Comment created successfully", comment.ToResponse())
}

// ListByBook handles listing a book's comments
// @Summary List comments
// @Description List a book's comments, newest first
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/comments [get]
func (h *CommentHandler) ListByBook(c *fiber.Ctx) error {
	bookID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	comments, err := h.commentService.ListByBook(c.Context(), bookID)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to list comments")
	}

	return response.Success(c, "Comments retrieved successfully", toCommentResponses(comments))
}

// Delete handles removing a comment
// @Summary Delete comment
// @Description Remove a comment; only its owner may do this
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), id, middleware.Identity(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrCommentNotFound):
			return response.NotFound(c, "Comment not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You may only delete your own comments")
		default:
			return response.InternalServerError(c, "Failed to delete comment")
		}
	}

	return response.Success(c, "Comment deleted successfully", nil)
}

func toCommentResponses(comments []*models.Comment) []*models.CommentResponse {
	resps := make([]*models.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resps = append(resps, comment.ToResponse())
	}
	return resps
}
