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

// RatingHandler handles book rating endpoints
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// CreateRatingRequest represents a rating request body
type CreateRatingRequest struct {
	Score  int    `json:"score" validate:"required"`
	Review string `json:"review,omitempty"`
}

// Create handles rating a book
// @Summary Rate a book
// @Description Add a 1-5 score for a book; one rating per user per book
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body CreateRatingRequest true "Rating data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books/{id}/ratings [post]
func (h *RatingHandler) Create(c *fiber.Ctx) error {
	bookID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var req CreateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, validator.FormatError(err))
	}

	input := &services.CreateRatingInput{
		BookID: bookID,
		Score:  req.Score,
		Review: req.Review,
	}

	rating, err := h.ratingService.Create(c.Context(), input, middleware.Identity(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScoreOutOfRange):
			return response.BadRequest(c, "Score must be between 1 and 5")
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrAlreadyRated):
			return response.Conflict(c, "You have already rated this book")
		default:
			return response.InternalServerError(c, "Failed to rate book")
		}
	}

	return response.Created(c, "Rating created successfully", rating.ToResponse())
}

// ListByBook handles listing a book's ratings
// @Summary List ratings
// @Description List a book's ratings, newest first
// @Tags Ratings
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/ratings [get]
func (h *RatingHandler) ListByBook(c *fiber.Ctx) error {
	bookID, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	ratings, err := h.ratingService.ListByBook(c.Context(), bookID)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to list ratings")
	}

	return response.Success(c, "Ratings retrieved successfully", toRatingResponses(ratings))
}

// Delete handles removing a rating
// @Summary Delete rating
// @Description Remove a rating; only its owner may do this
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /ratings/{id} [delete]
func (h *RatingHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid rating ID")
	}

	if err := h.ratingService.Delete(c.Context(), id, middleware.Identity(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrRatingNotFound):
			return response.NotFound(c, "Rating not found")
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "You may only delete your own ratings")
		default:
			return response.InternalServerError(c, "Failed to delete rating")
		}
	}

	return response.Success(c, "Rating deleted successfully", nil)
}

func toRatingResponses(ratings []*models.Rating) []*models.RatingResponse {
	resps := make([]*models.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		resps = append(resps, rating.ToResponse())
	}
	return resps
}
