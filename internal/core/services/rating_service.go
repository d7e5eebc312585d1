package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
)

// Rating service errors
var (
	ErrRatingNotFound  = errors.New("rating not found")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrAlreadyRated    = errors.New("already rated")
)

// Score bounds
const (
	ScoreMin = 1
	ScoreMax = 5
)

// RatingService handles the rating workflow
type RatingService struct {
	ratingRepo *repositories.RatingRepository
	bookRepo   *repositories.BookRepository
}

// NewRatingService creates a new rating service
func NewRatingService(ratingRepo *repositories.RatingRepository, bookRepo *repositories.BookRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		bookRepo:   bookRepo,
	}
}

// CreateRatingInput represents rating creation input
type CreateRatingInput struct {
	BookID uint   `json:"book_id" validate:"required"`
	Score  int    `json:"score" validate:"required"`
	Review string `json:"review,omitempty"`
}

// Create persists a rating for the acting user. The score must lie in
// [ScoreMin, ScoreMax] and the user must not have rated the book before.
// The book's average is never stored, so it updates implicitly.
func (s *RatingService) Create(ctx context.Context, input *CreateRatingInput, identity domain.Identity) (*models.Rating, error) {
	if input.Score < ScoreMin || input.Score > ScoreMax {
		return nil, ErrScoreOutOfRange
	}

	if _, err := s.bookRepo.GetByID(ctx, input.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	exists, err := s.ratingRepo.ExistsByBookAndUser(ctx, input.BookID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRated
	}

	rating := &models.Rating{
		BookID: input.BookID,
		UserID: identity.UserID,
		Score:  input.Score,
		Review: input.Review,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		// The unique index catches a concurrent duplicate submission that
		// slipped past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRated
		}
		return nil, err
	}
	return rating, nil
}

// ListByBook lists a book's ratings
func (s *RatingService) ListByBook(ctx context.Context, bookID uint) ([]*models.Rating, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.ratingRepo.ListByBook(ctx, bookID)
}

// Delete removes a rating. Only the owner may delete; staff get no
// override here.
func (s *RatingService) Delete(ctx context.Context, id uint, identity domain.Identity) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}
	if !domain.OwnerElseRead(identity, domain.VerbWrite, rating) {
		return domain.ErrForbidden
	}
	return s.ratingRepo.Delete(ctx, id)
}
