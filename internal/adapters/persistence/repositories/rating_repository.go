package repositories

import (
	"context"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
)

// RatingRepository handles rating data access
type RatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create creates a new rating. The storage-level unique index on
// (book_id, user_id) rejects concurrent duplicates that slip past the
// service pre-check.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// GetByID gets a rating by ID
func (r *RatingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).First(&rating, id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ExistsByBookAndUser checks whether the user already rated the book
func (r *RatingRepository) ExistsByBookAndUser(ctx context.Context, bookID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListByBook lists a book's ratings, newest first, with users preloaded
func (r *RatingRepository) ListByBook(ctx context.Context, bookID uint) ([]*models.Rating, error) {
	var ratings []*models.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// Delete deletes a rating
func (r *RatingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Rating{}, id).Error
}
